package products

import (
	"bufio"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// FileReaderServiceImpl reads files from the local filesystem.
type FileReaderServiceImpl struct {
	// MaxLineSize caps the length of one line. Zero means bufio's default.
	MaxLineSize int
}

// ReadFromFile returns the non-blank lines of path.
func (r *FileReaderServiceImpl) ReadFromFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "can't read file %s", path)
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	if r.MaxLineSize > 0 {
		sc.Buffer(make([]byte, 0, min(r.MaxLineSize, 4096)), r.MaxLineSize)
	}
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrapf(err, "can't read file %s", path)
	}
	return lines, nil
}
