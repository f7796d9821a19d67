package products

import (
	"sort"
	"sync"

	"github.com/pkg/errors"
)

// ProductServiceImpl loads products through its injected reader and parser
// and keeps them in memory, keyed by id.
type ProductServiceImpl struct {
	Reader FileReaderService `inject:""`
	Parser ProductParser     `inject:""`

	mu       sync.RWMutex
	products map[int64]Product
}

// GetAllFromFile reads and parses every line of path. A header line is
// skipped. The products are returned, not saved.
func (s *ProductServiceImpl) GetAllFromFile(path string) ([]Product, error) {
	lines, err := s.Reader.ReadFromFile(path)
	if err != nil {
		return nil, err
	}

	out := make([]Product, 0, len(lines))
	for i, line := range lines {
		if i == 0 && IsHeader(line) {
			continue
		}
		p, err := s.Parser.Parse(line)
		if err != nil {
			return nil, errors.Wrapf(err, "%s:%d", path, i+1)
		}
		out = append(out, p)
	}
	return out, nil
}

// Save stores products, replacing any with the same id.
func (s *ProductServiceImpl) Save(products ...Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.products == nil {
		s.products = make(map[int64]Product)
	}
	for _, p := range products {
		s.products[p.ID] = p
	}
}

// All returns the stored products ordered by id.
func (s *ProductServiceImpl) All() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Find returns the product with the given id.
func (s *ProductServiceImpl) Find(id int64) (Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[id]
	if !ok {
		return Product{}, errors.Wrapf(ErrNotFound, "id %d", id)
	}
	return p, nil
}
