package products

import (
	"encoding/csv"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/km-arc/go-injector/framework/validation"
)

// Columns of a product line, in order.
var columns = []string{"id", "name", "category", "description", "price"}

var rowRules = validation.Rules{
	"id":       "required|integer|gt:0",
	"name":     "required|max:255",
	"category": "required",
	"price":    "required|numeric|gte:0",
}

// ProductParserImpl parses comma separated lines:
//
//	id,name,category,description,price
//	1,Apple,fruit,Red and sweet,2.50
type ProductParserImpl struct {
	// Comma is the field separator. Zero means ','.
	Comma rune
}

// Parse implements ProductParser.
func (p *ProductParserImpl) Parse(line string) (Product, error) {
	rd := csv.NewReader(strings.NewReader(line))
	rd.TrimLeadingSpace = true
	if p.Comma != 0 {
		rd.Comma = p.Comma
	}
	fields, err := rd.Read()
	if err != nil {
		return Product{}, errors.Wrapf(err, "malformed line %q", line)
	}
	if len(fields) != len(columns) {
		return Product{}, errors.Errorf("line %q: want %d fields, got %d", line, len(columns), len(fields))
	}

	row := make(map[string]string, len(columns))
	for i, col := range columns {
		row[col] = strings.TrimSpace(fields[i])
	}
	if err := validation.Make(row, rowRules).Err(); err != nil {
		return Product{}, errors.Wrapf(err, "line %q", line)
	}

	id, _ := strconv.ParseInt(row["id"], 10, 64)
	price, _ := strconv.ParseFloat(row["price"], 64)
	return Product{
		ID:          id,
		Name:        row["name"],
		Category:    row["category"],
		Description: row["description"],
		Price:       price,
	}, nil
}

// IsHeader reports whether line is the column header.
func IsHeader(line string) bool {
	return strings.EqualFold(strings.ReplaceAll(line, " ", ""), strings.Join(columns, ","))
}
