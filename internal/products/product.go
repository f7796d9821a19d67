package products

import "github.com/pkg/errors"

// Product is one catalog entry.
type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// ErrNotFound is returned when a product id is unknown.
var ErrNotFound = errors.New("products: not found")

// FileReaderService reads the lines of a data file.
type FileReaderService interface {
	ReadFromFile(path string) ([]string, error)
}

// ProductParser turns one data line into a Product.
type ProductParser interface {
	Parse(line string) (Product, error)
}

// ProductService loads products from files and keeps them.
type ProductService interface {
	GetAllFromFile(path string) ([]Product, error)
	Save(products ...Product)
	All() []Product
	Find(id int64) (Product, error)
}
