package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrValidation marks input rejected before any persistence attempt.
// Wrapped errors carry the specific message.
var ErrValidation = errors.New("validation failed")

// Category is the fixed set of menu sections a product can belong to.
type Category string

const (
	CategoryCarnes  Category = "carnes"
	CategoryFrangos Category = "frangos"
	CategoryPeixe   Category = "peixe"
	CategoryMassas  Category = "massas"
	CategoryBebida  Category = "bebida"
	CategoryPorcao  Category = "porcao"
)

// ValidCategories lists the accepted categories in display order.
var ValidCategories = []Category{
	CategoryCarnes, CategoryFrangos, CategoryPeixe,
	CategoryMassas, CategoryBebida, CategoryPorcao,
}

// ParseCategory normalizes the input to lowercase and checks it against the
// whitelist. Returns an error naming the allowed set for invalid input.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, valid := range ValidCategories {
		if c == valid {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: invalid category %q, valid categories: %s", ErrValidation, s, CategoryList())
}

// CategoryList returns the allowed categories as a comma-separated string,
// used in validation error messages.
func CategoryList() string {
	names := make([]string, len(ValidCategories))
	for i, c := range ValidCategories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

// Product represents a sellable menu item
type Product struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description"`
	Price       float64   `json:"price" gorm:"not null"`
	Image       string    `json:"image"`
	Category    Category  `json:"category" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Validate checks the fields required before any persistence attempt:
// name present, price strictly positive, category in the whitelist.
// The category is normalized to lowercase in place.
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: product name is required", ErrValidation)
	}
	if p.Price <= 0 {
		return fmt.Errorf("%w: product price must be a positive number", ErrValidation)
	}
	category, err := ParseCategory(string(p.Category))
	if err != nil {
		return err
	}
	p.Category = category
	return nil
}
