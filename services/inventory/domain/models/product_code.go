package models

import "fmt"

// ProductCode is a value object representing a valid product code, the
// immutable catalog key. Encapsulates validation rules: 1 <= len(code) <= 32,
// no spaces.
type ProductCode string

const (
	minProductCodeLength = 1
	maxProductCodeLength = 32
)

// NewProductCode constructs a valid ProductCode or returns an error if
// constraints are violated.
func NewProductCode(s string) (ProductCode, error) {
	if len(s) < minProductCodeLength {
		return "", fmt.Errorf("product code must be at least %d character", minProductCodeLength)
	}
	if len(s) > maxProductCodeLength {
		return "", fmt.Errorf("product code must not exceed %d characters", maxProductCodeLength)
	}
	for _, r := range s {
		if r == ' ' || r == '\t' {
			return "", fmt.Errorf("product code must not contain whitespace")
		}
	}
	return ProductCode(s), nil
}

// String returns the underlying string value.
func (c ProductCode) String() string {
	return string(c)
}
