package handlers

import (
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Validation limits for category and product fields.
const (
	maxNameLen     = 200
	maxSKULen      = 64
	maxImageURLLen = 500_000 // data URIs for embedded images get long
)

// validateCategory checks category form inputs and returns the first error found.
func validateCategory(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Category name is required."
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return "Category name is too long (max 200 characters)."
	}
	return ""
}

// validateProduct checks product form inputs and returns the first error found.
func validateProduct(name, sku string, price decimal.Decimal, imageURL string) string {
	if strings.TrimSpace(name) == "" {
		return "Product name is required."
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return "Product name is too long (max 200 characters)."
	}
	if strings.TrimSpace(sku) == "" {
		return "SKU is required."
	}
	if utf8.RuneCountInString(sku) > maxSKULen {
		return "SKU is too long (max 64 characters)."
	}
	if price.IsNegative() {
		return "Price must not be negative."
	}
	if utf8.RuneCountInString(imageURL) > maxImageURLLen {
		return "Image is too large."
	}
	return ""
}
