package catalog

import (
	"errors"
	"path/filepath"
	"strings"
)

// ValidationError marks bad admin input so handlers answer 400.
type ValidationError struct {
	msg string
}

func (e ValidationError) Error() string { return e.msg }

func invalid(msg string) error { return ValidationError{msg: msg} }

func IsValidation(err error) bool {
	var v ValidationError
	return errors.As(err, &v)
}

var allowedImageExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

func ValidateImageExtension(filename string) error {
	ext := strings.ToLower(filepath.Ext(filename))

	if ext == "" {
		return invalid("file extension missing")
	}
	if !allowedImageExt[ext] {
		return invalid("file type not allowed")
	}
	return nil
}

func ValidateProduct(p *Product) error {
	if p == nil {
		return invalid("product is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return invalid("name is required")
	}
	if p.Price < 0 {
		return invalid("price must not be negative")
	}
	if !p.Type.Valid() {
		return invalid("type must be simple, double or bowl")
	}

	for category, opts := range p.Options {
		if err := validateOptions(opts); err != nil {
			return invalid(string(category) + ": " + err.Error())
		}
	}
	if err := validateOptions(p.Additions); err != nil {
		return invalid("additions: " + err.Error())
	}
	if err := validateOptions(p.BundleTypes); err != nil {
		return invalid("bundle_types: " + err.Error())
	}
	return nil
}

func validateOptions(opts []Option) error {
	seen := make(map[string]bool, len(opts))
	for _, o := range opts {
		if o.ID == "" {
			return errors.New("option id is required")
		}
		if seen[o.ID] {
			return errors.New("duplicate option id " + o.ID)
		}
		seen[o.ID] = true
		if o.Price < 0 {
			return errors.New("option price must not be negative")
		}
	}
	return nil
}
