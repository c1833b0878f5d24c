package lwp

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownCatalog = errors.New("lwp: unknown catalog")
	ErrAxisMismatch   = errors.New("lwp: directional values on different axes")
	ErrDivideByZero   = errors.New("lwp: directional divide by zero")
)

// UnknownConstantError reports a name not present in a catalog.
type UnknownConstantError struct {
	Catalog string
	Name    string
}

func (e UnknownConstantError) Error() string {
	return fmt.Sprintf("lwp: catalog %s: unknown constant %q", e.Catalog, e.Name)
}

// UnknownCodeError reports a byte value not present in a catalog.
type UnknownCodeError struct {
	Catalog string
	Code    byte
}

func (e UnknownCodeError) Error() string {
	return fmt.Sprintf("lwp: catalog %s: unknown code 0x%02x", e.Catalog, e.Code)
}
