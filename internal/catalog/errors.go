package catalog

import "github.com/go-faster/errors"

var (
	ErrNotFound      = errors.New("product not found")
	ErrInvalidLimit  = errors.New("invalid limit")
	ErrInvalidRecord = errors.New("invalid product record")
	ErrDuplicateID   = errors.New("duplicate product id")
)
