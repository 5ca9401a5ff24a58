package cart

import (
	"errors"
	"fmt"
)

var (
	ErrNoClientSelected = errors.New("select a client before adding articles")
	ErrUnknownArticle   = errors.New("article not found in catalog")
)

// InsufficientStockError reports a quantity above the available stock.
type InsufficientStockError struct {
	Code        string
	Designation string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("cannot order %d unit(s) of %s: only %d in stock", e.Requested, e.label(), e.Available)
}

func (e *InsufficientStockError) label() string {
	if e.Designation != "" {
		return e.Designation
	}
	return e.Code
}
