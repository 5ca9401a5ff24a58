package catalog

import "errors"

var (
	// ErrReferenceLoad means a reference table could not be fetched.
	ErrReferenceLoad = errors.New("reference data could not be loaded")
	// ErrEmptySource means a reference table parsed to zero records.
	ErrEmptySource  = errors.New("reference data source is empty")
	ErrInvalidBrand = errors.New("invalid shade chart brand")
)
