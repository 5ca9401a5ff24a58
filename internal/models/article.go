package models

import (
	"strings"
	"time"
)

type Article struct {
	ID                   uint              `json:"-" gorm:"primaryKey"`
	Code                 string            `json:"code" gorm:"uniqueIndex;not null"`
	Family               string            `json:"family"`
	Supplier             string            `json:"supplier"`
	Designation          string            `json:"designation"`
	BasePrice            string            `json:"base_price"`
	PriceHomeHairdresser string            `json:"price_home_hairdresser"`
	PricePublic          string            `json:"price_public"`
	PriceRobin           string            `json:"price_robin"`
	Stock                int               `json:"stock" gorm:"default:0"`
	Extra                map[string]string `json:"extra,omitempty" gorm:"serializer:json;type:text"`
	CreatedAt            time.Time         `json:"-"`
	UpdatedAt            time.Time         `json:"-"`
}

// Field returns the raw value stored under a normalized field name. Columns
// the parser did not recognise are looked up in Extra.
func (a *Article) Field(name string) (string, bool) {
	switch name {
	case FieldArticleCode:
		return a.Code, true
	case FieldArticleFamily:
		return a.Family, true
	case FieldArticleSupplier:
		return a.Supplier, true
	case FieldArticleDesignation:
		return a.Designation, true
	case FieldPriceBase:
		return a.BasePrice, true
	case FieldPriceHomeHairdresser:
		return a.PriceHomeHairdresser, a.PriceHomeHairdresser != ""
	case FieldPricePublic:
		return a.PricePublic, a.PricePublic != ""
	case FieldPriceRobin:
		return a.PriceRobin, a.PriceRobin != ""
	}
	v, ok := a.Extra[name]
	return v, ok
}

// IsBackorder reports whether an order for the article has to wait for a
// restock.
func (a *Article) IsBackorder() bool {
	return a.Stock <= 0
}

// ExceedsStock reports whether qty cannot be served from the current stock.
// Articles without stock are never limited: they are ordered on backorder.
func (a *Article) ExceedsStock(qty int) bool {
	return a.Stock > 0 && qty > a.Stock
}

func (a *Article) HasBlankField(name string) bool {
	v, ok := a.Field(name)
	return !ok || strings.TrimSpace(v) == ""
}
