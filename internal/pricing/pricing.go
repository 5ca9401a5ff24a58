// Package pricing resolves the unit price an article is sold at to a given
// client, based on the client's tariff category.
package pricing

import (
	"strings"

	"order_entry/internal/models"

	"github.com/shopspring/decimal"
)

// Tariff categories with a dedicated price column.
const (
	CategoryBase            = "HT"
	CategoryHomeHairdresser = "NPRO"
	CategoryPublic          = "TP"
	CategoryRobin           = "ROBIN"
)

// Mapping from tariff category to the article field holding its price.
// Categories missing here are billed at the base price.
var Mapping = map[string]string{
	CategoryBase:            models.FieldPriceBase,
	CategoryHomeHairdresser: models.FieldPriceHomeHairdresser,
	CategoryPublic:          models.FieldPricePublic,
	CategoryRobin:           models.FieldPriceRobin,
}

// FieldFor returns the price field for a client's tariff category, as
// normalized by Client.Category.
func FieldFor(client *models.Client) (string, bool) {
	field, ok := Mapping[client.Category()]
	return field, ok
}

// Resolve returns the unit price excluding tax of article for client. A nil
// client, a client without category, an unmapped category or a blank mapped
// price all yield the base price.
func Resolve(article *models.Article, client *models.Client) decimal.Decimal {
	if client == nil || client.Category() == "" {
		return Clean(article.BasePrice)
	}

	if field, ok := FieldFor(client); ok && !article.HasBlankField(field) {
		raw, _ := article.Field(field)
		return Clean(raw)
	}
	return Clean(article.BasePrice)
}

// Clean parses a price as exported by the ERP: the first decimal comma
// becomes a dot, every character other than a digit or a dot is dropped and
// the longest leading number is kept. Blank or unparsable input is zero.
func Clean(raw string) decimal.Decimal {
	s := strings.Replace(raw, ",", ".", 1)

	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}

	num := leadingNumber(b.String())
	if num == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(num)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// leadingNumber keeps digits up to the second dot, so "1.2.3" reads as 1.2.
func leadingNumber(s string) string {
	end := len(s)
	if first := strings.IndexByte(s, '.'); first >= 0 {
		if second := strings.IndexByte(s[first+1:], '.'); second >= 0 {
			end = first + 1 + second
		}
	}
	s = strings.TrimSuffix(s[:end], ".")
	if s == "" {
		return ""
	}
	if s[0] == '.' {
		s = "0" + s
	}
	return s
}
