package catalog

import (
	"strconv"
	"strings"
	"unicode"

	"order_entry/internal/models"
	"order_entry/internal/tabular"
)

// StockIndex maps article code to its cleaned physical quantity: decimal
// comma turned into a dot, whitespace removed.
func StockIndex(stock []tabular.Record) map[string]string {
	index := make(map[string]string, len(stock))
	for _, rec := range stock {
		qty := rec[models.FieldStockQuantity]
		if qty == "" {
			qty = "0"
		}
		index[rec[models.FieldArticleCode]] = cleanQuantity(qty)
	}
	return index
}

// Merge attaches a stock quantity to every article record. Articles missing
// from the stock table get "0" and are therefore sold on backorder.
func Merge(articles, stock []tabular.Record) []tabular.Record {
	index := StockIndex(stock)
	merged := make([]tabular.Record, 0, len(articles))
	for _, rec := range articles {
		out := make(tabular.Record, len(rec)+1)
		for k, v := range rec {
			out[k] = v
		}
		qty, ok := index[rec[models.FieldArticleCode]]
		if !ok || qty == "" {
			qty = "0"
		}
		out[models.FieldStockQuantity] = qty
		merged = append(merged, out)
	}
	return merged
}

func cleanQuantity(s string) string {
	s = strings.Replace(s, ",", ".", 1)
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// ParseStock reads the integer part of a cleaned quantity: "12.5" is 12,
// "-3" is -3 and anything unreadable is 0.
func ParseStock(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}
