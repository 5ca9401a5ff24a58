package catalog

import (
	"order_entry/internal/models"
	"order_entry/internal/tabular"
)

var articleFields = map[string]bool{
	models.FieldArticleCode:          true,
	models.FieldArticleFamily:        true,
	models.FieldArticleSupplier:      true,
	models.FieldArticleDesignation:   true,
	models.FieldPriceBase:            true,
	models.FieldPriceHomeHairdresser: true,
	models.FieldPricePublic:          true,
	models.FieldPriceRobin:           true,
	models.FieldStockQuantity:        true,
}

// ArticleFromRecord converts a merged article record. Columns without a
// dedicated field are kept in Extra.
func ArticleFromRecord(rec tabular.Record) models.Article {
	a := models.Article{
		Code:                 rec[models.FieldArticleCode],
		Family:               rec[models.FieldArticleFamily],
		Supplier:             rec[models.FieldArticleSupplier],
		Designation:          rec[models.FieldArticleDesignation],
		BasePrice:            rec[models.FieldPriceBase],
		PriceHomeHairdresser: rec[models.FieldPriceHomeHairdresser],
		PricePublic:          rec[models.FieldPricePublic],
		PriceRobin:           rec[models.FieldPriceRobin],
		Stock:                ParseStock(rec[models.FieldStockQuantity]),
	}
	for k, v := range rec {
		if articleFields[k] {
			continue
		}
		if a.Extra == nil {
			a.Extra = make(map[string]string)
		}
		a.Extra[k] = v
	}
	return a
}

func ClientFromRecord(rec tabular.Record) models.Client {
	return models.Client{
		Code:           rec[models.FieldClientCode],
		Name:           rec[models.FieldClientName],
		Sector:         rec[models.FieldClientSector],
		TariffCategory: rec[models.FieldClientTariffCategory],
		Address:        rec[models.FieldClientAddress],
		City:           rec[models.FieldClientCity],
		Email:          rec[models.FieldClientEmail],
	}
}
