package services

import (
	"context"
	"fmt"
	"strings"

	"order_entry/internal/catalog"
	"order_entry/internal/models"
	"order_entry/internal/pricing"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PricedArticle is an article as offered to a given client.
type PricedArticle struct {
	Code        string          `json:"code"`
	Family      string          `json:"family"`
	Supplier    string          `json:"supplier"`
	Designation string          `json:"designation"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Backorder   bool            `json:"backorder"`
}

// ShadeLoader reads a brand's shade chart.
type ShadeLoader interface {
	LoadShades(ctx context.Context, brand string) ([]models.ShadeRow, error)
}

type CatalogService interface {
	Clients() []models.Client
	PricedArticles(client *models.Client) []PricedArticle
	Shades(ctx context.Context, brand string) ([]models.ShadeRow, error)
}

type catalogService struct {
	catalog *catalog.Catalog
	shades  ShadeLoader
	logger  *zap.Logger
}

func NewCatalogService(cat *catalog.Catalog, shades ShadeLoader, logger *zap.Logger) CatalogService {
	return &catalogService{catalog: cat, shades: shades, logger: logger}
}

func (s *catalogService) Clients() []models.Client {
	return s.catalog.Clients()
}

// PricedArticles lists every article at the price client would pay. A nil
// client sees base prices.
func (s *catalogService) PricedArticles(client *models.Client) []PricedArticle {
	articles := s.catalog.Articles()
	out := make([]PricedArticle, 0, len(articles))
	for i := range articles {
		a := &articles[i]
		out = append(out, PricedArticle{
			Code:        a.Code,
			Family:      a.Family,
			Supplier:    a.Supplier,
			Designation: a.Designation,
			Price:       pricing.Resolve(a, client),
			Stock:       a.Stock,
			Backorder:   a.IsBackorder(),
		})
	}
	return out
}

func (s *catalogService) Shades(ctx context.Context, brand string) ([]models.ShadeRow, error) {
	brand = strings.TrimSpace(brand)
	if s.shades == nil {
		return nil, fmt.Errorf("%w: no shade source configured", catalog.ErrReferenceLoad)
	}
	rows, err := s.shades.LoadShades(ctx, brand)
	if err != nil {
		s.logger.Warn("shade chart unavailable", zap.String("brand", brand), zap.Error(err))
		return nil, err
	}
	return rows, nil
}
