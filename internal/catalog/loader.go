package catalog

import (
	"context"
	"fmt"
	"path"
	"strings"
	"sync"

	"order_entry/internal/models"
	"order_entry/internal/tabular"

	"go.uber.org/zap"
)

// Files names the reference tables inside a Source.
type Files struct {
	Articles string
	Clients  string
	Stock    string
	ShadeDir string
}

func DefaultFiles() Files {
	return Files{
		Articles: "BaseAppCmd/BaseArticleTarifs.csv",
		Clients:  "BaseAppCmd/AnnuaireClients.csv",
		Stock:    "BaseAppCmd/StockRestant.csv",
		ShadeDir: "Nuanciers",
	}
}

// Loader fetches and parses the reference tables from a Source.
type Loader struct {
	source    Source
	files     Files
	separator string
	logger    *zap.Logger

	mu     sync.Mutex
	shades map[string][]models.ShadeRow
}

func NewLoader(source Source, files Files, separator string, logger *zap.Logger) *Loader {
	return &Loader{
		source:    source,
		files:     files,
		separator: separator,
		logger:    logger,
		shades:    make(map[string][]models.ShadeRow),
	}
}

// Load fetches articles, clients and stock, merges stock into the articles
// and returns the typed catalog. A fetch failure wraps ErrReferenceLoad; a
// table without data rows wraps ErrEmptySource.
func (l *Loader) Load(ctx context.Context) (*Catalog, error) {
	articles, err := l.table(ctx, l.files.Articles, tabular.KindArticles)
	if err != nil {
		return nil, err
	}
	clients, err := l.table(ctx, l.files.Clients, tabular.KindGeneric)
	if err != nil {
		return nil, err
	}
	stock, err := l.table(ctx, l.files.Stock, tabular.KindStock)
	if err != nil {
		return nil, err
	}

	if len(articles) == 0 {
		return nil, fmt.Errorf("%w: no article in %s", ErrEmptySource, l.files.Articles)
	}
	if len(clients) == 0 {
		return nil, fmt.Errorf("%w: no client in %s", ErrEmptySource, l.files.Clients)
	}
	if len(stock) == 0 {
		return nil, fmt.Errorf("%w: no stock row in %s", ErrEmptySource, l.files.Stock)
	}

	merged := Merge(articles, stock)
	arts := make([]models.Article, 0, len(merged))
	for _, rec := range merged {
		arts = append(arts, ArticleFromRecord(rec))
	}
	cls := make([]models.Client, 0, len(clients))
	for _, rec := range clients {
		cls = append(cls, ClientFromRecord(rec))
	}

	l.logger.Info("reference data loaded",
		zap.Int("articles", len(arts)),
		zap.Int("clients", len(cls)),
		zap.Int("stock_rows", len(stock)),
	)
	return New(arts, cls), nil
}

// LoadShades returns the shade chart of a brand, read from
// "<ShadeDir>/<brand>-<brand>.csv" on first use and cached afterwards.
func (l *Loader) LoadShades(ctx context.Context, brand string) ([]models.ShadeRow, error) {
	if brand == "" || strings.ContainsAny(brand, `/\`) || strings.Contains(brand, "..") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBrand, brand)
	}

	l.mu.Lock()
	rows, ok := l.shades[brand]
	l.mu.Unlock()
	if ok {
		return rows, nil
	}

	name := path.Join(l.files.ShadeDir, fmt.Sprintf("%s-%s.csv", brand, brand))
	text, err := l.source.Fetch(ctx, name)
	if err != nil {
		l.logger.Error("shade chart fetch failed", zap.String("brand", brand), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrReferenceLoad, err)
	}

	rows = tabular.ParseShades(text, tabular.Options{Separator: l.separator, Source: name, Logger: l.logger})

	l.mu.Lock()
	l.shades[brand] = rows
	l.mu.Unlock()
	return rows, nil
}

func (l *Loader) table(ctx context.Context, name string, kind tabular.Kind) ([]tabular.Record, error) {
	text, err := l.source.Fetch(ctx, name)
	if err != nil {
		l.logger.Error("reference table fetch failed", zap.String("file", name), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrReferenceLoad, err)
	}
	res := tabular.Parse(text, kind, tabular.Options{Separator: l.separator, Source: name, Logger: l.logger})
	return res.Records, nil
}
