package catalog

import (
	"context"
	"fmt"

	"order_entry/internal/models"

	"go.uber.org/zap"
)

// Store is a database copy of the reference tables.
type Store interface {
	ListArticles(ctx context.Context) ([]models.Article, error)
	ListClients(ctx context.Context) ([]models.Client, error)
}

// StoreLoader builds the catalog from a Store instead of text files.
type StoreLoader struct {
	store  Store
	logger *zap.Logger
}

func NewStoreLoader(store Store, logger *zap.Logger) *StoreLoader {
	return &StoreLoader{store: store, logger: logger}
}

func (l *StoreLoader) Load(ctx context.Context) (*Catalog, error) {
	articles, err := l.store.ListArticles(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReferenceLoad, err)
	}
	clients, err := l.store.ListClients(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReferenceLoad, err)
	}
	if len(articles) == 0 {
		return nil, fmt.Errorf("%w: article table is empty", ErrEmptySource)
	}
	if len(clients) == 0 {
		return nil, fmt.Errorf("%w: client table is empty", ErrEmptySource)
	}

	l.logger.Info("reference data loaded from database",
		zap.Int("articles", len(articles)),
		zap.Int("clients", len(clients)),
	)
	return New(articles, clients), nil
}
