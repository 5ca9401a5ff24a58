package repository

import (
	"context"

	"order_entry/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReferenceRepository stores the article and client tables. It satisfies
// catalog.Store so a catalog can be loaded from the database.
type ReferenceRepository interface {
	ListArticles(ctx context.Context) ([]models.Article, error)
	ListClients(ctx context.Context) ([]models.Client, error)
	ReplaceArticles(ctx context.Context, articles []models.Article) error
	ReplaceClients(ctx context.Context, clients []models.Client) error
	Counts(ctx context.Context) (articles, clients int64, err error)
}

type referenceRepository struct {
	db *gorm.DB
}

func NewReferenceRepository(db *gorm.DB) ReferenceRepository {
	return &referenceRepository{db: db}
}

// ListArticles returns articles in import order.
func (r *referenceRepository) ListArticles(ctx context.Context) ([]models.Article, error) {
	var articles []models.Article
	err := r.db.WithContext(ctx).Order("id").Find(&articles).Error
	return articles, err
}

func (r *referenceRepository) ListClients(ctx context.Context) ([]models.Client, error) {
	var clients []models.Client
	err := r.db.WithContext(ctx).Order("id").Find(&clients).Error
	return clients, err
}

// ReplaceArticles swaps the whole article table in one transaction. Rows are
// inserted in slice order; a repeated code keeps its first row.
func (r *referenceRepository) ReplaceArticles(ctx context.Context, articles []models.Article) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Article{}).Error; err != nil {
			return err
		}
		rows := make([]models.Article, 0, len(articles))
		for _, a := range articles {
			a.ID = 0
			rows = append(rows, a)
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).CreateInBatches(&rows, 200).Error
	})
}

func (r *referenceRepository) ReplaceClients(ctx context.Context, clients []models.Client) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Client{}).Error; err != nil {
			return err
		}
		rows := make([]models.Client, 0, len(clients))
		for _, c := range clients {
			c.ID = 0
			rows = append(rows, c)
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).CreateInBatches(&rows, 200).Error
	})
}

// Counts reports the number of stored articles and clients.
func (r *referenceRepository) Counts(ctx context.Context) (articles, clients int64, err error) {
	db := r.db.WithContext(ctx)
	if err = db.Model(&models.Article{}).Count(&articles).Error; err != nil {
		return 0, 0, err
	}
	err = db.Model(&models.Client{}).Count(&clients).Error
	return articles, clients, err
}
