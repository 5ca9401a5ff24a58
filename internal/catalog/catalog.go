// Package catalog builds the read-only reference data of a session: the
// article catalog merged with stock, and the client directory.
package catalog

import "order_entry/internal/models"

// Catalog holds articles and clients in source order with lookup by code.
// It is never mutated after construction and can be shared between sessions.
type Catalog struct {
	articles  []models.Article
	clients   []models.Client
	byArticle map[string]int
	byClient  map[string]int
}

// New indexes articles and clients. When a code repeats, lookups return the
// first occurrence.
func New(articles []models.Article, clients []models.Client) *Catalog {
	c := &Catalog{
		articles:  articles,
		clients:   clients,
		byArticle: make(map[string]int, len(articles)),
		byClient:  make(map[string]int, len(clients)),
	}
	for i := range articles {
		if _, dup := c.byArticle[articles[i].Code]; !dup {
			c.byArticle[articles[i].Code] = i
		}
	}
	for i := range clients {
		if _, dup := c.byClient[clients[i].Code]; !dup {
			c.byClient[clients[i].Code] = i
		}
	}
	return c
}

func (c *Catalog) Article(code string) (*models.Article, bool) {
	i, ok := c.byArticle[code]
	if !ok {
		return nil, false
	}
	return &c.articles[i], true
}

func (c *Catalog) Client(code string) (*models.Client, bool) {
	i, ok := c.byClient[code]
	if !ok {
		return nil, false
	}
	return &c.clients[i], true
}

func (c *Catalog) Articles() []models.Article {
	return c.articles
}

func (c *Catalog) Clients() []models.Client {
	return c.clients
}
