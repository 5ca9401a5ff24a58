package models

import (
	"strings"
	"time"
)

type Client struct {
	ID             uint      `json:"-" gorm:"primaryKey"`
	Code           string    `json:"code" gorm:"uniqueIndex;not null"`
	Name           string    `json:"name"`
	Sector         string    `json:"sector" gorm:"index"`
	TariffCategory string    `json:"tariff_category"`
	Address        string    `json:"address"`
	City           string    `json:"city"`
	Email          string    `json:"email"`
	CreatedAt      time.Time `json:"-"`
	UpdatedAt      time.Time `json:"-"`
}

// Category returns the tariff category in the form used for price lookups.
func (c *Client) Category() string {
	return strings.ToUpper(strings.TrimSpace(c.TariffCategory))
}
