// Package cart keeps the lines of an order consistent with the selected
// client's tariff and with the available stock.
package cart

import (
	"strconv"
	"strings"

	"order_entry/internal/models"
	"order_entry/internal/pricing"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// TaxRate is the VAT rate applied to every order.
var TaxRate = decimal.RequireFromString("0.085")

// Catalog is the reference data the engine prices against.
type Catalog interface {
	Article(code string) (*models.Article, bool)
	Client(code string) (*models.Client, bool)
}

type Direction int

const (
	Increase Direction = iota
	Decrease
)

// ParseDirection accepts "increase" and "decrease".
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToLower(s) {
	case "increase":
		return Increase, true
	case "decrease":
		return Decrease, true
	}
	return 0, false
}

type Totals struct {
	PreTax decimal.Decimal `json:"pre_tax"`
	Tax    decimal.Decimal `json:"tax"`
	Grand  decimal.Decimal `json:"grand"`
}

// Engine applies cart commands to a session. Every command either succeeds
// completely or leaves the session untouched.
type Engine struct {
	catalog Catalog
	session *models.Session
	logger  *zap.Logger
}

func NewEngine(catalog Catalog, session *models.Session, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{catalog: catalog, session: session, logger: logger}
}

func (e *Engine) Session() *models.Session {
	return e.session
}

// Client returns the selected client, or nil.
func (e *Engine) Client() *models.Client {
	if !e.session.HasClient() {
		return nil
	}
	c, ok := e.catalog.Client(e.session.ClientCode)
	if !ok {
		return nil
	}
	return c
}

func (e *Engine) Lines() []models.CartLine {
	return e.session.Lines
}

func (e *Engine) Line(code string) (models.CartLine, bool) {
	i := e.session.LineIndex(code)
	if i < 0 {
		return models.CartLine{}, false
	}
	return e.session.Lines[i], true
}

// AddOrSetLine parses rawQty and calls AddOrSetQuantity.
func (e *Engine) AddOrSetLine(code, rawQty string) (models.CartLine, error) {
	return e.AddOrSetQuantity(code, ParseQuantity(rawQty))
}

// AddOrSetQuantity sets the quantity of code to qty. An existing line gets
// the new quantity, it is not added to the old one. Quantities below 1 are
// treated as 1.
func (e *Engine) AddOrSetQuantity(code string, qty int) (models.CartLine, error) {
	client := e.Client()
	if client == nil {
		return models.CartLine{}, ErrNoClientSelected
	}
	article, ok := e.catalog.Article(code)
	if !ok {
		return models.CartLine{}, ErrUnknownArticle
	}
	if qty < 1 {
		qty = 1
	}
	if article.ExceedsStock(qty) {
		return models.CartLine{}, &InsufficientStockError{
			Code:        code,
			Designation: article.Designation,
			Requested:   qty,
			Available:   article.Stock,
		}
	}

	price := pricing.Resolve(article, client)
	if i := e.session.LineIndex(code); i >= 0 {
		line := &e.session.Lines[i]
		line.UnitPrice = price
		line.Quantity = qty
		line.Recalculate()
		e.logger.Debug("cart line updated", zap.String("code", code), zap.Int("quantity", qty))
		return *line, nil
	}

	line := models.CartLine{
		Code:        code,
		Designation: article.Designation,
		UnitPrice:   price,
		Quantity:    qty,
		Backorder:   article.IsBackorder(),
	}
	line.Recalculate()
	e.session.Lines = append(e.session.Lines, line)
	e.logger.Debug("cart line added",
		zap.String("code", code),
		zap.Int("quantity", qty),
		zap.Bool("backorder", line.Backorder),
	)
	return line, nil
}

// AdjustQuantity moves the quantity of code by one. Decreasing a line of one
// unit removes it. Increasing is checked against stock; decreasing is not.
// Codes not in the cart are ignored.
func (e *Engine) AdjustQuantity(code string, dir Direction) error {
	i := e.session.LineIndex(code)
	if i < 0 {
		return nil
	}
	line := &e.session.Lines[i]

	switch dir {
	case Decrease:
		if line.Quantity <= 1 {
			e.RemoveLine(code)
			return nil
		}
		line.Quantity--
	case Increase:
		next := line.Quantity + 1
		if article, ok := e.catalog.Article(code); ok && article.ExceedsStock(next) {
			return &InsufficientStockError{
				Code:        code,
				Designation: article.Designation,
				Requested:   next,
				Available:   article.Stock,
			}
		}
		line.Quantity = next
	}
	line.Recalculate()
	return nil
}

// RemoveLine drops the line for code if there is one.
func (e *Engine) RemoveLine(code string) {
	i := e.session.LineIndex(code)
	if i < 0 {
		return
	}
	e.session.Lines = append(e.session.Lines[:i], e.session.Lines[i+1:]...)
	e.logger.Debug("cart line removed", zap.String("code", code))
}

// OnClientChanged selects client. A nil client empties the cart, since
// prices depend on the client. Otherwise every line is repriced for the new
// client; quantities are kept and stock is not re-checked.
func (e *Engine) OnClientChanged(client *models.Client) {
	if client == nil {
		e.session.ClientCode = ""
		e.Clear()
		return
	}

	e.session.ClientCode = client.Code
	for i := range e.session.Lines {
		line := &e.session.Lines[i]
		article, ok := e.catalog.Article(line.Code)
		if !ok {
			continue
		}
		line.UnitPrice = pricing.Resolve(article, client)
		line.Recalculate()
	}
	e.logger.Debug("cart repriced", zap.String("client", client.Code), zap.Int("lines", len(e.session.Lines)))
}

// ToggleShade removes the line of a shade already in the cart, or adds it
// with defaultQty. It reports whether the shade is in the cart afterwards.
func (e *Engine) ToggleShade(code, defaultQty string) (bool, error) {
	if e.session.LineIndex(code) >= 0 {
		e.RemoveLine(code)
		return false, nil
	}
	if _, err := e.AddOrSetLine(code, defaultQty); err != nil {
		return false, err
	}
	return true, nil
}

func (e *Engine) Totals() Totals {
	return Compute(e.session.Lines)
}

func (e *Engine) Clear() {
	e.session.Lines = nil
}

// Compute sums line totals and applies TaxRate.
func Compute(lines []models.CartLine) Totals {
	preTax := decimal.Zero
	for _, l := range lines {
		preTax = preTax.Add(l.Total)
	}
	tax := preTax.Mul(TaxRate)
	return Totals{PreTax: preTax, Tax: tax, Grand: preTax.Add(tax)}
}

// ParseQuantity reads the leading integer of s. Anything that does not give
// a positive number is 1.
func ParseQuantity(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil || n < 1 {
		return 1
	}
	return n
}
