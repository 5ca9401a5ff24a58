// Package summary renders an order as the fixed-width text sent to the
// order desk.
package summary

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"order_entry/internal/cart"
	"order_entry/internal/models"

	"github.com/shopspring/decimal"
)

const (
	tableWidth        = 73
	designationLength = 45
	amountWidth       = 20

	TimestampLayout = "02/01/2006 15:04"
)

var (
	headerLine    = strings.Repeat("=", tableWidth) + "\n"
	separatorLine = strings.Repeat("-", tableWidth) + "\n"
)

var weekdays = [...]string{"dimanche", "lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi"}

var months = [...]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

type Input struct {
	Client       *models.Client
	Lines        []models.CartLine
	Totals       cart.Totals
	Timestamp    time.Time
	DeliveryDate time.Time
	// TaxRate defaults to cart.TaxRate.
	TaxRate decimal.Decimal
}

// Format builds the order body. The output depends only on in.
func Format(in Input) string {
	client := in.Client
	if client == nil {
		client = &models.Client{}
	}
	rate := in.TaxRate
	if rate.IsZero() {
		rate = cart.TaxRate
	}

	count := 0
	for _, l := range in.Lines {
		count += l.Quantity
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d article(s) pour %s € TTC\n", count, money(in.Totals.Grand))
	fmt.Fprintf(&b, "Date & Heure : %s\n", in.Timestamp.Format(TimestampLayout))
	fmt.Fprintf(&b, "Client      : %s (Code: %s)\n", client.Name, client.Code)
	fmt.Fprintf(&b, "Adresse     : %s - %s\n", orDefault(client.Address, "Non spécifiée"), orDefault(client.City, "Non spécifiée"))
	fmt.Fprintf(&b, "Email       : %s\n", orDefault(client.Email, "Non spécifié"))
	fmt.Fprintf(&b, "Tarif appliqué: %s\n", client.TariffCategory)
	fmt.Fprintf(&b, "LIVRAISON SOUHAITÉE POUR : %s\n\n", strings.ToUpper(LongDate(in.DeliveryDate)))

	b.WriteString(headerLine)
	b.WriteString("DÉTAIL DES ARTICLES\n")
	b.WriteString(separatorLine)
	b.WriteString(padRight("Qté | Code              | Désignation", 26+designationLength))
	b.WriteString("| P.U. HT | Total HT\n")
	b.WriteString(separatorLine)

	for _, l := range in.Lines {
		designation := l.Designation
		if l.Backorder {
			designation += " (Attente)"
		}
		fmt.Fprintf(&b, "%s | %s | %s | %s € | %s €\n",
			padRight(fmt.Sprint(l.Quantity), 3),
			padRight(l.Code, 17),
			padRight(truncate(designation, designationLength), designationLength),
			padRight(money(l.UnitPrice), 7),
			padRight(money(l.Total), 8),
		)
	}

	b.WriteString(separatorLine)
	b.WriteString("\n")
	b.WriteString("RÉCAPITULATIF DES MONTANTS\n")
	b.WriteString(separatorLine)
	fmt.Fprintf(&b, "Total HT            : %s €\n", padLeft(money(in.Totals.PreTax), amountWidth))
	fmt.Fprintf(&b, "TVA (%s%%)             : %s €\n", rate.Mul(decimal.NewFromInt(100)).StringFixed(1), padLeft(money(in.Totals.Tax), amountWidth))
	fmt.Fprintf(&b, "TOTAL TTC           : %s €\n", padLeft(money(in.Totals.Grand), amountWidth))
	b.WriteString(headerLine)
	b.WriteString("Merci pour votre commande.\n")
	return b.String()
}

// Subject is the message subject for an order placed by client at ts.
func Subject(client *models.Client, ts time.Time) string {
	name := ""
	if client != nil {
		name = client.Name
	}
	return fmt.Sprintf("CMD %s [%s]", name, ts.Format(TimestampLayout))
}

// LongDate writes d as "mardi 21 octobre".
func LongDate(d time.Time) string {
	return fmt.Sprintf("%s %d %s", weekdays[d.Weekday()], d.Day(), months[d.Month()-1])
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func padRight(s string, n int) string {
	if pad := n - utf8.RuneCountInString(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}

func padLeft(s string, n int) string {
	if pad := n - utf8.RuneCountInString(s); pad > 0 {
		return strings.Repeat(" ", pad) + s
	}
	return s
}
