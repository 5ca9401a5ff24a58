package summary

import (
	"strings"
	"testing"
	"time"

	"order_entry/internal/cart"
	"order_entry/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func line(code, designation, price string, qty int, backorder bool) models.CartLine {
	l := models.CartLine{
		Code:        code,
		Designation: designation,
		UnitPrice:   decimal.RequireFromString(price),
		Quantity:    qty,
		Backorder:   backorder,
	}
	l.Recalculate()
	return l
}

func sampleInput() Input {
	lines := []models.CartLine{
		line("A1", "Shampoo", "8.00", 2, false),
		line("A2", "Coloration permanente nuance blond très clair cendré", "12.00", 1, true),
	}
	return Input{
		Client: &models.Client{
			Code:           "C1",
			Name:           "Salon Iris",
			Address:        "1 rue des Lilas",
			TariffCategory: "TP",
		},
		Lines:        lines,
		Totals:       cart.Compute(lines),
		Timestamp:    time.Date(2026, time.October, 18, 14, 5, 0, 0, time.UTC),
		DeliveryDate: time.Date(2026, time.October, 20, 0, 0, 0, 0, time.UTC),
	}
}

func TestFormat(t *testing.T) {
	want := "3 article(s) pour 30.38 € TTC\n" +
		"Date & Heure : 18/10/2026 14:05\n" +
		"Client      : Salon Iris (Code: C1)\n" +
		"Adresse     : 1 rue des Lilas - Non spécifiée\n" +
		"Email       : Non spécifié\n" +
		"Tarif appliqué: TP\n" +
		"LIVRAISON SOUHAITÉE POUR : MARDI 20 OCTOBRE\n" +
		"\n" +
		"=========================================================================\n" +
		"DÉTAIL DES ARTICLES\n" +
		"-------------------------------------------------------------------------\n" +
		"Qté | Code              | Désignation                                  | P.U. HT | Total HT\n" +
		"-------------------------------------------------------------------------\n" +
		"2   | A1                | Shampoo                                       | 8.00    € | 16.00    €\n" +
		"1   | A2                | Coloration permanente nuance blond très clair | 12.00   € | 12.00    €\n" +
		"-------------------------------------------------------------------------\n" +
		"\n" +
		"RÉCAPITULATIF DES MONTANTS\n" +
		"-------------------------------------------------------------------------\n" +
		"Total HT            :                28.00 €\n" +
		"TVA (8.5%)             :                 2.38 €\n" +
		"TOTAL TTC           :                30.38 €\n" +
		"=========================================================================\n" +
		"Merci pour votre commande.\n"

	in := sampleInput()
	got := Format(in)

	assert.Equal(t, want, got)
	assert.Equal(t, got, Format(in), "output must be stable")
}

func TestFormat_BackorderSuffix(t *testing.T) {
	in := sampleInput()
	in.Lines = []models.CartLine{line("A3", "Masque", "5.00", 1, true)}
	in.Totals = cart.Compute(in.Lines)

	assert.Contains(t, Format(in), "| Masque (Attente)                              |")
}

func TestFormat_CustomTaxRate(t *testing.T) {
	in := sampleInput()
	in.TaxRate = decimal.RequireFromString("0.2")

	assert.Contains(t, Format(in), "TVA (20.0%)")
}

func TestSubject(t *testing.T) {
	ts := time.Date(2026, time.March, 3, 9, 7, 0, 0, time.UTC)

	assert.Equal(t, "CMD Salon Iris [03/03/2026 09:07]", Subject(&models.Client{Name: "Salon Iris"}, ts))
}

func TestLongDate(t *testing.T) {
	d := time.Date(2026, time.December, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "mardi 1 décembre", LongDate(d))
	assert.Equal(t, "MARDI 1 DÉCEMBRE", strings.ToUpper(LongDate(d)))
}
