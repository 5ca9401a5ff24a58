package tabular

import (
	"testing"

	"order_entry/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_EmptyInput(t *testing.T) {
	for _, text := range []string{"", "   \n\r\n ", "\uFEFF"} {
		res := Parse(text, KindGeneric, Options{})
		assert.Empty(t, res.Records)
		assert.Zero(t, res.Skipped())
	}
}

func TestParse_ShortRowIsSkipped(t *testing.T) {
	res := Parse("Code;Nom;Email\nC1;Dupont", KindGeneric, Options{Source: "clients"})

	assert.Empty(t, res.Records)
	require.Len(t, res.Malformed, 1)
	assert.Equal(t, 2, res.Malformed[0].Line)
	assert.Equal(t, 2, res.Malformed[0].Got)
	assert.Equal(t, 3, res.Malformed[0].Want)
}

func TestParse_ArticleHeaders(t *testing.T) {
	text := "Code;Fam;Fourn;Lib;Prix HT|BASE;Tarif|NPRO;Tarif|tp;Tarif|ROBIN;Remarque\r\n" +
		"A1;SOIN;ACME; Shampoo 250ml ;12,50;11,00;;9,99 €;fragile\r\n" +
		"A2;SOIN;ACME;Masque;8,00;;;;\r\n"

	res := Parse(text, KindArticles, Options{})

	assert.Equal(t, []string{
		models.FieldArticleCode,
		models.FieldArticleFamily,
		models.FieldArticleSupplier,
		models.FieldArticleDesignation,
		models.FieldPriceBase,
		models.FieldPriceHomeHairdresser,
		models.FieldPricePublic,
		models.FieldPriceRobin,
		"Remarque",
	}, res.Headers)
	require.Len(t, res.Records, 2)

	first := res.Records[0]
	assert.Equal(t, "A1", first[models.FieldArticleCode])
	assert.Equal(t, "Shampoo 250ml", first[models.FieldArticleDesignation])
	assert.Equal(t, "12,50", first[models.FieldPriceBase])
	assert.Equal(t, "", first[models.FieldPricePublic])
	assert.Equal(t, "9,99 €", first[models.FieldPriceRobin])
	assert.Equal(t, "fragile", first["Remarque"])
	assert.Equal(t, "A2", res.Records[1][models.FieldArticleCode])
}

func TestParse_StockHeaders(t *testing.T) {
	text := "Article;Libelle;QuantitePhysique;Depot\nA1;Shampoo;1 204,5;MAIN\n"

	res := Parse(text, KindStock, Options{})

	assert.Equal(t, []string{models.FieldArticleCode, "Libelle", models.FieldStockQuantity, "Depot"}, res.Headers)
	require.Len(t, res.Records, 1)
	assert.Equal(t, "1 204,5", res.Records[0][models.FieldStockQuantity])
}

func TestParse_ClientHeaders(t *testing.T) {
	text := "Code;Nom;secteur;Catégorie Tarifaire client;Adresse;Commune;Email\n" +
		"C1;Salon Iris;NORD;npro;1 rue des Lilas;Saint-Denis;iris@example.com\n"

	res := Parse(text, KindGeneric, Options{})

	require.Len(t, res.Records, 1)
	rec := res.Records[0]
	assert.Equal(t, "NORD", rec[models.FieldClientSector])
	assert.Equal(t, "npro", rec[models.FieldClientTariffCategory])
	assert.Equal(t, "Salon Iris", rec[models.FieldClientName])
}

func TestParse_PositionalRulesOnlyApplyToTheirKind(t *testing.T) {
	assert.Equal(t, "Code", NormalizeHeader(" Code\r", 0, KindGeneric))
	assert.Equal(t, models.FieldArticleCode, NormalizeHeader("Code", 0, KindStock))
	assert.Equal(t, "Tarif|NPRO", NormalizeHeader("Tarif|NPRO", 5, KindGeneric))
	assert.Equal(t, models.FieldArticleDesignation, NormalizeHeader("SECTEUR", 3, KindArticles))
}

func TestParse_CustomSeparatorKeepsOrder(t *testing.T) {
	res := Parse("Code|Nom\nC2|B\nC1|A\nC2|B\n", KindGeneric, Options{Separator: "|"})

	require.Len(t, res.Records, 3)
	assert.Equal(t, "C2", res.Records[0]["Code"])
	assert.Equal(t, "C1", res.Records[1]["Code"])
	assert.Equal(t, "C2", res.Records[2]["Code"])
}

func TestParseShades(t *testing.T) {
	text := "\uFEFFCategorie;Nuances;Suite\r\n" +
		"Blonds;9.0:COL90, 9.1:COL91;10.0\r\n" +
		"\r\n" +
		";;\r\n" +
		";Noir:COL10;\r\n"

	rows := ParseShades(text, Options{})

	require.Len(t, rows, 2)
	assert.Equal(t, "Blonds", rows[0].Category)
	assert.Equal(t, []models.Shade{
		{Name: "9.0", Code: "COL90"},
		{Name: "9.1", Code: "COL91"},
		{Name: "10.0"},
	}, rows[0].Shades)
	assert.False(t, rows[0].Shades[2].Orderable())

	assert.Equal(t, "", rows[1].Category)
	assert.Equal(t, []models.Shade{{Name: "Noir", Code: "COL10"}}, rows[1].Shades)
}

func TestParseShades_HeaderOnly(t *testing.T) {
	assert.Empty(t, ParseShades("Categorie;Nuances\n", Options{}))
	assert.Empty(t, ParseShades("", Options{}))
}
