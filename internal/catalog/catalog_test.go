package catalog

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"order_entry/internal/models"
	"order_entry/internal/tabular"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	articlesCSV = "Code;Famille;Fournisseur;Designation;PrixHT;Prix|NPRO;Prix|TP;Prix|ROBIN;Gencod\n" +
		"A1;SOIN;ACME;Shampoo;12,50;;10,00;9,00;3760001\n" +
		"A2;SOIN;ACME;Masque;8,00;7,50;;;3760002\n" +
		"A3;COLOR;BRILL;Coloration 9.1;5,00;;;;3760003\n"
	clientsCSV = "Code;Nom;Secteur;Catégorie tarifaire;Adresse;Commune;Email\n" +
		"C1;Salon Iris;NORD;TP;1 rue des Lilas;Saint-Denis;iris@example.com\n" +
		"C2;Studio K;SUD;NPRO;;Saint-Pierre;\n"
	stockCSV = "Article;Libelle;QuantitePhysique\n" +
		"A1;Shampoo;5\n" +
		"A2;Masque;1 204,5\n"
)

func writeTables(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	return root
}

func defaultTables() map[string]string {
	f := DefaultFiles()
	return map[string]string{
		f.Articles:                  articlesCSV,
		f.Clients:                   clientsCSV,
		f.Stock:                     stockCSV,
		"Nuanciers/BRILL-BRILL.csv": "Categorie;Nuances\nBlonds;9.1:A3,9.2\n",
	}
}

func TestMerge_DefaultsMissingStockToZero(t *testing.T) {
	articles := []tabular.Record{
		{models.FieldArticleCode: "A1"},
		{models.FieldArticleCode: "A9"},
	}
	stock := []tabular.Record{
		{models.FieldArticleCode: "A1", models.FieldStockQuantity: " 12,5 "},
	}

	merged := Merge(articles, stock)

	require.Len(t, merged, 2)
	assert.Equal(t, "12.5", merged[0][models.FieldStockQuantity])
	assert.Equal(t, "0", merged[1][models.FieldStockQuantity])
	_, touched := articles[0][models.FieldStockQuantity]
	assert.False(t, touched, "input records must not be modified")
}

func TestParseStock(t *testing.T) {
	tests := map[string]int{
		"5":      5,
		"12.5":   12,
		"1204.5": 1204,
		"-3":     -3,
		"":       0,
		"abc":    0,
		"0":      0,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseStock(in), "ParseStock(%q)", in)
	}
}

func TestArticleFromRecord_KeepsUnknownColumns(t *testing.T) {
	a := ArticleFromRecord(tabular.Record{
		models.FieldArticleCode:   "A1",
		models.FieldPriceBase:     "1,00",
		models.FieldStockQuantity: "7",
		"Gencod":                  "3760001",
	})

	assert.Equal(t, "A1", a.Code)
	assert.Equal(t, 7, a.Stock)
	assert.Equal(t, map[string]string{"Gencod": "3760001"}, a.Extra)
	v, ok := a.Field("Gencod")
	assert.True(t, ok)
	assert.Equal(t, "3760001", v)
}

func TestLoader_Load(t *testing.T) {
	root := writeTables(t, defaultTables())
	loader := NewLoader(NewDirSource(root), DefaultFiles(), ";", zap.NewNop())

	cat, err := loader.Load(context.Background())
	require.NoError(t, err)

	require.Len(t, cat.Articles(), 3)
	require.Len(t, cat.Clients(), 2)

	a1, ok := cat.Article("A1")
	require.True(t, ok)
	assert.Equal(t, 5, a1.Stock)
	assert.Equal(t, "10,00", a1.PricePublic)

	a2, _ := cat.Article("A2")
	assert.Equal(t, 1204, a2.Stock)

	a3, _ := cat.Article("A3")
	assert.Equal(t, 0, a3.Stock)
	assert.True(t, a3.IsBackorder())

	c2, ok := cat.Client("C2")
	require.True(t, ok)
	assert.Equal(t, "NPRO", c2.TariffCategory)
	assert.Equal(t, "Saint-Pierre", c2.City)

	_, ok = cat.Article("missing")
	assert.False(t, ok)
}

func TestLoader_MissingFileIsReferenceLoadFailure(t *testing.T) {
	tables := defaultTables()
	delete(tables, DefaultFiles().Stock)
	loader := NewLoader(NewDirSource(writeTables(t, tables)), DefaultFiles(), ";", zap.NewNop())

	_, err := loader.Load(context.Background())

	assert.True(t, errors.Is(err, ErrReferenceLoad))
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLoader_HeaderOnlyClientsIsEmptySource(t *testing.T) {
	tables := defaultTables()
	tables[DefaultFiles().Clients] = "Code;Nom;Secteur\n"
	loader := NewLoader(NewDirSource(writeTables(t, tables)), DefaultFiles(), ";", zap.NewNop())

	_, err := loader.Load(context.Background())

	assert.ErrorIs(t, err, ErrEmptySource)
}

func TestLoader_HeaderOnlyStockIsEmptySource(t *testing.T) {
	tables := defaultTables()
	tables[DefaultFiles().Stock] = "Article;Libelle;QuantitePhysique\n"
	loader := NewLoader(NewDirSource(writeTables(t, tables)), DefaultFiles(), ";", zap.NewNop())

	cat, err := loader.Load(context.Background())

	assert.Nil(t, cat)
	assert.ErrorIs(t, err, ErrEmptySource)
}

func TestLoader_CanceledContextKeepsCause(t *testing.T) {
	loader := NewLoader(NewDirSource(writeTables(t, defaultTables())), DefaultFiles(), ";", zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := loader.Load(ctx)

	assert.ErrorIs(t, err, ErrReferenceLoad)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoader_HTTPSource(t *testing.T) {
	tables := defaultTables()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		content, ok := tables[r.URL.Path[1:]]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(content))
	}))
	defer srv.Close()

	loader := NewLoader(NewHTTPSource(srv.URL+"/"), DefaultFiles(), ";", zap.NewNop())

	cat, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, cat.Articles(), 3)

	_, err = loader.LoadShades(context.Background(), "UNKNOWN")
	assert.ErrorIs(t, err, ErrReferenceLoad)
}

func TestLoader_LoadShadesIsCached(t *testing.T) {
	tables := defaultTables()
	root := writeTables(t, tables)
	loader := NewLoader(NewDirSource(root), DefaultFiles(), ";", zap.NewNop())

	rows, err := loader.LoadShades(context.Background(), "BRILL")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "A3", rows[0].Shades[0].Code)

	require.NoError(t, os.Remove(filepath.Join(root, "Nuanciers", "BRILL-BRILL.csv")))
	again, err := loader.LoadShades(context.Background(), "BRILL")
	require.NoError(t, err)
	assert.Equal(t, rows, again)
}

type fakeStore struct {
	articles []models.Article
	clients  []models.Client
	err      error
}

func (s *fakeStore) ListArticles(ctx context.Context) ([]models.Article, error) {
	return s.articles, s.err
}

func (s *fakeStore) ListClients(ctx context.Context) ([]models.Client, error) {
	return s.clients, s.err
}

func TestStoreLoader(t *testing.T) {
	store := &fakeStore{
		articles: []models.Article{{Code: "A1"}},
		clients:  []models.Client{{Code: "C1"}},
	}
	cat, err := NewStoreLoader(store, zap.NewNop()).Load(context.Background())
	require.NoError(t, err)
	_, ok := cat.Client("C1")
	assert.True(t, ok)

	down := errors.New("down")
	_, err = NewStoreLoader(&fakeStore{err: down}, zap.NewNop()).Load(context.Background())
	assert.ErrorIs(t, err, ErrReferenceLoad)
	assert.ErrorIs(t, err, down)

	_, err = NewStoreLoader(&fakeStore{clients: store.clients}, zap.NewNop()).Load(context.Background())
	assert.ErrorIs(t, err, ErrEmptySource)
}

func TestLoader_LoadShadesRejectsPaths(t *testing.T) {
	loader := NewLoader(NewDirSource(t.TempDir()), DefaultFiles(), ";", zap.NewNop())

	for _, brand := range []string{"", "../etc", "a/b", `a\b`} {
		_, err := loader.LoadShades(context.Background(), brand)
		assert.ErrorIs(t, err, ErrInvalidBrand, brand)
	}
}
