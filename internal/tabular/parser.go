// Package tabular parses the semicolon-delimited reference exports (articles,
// stock, clients, shade charts) into records keyed by normalized field names.
package tabular

import (
	"fmt"
	"strings"

	"order_entry/internal/models"

	"go.uber.org/zap"
)

// Kind selects the header normalization rules applied to a table.
type Kind int

const (
	KindGeneric Kind = iota
	KindArticles
	KindStock
)

func (k Kind) String() string {
	switch k {
	case KindArticles:
		return "articles"
	case KindStock:
		return "stock"
	default:
		return "generic"
	}
}

const DefaultSeparator = ";"

const bom = "\uFEFF"

// Record maps a normalized field name to its trimmed value.
type Record map[string]string

// MalformedRowError describes a data row whose field count does not match
// the header. Such rows are skipped, never fatal.
type MalformedRowError struct {
	Line int
	Got  int
	Want int
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("line %d: %d fields, header has %d", e.Line, e.Got, e.Want)
}

type Options struct {
	Separator string
	// Source names the table in log output.
	Source string
	Logger *zap.Logger
}

func (o Options) separator() string {
	if o.Separator == "" {
		return DefaultSeparator
	}
	return o.Separator
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

type Result struct {
	Headers   []string
	Records   []Record
	Malformed []*MalformedRowError
}

// Skipped is the number of data rows dropped for a field count mismatch.
func (r Result) Skipped() int {
	return len(r.Malformed)
}

// Parse turns raw delimited text into records. The first line is the header;
// its cells are renamed according to kind. Rows whose field count differs
// from the header are skipped and reported in Result.Malformed.
func Parse(text string, kind Kind, opts Options) Result {
	log := opts.logger().With(zap.String("source", opts.Source), zap.Stringer("kind", kind))
	sep := opts.separator()

	text = strings.TrimSpace(strings.TrimPrefix(text, bom))
	if text == "" {
		log.Warn("table is empty")
		return Result{}
	}

	lines := strings.Split(text, "\n")
	raw := strings.Split(lines[0], sep)
	headers := make([]string, len(raw))
	for i, h := range raw {
		headers[i] = NormalizeHeader(h, i, kind)
	}
	log.Debug("headers normalized", zap.Strings("headers", headers))

	res := Result{Headers: headers}
	for i := 1; i < len(lines); i++ {
		values := strings.Split(lines[i], sep)
		if len(values) != len(headers) {
			bad := &MalformedRowError{Line: i + 1, Got: len(values), Want: len(headers)}
			res.Malformed = append(res.Malformed, bad)
			log.Warn("row skipped", zap.Error(bad), zap.String("content", strings.TrimRight(lines[i], "\r")))
			continue
		}

		rec := make(Record, len(headers))
		for j, h := range headers {
			rec[h] = cleanCell(values[j])
		}
		res.Records = append(res.Records, rec)
	}

	log.Info("table parsed", zap.Int("records", len(res.Records)), zap.Int("skipped", res.Skipped()))
	return res
}

// NormalizeHeader maps a raw header cell at position index to the field name
// used downstream. Unrecognised headers keep their cleaned text.
func NormalizeHeader(header string, index int, kind Kind) string {
	cleaned := cleanCell(header)
	upper := strings.ToUpper(cleaned)

	switch kind {
	case KindArticles:
		switch index {
		case 0:
			return models.FieldArticleCode
		case 1:
			return models.FieldArticleFamily
		case 2:
			return models.FieldArticleSupplier
		case 3:
			return models.FieldArticleDesignation
		case 4:
			return models.FieldPriceBase
		}
		switch {
		case strings.Contains(upper, "|NPRO"):
			return models.FieldPriceHomeHairdresser
		case strings.Contains(upper, "|TP"):
			return models.FieldPricePublic
		case strings.Contains(upper, "|ROBIN"):
			return models.FieldPriceRobin
		}
	case KindStock:
		if index == 0 {
			return models.FieldArticleCode
		}
		if strings.Contains(upper, "QUANTITEPHYSIQUE") {
			return models.FieldStockQuantity
		}
	}

	if upper == "SECTEUR" {
		return models.FieldClientSector
	}
	if strings.Contains(upper, "CATÉGORIE TARIFAIRE") {
		return models.FieldClientTariffCategory
	}
	return cleaned
}

func cleanCell(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), "\r", "")
}
