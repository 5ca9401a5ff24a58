package tabular

import (
	"regexp"
	"strings"

	"order_entry/internal/models"

	"go.uber.org/zap"
)

var lineBreak = regexp.MustCompile(`\r\n?|\n`)

// ParseShades reads a shade chart. After the header, each row holds a
// category label followed by cells of comma separated "name:code" pairs. A
// pair without a code describes a shade that cannot be ordered.
func ParseShades(text string, opts Options) []models.ShadeRow {
	log := opts.logger().With(zap.String("source", opts.Source))
	sep := opts.separator()

	text = strings.TrimSpace(strings.TrimPrefix(text, bom))
	if text == "" {
		log.Warn("shade chart is empty")
		return nil
	}

	lines := lineBreak.Split(text, -1)
	if len(lines) <= 1 {
		log.Warn("shade chart has no data rows")
		return nil
	}

	var rows []models.ShadeRow
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "" {
			continue
		}

		values := strings.Split(lines[i], sep)
		row := models.ShadeRow{Category: cleanCell(values[0])}
		for _, cell := range values[1:] {
			for _, part := range strings.Split(cleanCell(cell), ",") {
				part = strings.TrimSpace(part)
				if part == "" {
					continue
				}
				row.Shades = append(row.Shades, parseShade(part))
			}
		}

		if row.Category == "" && len(row.Shades) == 0 {
			log.Debug("shade row dropped", zap.Int("line", i+1))
			continue
		}
		rows = append(rows, row)
	}

	log.Info("shade chart parsed", zap.Int("rows", len(rows)))
	return rows
}

func parseShade(part string) models.Shade {
	name, code, _ := strings.Cut(part, ":")
	if i := strings.IndexByte(code, ':'); i >= 0 {
		code = code[:i]
	}
	return models.Shade{Name: name, Code: code}
}
