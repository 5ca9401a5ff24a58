package models

// Shade is one selectable colour variant of a brand's shade chart.
type Shade struct {
	Name string `json:"name"`
	Code string `json:"code,omitempty"`
}

// Orderable reports whether the shade maps to an article code.
func (s Shade) Orderable() bool {
	return s.Code != ""
}

type ShadeRow struct {
	Category string  `json:"category"`
	Shades   []Shade `json:"shades"`
}
