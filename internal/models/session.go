package models

import "time"

// Session is the state of one user's order entry: the selected client, the
// cart and the requested delivery date. Reference data is not part of it.
type Session struct {
	ID                  string     `json:"id"`
	ClientCode          string     `json:"client_code,omitempty"`
	Lines               []CartLine `json:"lines"`
	DeliveryDate        time.Time  `json:"delivery_date"`
	InitialDeliveryDate time.Time  `json:"initial_delivery_date"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

func (s *Session) HasClient() bool {
	return s.ClientCode != ""
}

// LineIndex returns the position of the line for code, or -1.
func (s *Session) LineIndex(code string) int {
	for i := range s.Lines {
		if s.Lines[i].Code == code {
			return i
		}
	}
	return -1
}

// ItemCount is the number of units across all lines.
func (s *Session) ItemCount() int {
	n := 0
	for _, l := range s.Lines {
		n += l.Quantity
	}
	return n
}

// Clone returns a copy that shares no slice memory with s.
func (s *Session) Clone() *Session {
	c := *s
	c.Lines = append([]CartLine(nil), s.Lines...)
	return &c
}
