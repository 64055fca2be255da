package domain

import "github.com/google/uuid"

// Station is a stop on the metro network. Line is the line identifier
// (the original network uses colors: Blue, Red, Green).
type Station struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Line string    `json:"line,omitempty"`
}
