package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// symbolSeparator joins chord symbols in the Symbols column. Chord symbols
// never contain whitespace.
const symbolSeparator = " "

// Progression is a stored chord progression. Progressions are shared between
// songs and sections, so each distinct symbol sequence is stored once.
type Progression struct {
	ID         string    `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Symbols    string    `gorm:"type:text;uniqueIndex;not null" json:"-"`
	ChordCount int       `gorm:"not null" json:"chord_count"`
}

// BeforeCreate assigns a UUID when none is set
func (p *Progression) BeforeCreate(_ *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

// SymbolList splits the stored symbols back into a slice
func (p *Progression) SymbolList() []string {
	if p.Symbols == "" {
		return nil
	}
	return strings.Split(p.Symbols, symbolSeparator)
}

// JoinSymbols builds the Symbols column value for a sequence
func JoinSymbols(symbols []string) string {
	return strings.Join(symbols, symbolSeparator)
}
