package models

import "github.com/Conceptual-Machines/magda-charts/internal/theory"

// ScaleRequest asks for the scale of a key
type ScaleRequest struct {
	Key   string `json:"key" binding:"required"`
	Color string `json:"color"` // "sharp" or "flat"; empty uses the scheme
	Mode  string `json:"mode"`  // any of the seven modes; empty is major
	// Scheme picks the color when Color is empty
	Scheme string `json:"scheme"`
}

type ScaleResponse struct {
	Key   string       `json:"key"`
	Color theory.Color `json:"color"`
	Mode  theory.Mode  `json:"mode"`
	Scale []string     `json:"scale"`
}

// ChordRenderRequest renders one relative chord symbol
type ChordRenderRequest struct {
	Symbol string `json:"symbol" binding:"required"`
	Key    string `json:"key" binding:"required"`
	Scheme string `json:"scheme"`
}

type ChordRenderResponse struct {
	Symbol string `json:"symbol"`
	Key    string `json:"key"`
	Chord  string `json:"chord"`
}

// RenderOptions are shared by inline and stored progression renders
type RenderOptions struct {
	Key        string `json:"key" form:"key" binding:"required"`
	Scheme     string `json:"scheme" form:"scheme"`
	Modulation int    `json:"modulation" form:"modulation"` // semitones added to Key
	Compact    bool   `json:"compact" form:"compact"`       // one chord per repeat run
}

// ProgressionRenderRequest renders a progression given inline
type ProgressionRenderRequest struct {
	Symbols []string `json:"symbols" binding:"required"`
	RenderOptions
}

type ProgressionRenderResponse struct {
	ID              string   `json:"id,omitempty"`
	Key             string   `json:"key"`
	Scheme          string   `json:"scheme"`
	Symbols         []string `json:"symbols"`
	Chords          []string `json:"chords"`
	RepeatStructure []int    `json:"repeat_structure"`
	Length          int      `json:"length"`
	Compact         bool     `json:"compact"`
}

// CreateProgressionRequest stores a progression
type CreateProgressionRequest struct {
	Symbols []string `json:"symbols" binding:"required"`
}

type ProgressionResponse struct {
	ID              string   `json:"id"`
	Symbols         []string `json:"symbols"`
	Length          int      `json:"length"`
	RepeatStructure []int    `json:"repeat_structure"`
	CreatedAt       string   `json:"created_at"`
}

type ColorSchemeResponse struct {
	Name     string                  `json:"name"`
	Fallback theory.Color            `json:"fallback"`
	Colors   map[string]theory.Color `json:"colors"`
}
