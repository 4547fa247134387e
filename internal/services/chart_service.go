package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Conceptual-Machines/magda-charts/internal/logger"
	"github.com/Conceptual-Machines/magda-charts/internal/metrics"
	"github.com/Conceptual-Machines/magda-charts/internal/models"
	"github.com/Conceptual-Machines/magda-charts/internal/repository"
	"github.com/Conceptual-Machines/magda-charts/internal/theory"
)

// ErrStoreDisabled is returned by the persistence operations when no database
// is configured.
var ErrStoreDisabled = errors.New("progression store is not configured")

// RenderResult is a rendered progression
type RenderResult struct {
	Key             theory.Key
	KeyName         string // key spelled in the scheme's color
	Scheme          string
	Symbols         []string
	Chords          []string
	RepeatStructure []int
	Compact         bool
}

// ChartService renders scales, chords and progressions and stores
// progressions for later rendering.
type ChartService struct {
	schemes    *theory.Registry
	repo       repository.ProgressionRepository // nil when the store is disabled
	sentry     *metrics.SentryMetrics
	cloudwatch *metrics.Client

	// Parsed progressions keyed by stored id. Stored rows never change, so
	// entries are never invalidated.
	parsed sync.Map
}

func NewChartService(
	schemes *theory.Registry,
	repo repository.ProgressionRepository,
	cloudwatch *metrics.Client,
) *ChartService {
	return &ChartService{
		schemes:    schemes,
		repo:       repo,
		sentry:     metrics.NewSentryMetrics(),
		cloudwatch: cloudwatch,
	}
}

// StoreEnabled reports whether progressions can be stored
func (s *ChartService) StoreEnabled() bool {
	return s.repo != nil
}

// Schemes returns the color scheme registry
func (s *ChartService) Schemes() *theory.Registry {
	return s.schemes
}

// ColorScheme looks up a scheme by name; an empty name is the default scheme
func (s *ChartService) ColorScheme(name string) (*theory.ColorScheme, error) {
	if name == "" {
		name = theory.DefaultSchemeName
	}
	return s.schemes.Get(name)
}

// GenerateScale returns the scale of key in mode. An empty color picks the
// color the named scheme assigns to key.
func (s *ChartService) GenerateScale(ctx context.Context, req models.ScaleRequest) (*models.ScaleResponse, error) {
	start := time.Now()
	resp, err := s.generateScale(req)
	s.record(ctx, "scale", scaleLen(resp), start, err)
	return resp, err
}

func (s *ChartService) generateScale(req models.ScaleRequest) (*models.ScaleResponse, error) {
	key, err := theory.ParseKey(req.Key)
	if err != nil {
		return nil, err
	}
	mode, err := theory.ParseMode(req.Mode)
	if err != nil {
		return nil, err
	}

	var color theory.Color
	if req.Color != "" {
		if color, err = theory.ParseColor(req.Color); err != nil {
			return nil, err
		}
	} else {
		scheme, err := s.ColorScheme(req.Scheme)
		if err != nil {
			return nil, err
		}
		color = scheme.ColorOf(key.PitchClass())
	}

	scale, err := theory.GenerateScale(key, color, mode)
	if err != nil {
		return nil, err
	}
	return &models.ScaleResponse{
		Key:   key.Name(color),
		Color: color,
		Mode:  mode,
		Scale: scale[:],
	}, nil
}

func scaleLen(resp *models.ScaleResponse) int {
	if resp == nil {
		return 0
	}
	return len(resp.Scale)
}

// RenderChord renders a single relative chord symbol into a key
func (s *ChartService) RenderChord(ctx context.Context, req models.ChordRenderRequest) (*models.ChordRenderResponse, error) {
	start := time.Now()
	resp, err := s.renderChord(req)
	chords := 0
	if resp != nil {
		chords = 1
	}
	s.record(ctx, "chord", chords, start, err)
	return resp, err
}

func (s *ChartService) renderChord(req models.ChordRenderRequest) (*models.ChordRenderResponse, error) {
	chord, err := theory.ParseChord(req.Symbol)
	if err != nil {
		return nil, err
	}
	key, err := theory.ParseKey(req.Key)
	if err != nil {
		return nil, err
	}
	scheme, err := s.ColorScheme(req.Scheme)
	if err != nil {
		return nil, err
	}

	rendered, err := chord.RenderInto(key, scheme)
	if err != nil {
		return nil, err
	}
	return &models.ChordRenderResponse{
		Symbol: chord.Symbol(),
		Key:    key.Name(scheme.ColorOf(key.PitchClass())),
		Chord:  rendered,
	}, nil
}

// RenderProgression parses and renders an inline progression
func (s *ChartService) RenderProgression(ctx context.Context, symbols []string, opts models.RenderOptions) (*RenderResult, error) {
	start := time.Now()
	result, err := s.renderInline(symbols, opts)
	s.record(ctx, "progression", resultLen(result), start, err)
	return result, err
}

func (s *ChartService) renderInline(symbols []string, opts models.RenderOptions) (*RenderResult, error) {
	p, err := theory.NewProgression(symbols)
	if err != nil {
		return nil, err
	}
	return s.render(p, opts)
}

func (s *ChartService) render(p *theory.Progression, opts models.RenderOptions) (*RenderResult, error) {
	key, err := theory.ParseKey(opts.Key)
	if err != nil {
		return nil, err
	}
	key = key.Transpose(opts.Modulation)

	scheme, err := s.ColorScheme(opts.Scheme)
	if err != nil {
		return nil, err
	}

	var chords []string
	if opts.Compact {
		chords, err = p.RenderCompact(key, scheme)
	} else {
		chords, err = p.RenderInto(key, scheme)
	}
	if err != nil {
		return nil, err
	}

	return &RenderResult{
		Key:             key,
		KeyName:         key.Name(scheme.ColorOf(key.PitchClass())),
		Scheme:          scheme.Name(),
		Symbols:         p.Symbols(),
		Chords:          chords,
		RepeatStructure: p.RepeatStructure(),
		Compact:         opts.Compact,
	}, nil
}

func resultLen(r *RenderResult) int {
	if r == nil {
		return 0
	}
	return len(r.Chords)
}

// StoreProgression validates and stores a progression. Storing the same
// symbols twice returns the existing record.
func (s *ChartService) StoreProgression(ctx context.Context, symbols []string) (*models.Progression, *theory.Progression, bool, error) {
	if s.repo == nil {
		return nil, nil, false, ErrStoreDisabled
	}

	p, err := theory.NewProgression(symbols)
	if err != nil {
		return nil, nil, false, err
	}

	stored, created, err := s.repo.FirstOrCreate(ctx, p.Symbols())
	if err != nil {
		return nil, nil, false, fmt.Errorf("failed to store progression: %w", err)
	}

	actual, _ := s.parsed.LoadOrStore(stored.ID, p)
	if created {
		logger.Info("Progression stored", logger.Fields{
			"progression_id": stored.ID,
			"chords":         stored.ChordCount,
		})
	}
	return stored, actual.(*theory.Progression), created, nil
}

// GetProgression loads a stored progression and its parsed form
func (s *ChartService) GetProgression(ctx context.Context, id string) (*models.Progression, *theory.Progression, error) {
	if s.repo == nil {
		return nil, nil, ErrStoreDisabled
	}

	stored, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	p, err := s.ParseStored(stored)
	if err != nil {
		return nil, nil, err
	}
	return stored, p, nil
}

// ParseStored returns the parsed form of a stored row, memoized by id
func (s *ChartService) ParseStored(stored *models.Progression) (*theory.Progression, error) {
	if cached, ok := s.parsed.Load(stored.ID); ok {
		return cached.(*theory.Progression), nil
	}

	p, err := theory.NewProgression(stored.SymbolList())
	if err != nil {
		return nil, fmt.Errorf("stored progression %s: %w", stored.ID, err)
	}
	actual, _ := s.parsed.LoadOrStore(stored.ID, p)
	return actual.(*theory.Progression), nil
}

// RenderStored renders a stored progression
func (s *ChartService) RenderStored(ctx context.Context, id string, opts models.RenderOptions) (*RenderResult, error) {
	start := time.Now()
	_, p, err := s.GetProgression(ctx, id)
	var result *RenderResult
	if err == nil {
		result, err = s.render(p, opts)
	}
	s.record(ctx, "stored_progression", resultLen(result), start, err)
	return result, err
}

// ListProgressions returns recently stored progressions
func (s *ChartService) ListProgressions(ctx context.Context, limit int) ([]models.Progression, error) {
	if s.repo == nil {
		return nil, ErrStoreDisabled
	}
	return s.repo.List(ctx, limit)
}

func (s *ChartService) record(ctx context.Context, operation string, chords int, start time.Time, err error) {
	duration := time.Since(start)
	s.sentry.RecordRender(ctx, operation, chords, duration, err)
	s.cloudwatch.RecordRender(operation, chords, err == nil)
	logger.LogRender(ctx, operation, duration, logger.Fields{
		"chords":  chords,
		"success": err == nil,
	})
}
