package repository

import (
	"context"
	"errors"

	"github.com/Conceptual-Machines/magda-charts/internal/models"
	"gorm.io/gorm"
)

var ErrProgressionNotFound = errors.New("progression not found")

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// ProgressionRepository persists chord progressions
type ProgressionRepository interface {
	// FirstOrCreate returns the stored progression with exactly these symbols,
	// creating it if needed. created reports whether a new row was inserted.
	FirstOrCreate(ctx context.Context, symbols []string) (progression *models.Progression, created bool, err error)
	GetByID(ctx context.Context, id string) (*models.Progression, error)
	List(ctx context.Context, limit int) ([]models.Progression, error)
}

type progressionRepo struct {
	db *gorm.DB
}

func NewProgressionRepository(db *gorm.DB) ProgressionRepository {
	return &progressionRepo{db: db}
}

func (r *progressionRepo) FirstOrCreate(ctx context.Context, symbols []string) (*models.Progression, bool, error) {
	joined := models.JoinSymbols(symbols)

	existing, err := r.findBySymbols(ctx, joined)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	p := models.Progression{Symbols: joined, ChordCount: len(symbols)}
	if createErr := r.db.WithContext(ctx).Create(&p).Error; createErr != nil {
		// Lost a race with a concurrent insert of the same symbols
		if existing, err := r.findBySymbols(ctx, joined); err == nil {
			return existing, false, nil
		}
		return nil, false, createErr
	}
	return &p, true, nil
}

func (r *progressionRepo) findBySymbols(ctx context.Context, joined string) (*models.Progression, error) {
	var p models.Progression
	if err := r.db.WithContext(ctx).Where("symbols = ?", joined).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *progressionRepo) GetByID(ctx context.Context, id string) (*models.Progression, error) {
	var p models.Progression
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProgressionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *progressionRepo) List(ctx context.Context, limit int) ([]models.Progression, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	var progressions []models.Progression
	err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&progressions).Error
	if err != nil {
		return nil, err
	}
	if progressions == nil {
		progressions = []models.Progression{}
	}
	return progressions, nil
}
