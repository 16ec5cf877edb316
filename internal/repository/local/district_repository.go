package local

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/water-station-map/internal/domain"
	"github.com/water-station-map/internal/domain/repository"
	"go.uber.org/zap"
)

type districtRepository struct {
	path   string
	logger *zap.Logger

	mu        sync.RWMutex
	loaded    bool
	byName    map[string]*domain.District
	districts []*domain.District
}

// NewDistrictRepository создает справочник районов из JSON-файла
func NewDistrictRepository(path string, logger *zap.Logger) repository.DistrictRepository {
	return &districtRepository{
		path:   path,
		logger: logger,
		byName: make(map[string]*domain.District),
	}
}

// Load читает файл один раз. После неудачной попытки можно повторить.
func (r *districtRepository) Load(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.loaded {
		return nil
	}

	raw, err := os.ReadFile(r.path)
	if err != nil {
		r.logger.Error("Failed to read districts file", zap.String("path", r.path), zap.Error(err))
		return fmt.Errorf("read districts: %w", err)
	}

	var districts []*domain.District
	if err := json.Unmarshal(raw, &districts); err != nil {
		r.logger.Error("Failed to parse districts file", zap.String("path", r.path), zap.Error(err))
		return fmt.Errorf("parse districts: %w", err)
	}

	r.districts = make([]*domain.District, 0, len(districts))
	for _, d := range districts {
		if d == nil || d.Name == "" {
			continue
		}
		if _, dup := r.byName[d.Name]; dup {
			continue
		}
		r.byName[d.Name] = d
		r.districts = append(r.districts, d)
	}
	r.loaded = true

	r.logger.Info("Districts loaded", zap.Int("count", len(r.districts)))
	return nil
}

func (r *districtRepository) GetDistrict(name string) (*domain.District, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.byName[name]
	if !ok {
		return nil, false
	}
	copied := *d
	return &copied, true
}

func (r *districtRepository) GetAllDistricts() []*domain.District {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.District, len(r.districts))
	for i, d := range r.districts {
		copied := *d
		out[i] = &copied
	}
	return out
}
