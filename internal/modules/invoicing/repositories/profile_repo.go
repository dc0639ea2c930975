package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/vedvijaywargiya23/InvoiceVista/internal/core/store"
	"github.com/vedvijaywargiya23/InvoiceVista/internal/modules/invoicing/models"
	"github.com/vedvijaywargiya23/InvoiceVista/internal/shared/utils"
)

type ProfileRepo interface {
	Get(ctx context.Context) (models.Profile, error)
	Save(ctx context.Context, p models.Profile) error
}

type profileRepo struct {
	store store.Store
	mu    sync.Mutex
}

func NewProfileRepo(s store.Store) ProfileRepo {
	return &profileRepo{store: s}
}

// Get returns the stored profile, or a zero profile when none is stored or it is malformed
func (r *profileRepo) Get(ctx context.Context) (models.Profile, error) {
	var p models.Profile

	raw, err := r.store.Get(ctx, store.KeyProfile)
	if errors.Is(err, store.ErrNotFound) {
		return p, nil
	}
	if err != nil {
		return p, fmt.Errorf("failed to load profile: %w", err)
	}

	if err := json.Unmarshal(raw, &p); err != nil {
		utils.LogWarn("Stored profile is malformed, using defaults", map[string]interface{}{
			"error": err.Error(),
		})
		return models.Profile{}, nil
	}
	return p, nil
}

func (r *profileRepo) Save(ctx context.Context, p models.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}
	if err := r.store.Put(ctx, store.KeyProfile, raw); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}
