package kv

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/clinicsite/internal/logging"
)

// Tier is a named store in a Tiered chain.
type Tier struct {
	Name  string
	Store Store
}

// Tiered consults its tiers in priority order, first tier first.
type Tiered struct {
	tiers []Tier
	log   logging.Logger
}

func NewTiered(log logging.Logger, tiers ...Tier) *Tiered {
	return &Tiered{tiers: tiers, log: log.With("module", "kv")}
}

// Get returns the first value accepted by accept along with the name of the
// tier that held it. Read errors and rejected values are logged and treated
// as absent. A hit below the first tier is copied into every tier above it.
// Returns (nil, "") when no tier yields an acceptable value.
func (t *Tiered) Get(ctx context.Context, key string, accept func([]byte) error) ([]byte, string) {
	for i, tier := range t.tiers {
		v, err := tier.Store.Get(ctx, key)
		if err != nil {
			t.log.Warn(ctx, "tier read failed", "tier", tier.Name, "key", key, "error", err)
			continue
		}
		if v == nil {
			continue
		}
		if accept != nil {
			if err := accept(v); err != nil {
				t.log.Warn(ctx, "tier value rejected", "tier", tier.Name, "key", key, "error", err)
				continue
			}
		}

		for _, upper := range t.tiers[:i] {
			if err := upper.Store.Set(ctx, key, v); err != nil {
				t.log.Warn(ctx, "tier back-fill failed", "tier", upper.Name, "key", key, "error", err)
			}
		}
		return v, tier.Name
	}
	return nil, ""
}

// Set writes value to every tier. Every tier is attempted; failures are joined.
func (t *Tiered) Set(ctx context.Context, key string, value []byte) error {
	var errs []error
	for _, tier := range t.tiers {
		if err := tier.Store.Set(ctx, key, value); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", tier.Name, err))
		}
	}
	return errors.Join(errs...)
}

// Delete removes key from every tier. Every tier is attempted; failures are joined.
func (t *Tiered) Delete(ctx context.Context, key string) error {
	var errs []error
	for _, tier := range t.tiers {
		if err := tier.Store.Delete(ctx, key); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", tier.Name, err))
		}
	}
	return errors.Join(errs...)
}
