// Quizfunnel - Quiz Funnel Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quizfunnel

package recommend

import (
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"
)

// Registry holds one engine per variant id.
type Registry struct {
	mu        sync.RWMutex
	engines   map[string]*Engine
	defaultID string
	logger    zerolog.Logger
	onUnrecog func(UnrecognizedAnswer)
}

// NewRegistry creates a registry preloaded with the built-in variants.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRegistry(logger zerolog.Logger) (*Registry, error) {
	r := &Registry{
		engines:   make(map[string]*Engine),
		defaultID: DefaultVariantID,
		logger:    logger,
	}
	for _, v := range BuiltinVariants() {
		if err := r.Register(v); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// SetUnrecognizedHandler installs fn on every current and future engine.
func (r *Registry) SetUnrecognizedHandler(fn func(UnrecognizedAnswer)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onUnrecog = fn
	for _, e := range r.engines {
		e.SetUnrecognizedHandler(fn)
	}
}

// Register validates v and adds an engine for it.
func (r *Registry) Register(v *Variant) error {
	e, err := NewEngine(v, r.logger)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.engines[e.ID()]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateVariant, e.ID())
	}
	if r.onUnrecog != nil {
		e.SetUnrecognizedHandler(r.onUnrecog)
	}
	r.engines[e.ID()] = e

	r.logger.Debug().Str("variant", e.ID()).Msg("quiz variant registered")
	return nil
}

// Replace registers v, overwriting any engine with the same id.
func (r *Registry) Replace(v *Variant) error {
	e, err := NewEngine(v, r.logger)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.onUnrecog != nil {
		e.SetUnrecognizedHandler(r.onUnrecog)
	}
	r.engines[e.ID()] = e
	return nil
}

// SetDefault changes the variant used for requests that do not name one.
func (r *Registry) SetDefault(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.engines[id]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownVariant, id)
	}
	r.defaultID = id
	return nil
}

// Get returns the engine for id. An empty id returns the default engine.
func (r *Registry) Get(id string) (*Engine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if id == "" {
		id = r.defaultID
	}
	e, ok := r.engines[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownVariant, id)
	}
	return e, nil
}

// Default returns the default engine.
func (r *Registry) Default() *Engine {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.engines[r.defaultID]
}

// DefaultID returns the default variant id.
func (r *Registry) DefaultID() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.defaultID
}

// List returns copies of all registered variants sorted by id.
func (r *Registry) List() []*Variant {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Variant, 0, len(r.engines))
	for _, e := range r.engines {
		out = append(out, e.Variant())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
