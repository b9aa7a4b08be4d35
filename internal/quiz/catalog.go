// Quizfunnel - Quiz Funnel Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quizfunnel

package quiz

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrUnknownQuiz is returned when no definition has the requested id.
var ErrUnknownQuiz = errors.New("unknown quiz")

// Catalog holds the quiz definitions served by the API. The first
// definition added is the default until SetDefault says otherwise.
type Catalog struct {
	mu        sync.RWMutex
	defs      map[string]*Definition
	defaultID string
}

// NewCatalog returns a catalog holding DefaultDefinition.
func NewCatalog() *Catalog {
	c := &Catalog{defs: make(map[string]*Definition)}
	d := DefaultDefinition()
	c.defs[d.ID] = d
	c.defaultID = d.ID
	return c
}

// Put validates d and adds or replaces it.
func (c *Catalog) Put(d *Definition) error {
	if d == nil {
		return fmt.Errorf("%w: nil definition", ErrInvalidDefinition)
	}
	if err := d.Validate(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.defs[d.ID] = d
	if c.defaultID == "" {
		c.defaultID = d.ID
	}
	return nil
}

// SetDefault makes id the definition returned for an empty id.
func (c *Catalog) SetDefault(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.defs[id]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownQuiz, id)
	}
	c.defaultID = id
	return nil
}

// Get returns the definition with id, or the default for "".
func (c *Catalog) Get(id string) (*Definition, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if id == "" {
		id = c.defaultID
	}
	d, ok := c.defs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownQuiz, id)
	}
	return d, nil
}

// IDs returns the definition ids in sorted order.
func (c *Catalog) IDs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ids := make([]string, 0, len(c.defs))
	for id := range c.defs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// LoadFiles reads each definition file into the catalog.
func (c *Catalog) LoadFiles(paths ...string) error {
	for _, p := range paths {
		d, err := LoadDefinitionFile(p)
		if err != nil {
			return err
		}
		if err := c.Put(d); err != nil {
			return fmt.Errorf("add quiz from %s: %w", p, err)
		}
	}
	return nil
}
