// Quizfunnel - Quiz Funnel Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quizfunnel

package recommend

import (
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// LoadVariantFile reads a YAML (or JSON) variant definition from path.
// The variant is validated before it is returned.
func LoadVariantFile(path string) (*Variant, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("load variant file %s: %w", path, err)
	}
	v, err := unmarshalVariant(k)
	if err != nil {
		return nil, fmt.Errorf("variant file %s: %w", path, err)
	}
	return v, nil
}

// LoadVariantBytes parses a YAML (or JSON) variant definition.
func LoadVariantBytes(data []byte) (*Variant, error) {
	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(data), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("parse variant: %w", err)
	}
	return unmarshalVariant(k)
}

func unmarshalVariant(k *koanf.Koanf) (*Variant, error) {
	v := &Variant{}
	if err := k.Unmarshal("", v); err != nil {
		return nil, fmt.Errorf("unmarshal variant: %w", err)
	}
	v.applyDefaults()
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return v, nil
}

// LoadFiles reads each variant file and registers it, replacing any variant
// with the same id. It stops at the first invalid file.
func (r *Registry) LoadFiles(paths ...string) error {
	for _, p := range paths {
		v, err := LoadVariantFile(p)
		if err != nil {
			return err
		}
		if err := r.Replace(v); err != nil {
			return fmt.Errorf("register variant from %s: %w", p, err)
		}
		r.logger.Info().Str("variant", v.ID).Str("path", p).Msg("quiz variant loaded from file")
	}
	return nil
}
