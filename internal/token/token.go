// Quizfunnel - Quiz Funnel Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quizfunnel

// Package token issues signed result tokens. A token lets the offer page
// show a recommendation without the server keeping any session state.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tomtom215/quizfunnel/internal/recommend"
)

const (
	// DefaultTTL is how long a result token stays valid.
	DefaultTTL = 7 * 24 * time.Hour

	// MinSecretLength is the shortest accepted signing secret.
	MinSecretLength = 32

	issuer = "quizfunnel"
)

var (
	// ErrInvalidToken covers malformed, tampered and expired tokens.
	ErrInvalidToken = errors.New("invalid result token")

	// ErrWeakSecret is returned for secrets shorter than MinSecretLength.
	ErrWeakSecret = errors.New("token secret must be at least 32 characters")
)

// Claims carries one recommendation.
type Claims struct {
	Variant      string          `json:"variant"`
	Track        recommend.Track `json:"track"`
	GroupScore   int             `json:"group_score"`
	PrivateScore int             `json:"private_score"`
	Kids         bool            `json:"kids,omitempty"`
	jwt.RegisteredClaims
}

// State returns the recommendation the token was issued for.
func (c *Claims) State() recommend.RecommendationState {
	return recommend.RecommendationState{
		Recommendation: recommend.Recommendation{
			Track:        c.Track,
			GroupScore:   c.GroupScore,
			PrivateScore: c.PrivateScore,
		},
		IsKidsOverride: c.Kids,
	}
}

// Manager signs and verifies tokens with HS256.
type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewManager creates a manager. ttl <= 0 means DefaultTTL.
func NewManager(secret string, ttl time.Duration) (*Manager, error) {
	if len(secret) < MinSecretLength {
		return nil, ErrWeakSecret
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// TTL returns the token lifetime.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Issue signs a token for rec produced by variant.
func (m *Manager) Issue(variant string, rec recommend.RecommendationState) (string, error) {
	now := m.now()
	claims := &Claims{
		Variant:      variant,
		Track:        rec.Track,
		GroupScore:   rec.GroupScore,
		PrivateScore: rec.PrivateScore,
		Kids:         rec.IsKidsOverride,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature, issuer and expiry of raw.
func (m *Manager) Verify(raw string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if !claims.Track.Valid() {
		return nil, fmt.Errorf("%w: unknown track %q", ErrInvalidToken, claims.Track)
	}
	return claims, nil
}
