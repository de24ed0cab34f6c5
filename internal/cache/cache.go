package cache

import (
	"context"
	"errors"

	"github.com/fjod/storefront/internal/domain"
)

type SessionCache interface {
	Get(ctx context.Context, sessionID string) (*domain.SessionState, error)
	Set(ctx context.Context, sessionID string, state *domain.SessionState) error
	Delete(ctx context.Context, sessionID string) error
}

var ErrCacheMiss = errors.New("cache miss")
