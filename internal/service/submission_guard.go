package service

import (
	"context"
	"fmt"
	"time"

	"github.com/aved-sa/aved-web/internal/cache"
	"github.com/aved-sa/aved-web/internal/contact"
	"github.com/aved-sa/aved-web/internal/logging"
)

// SubmissionGuard allows one outstanding submission per contact form id
// across requests and server instances.
type SubmissionGuard struct {
	store  cache.Store
	ttl    time.Duration
	logger *logging.Logger
}

// NewSubmissionGuard creates a guard whose claims expire after ttl, so a
// crashed request cannot block a form forever.
func NewSubmissionGuard(store cache.Store, ttl time.Duration) *SubmissionGuard {
	return &SubmissionGuard{
		store:  store,
		ttl:    ttl,
		logger: logging.GetLogger(),
	}
}

// Acquire claims formID. It returns contact.ErrSubmissionInProgress when
// another request holds the claim. The returned release func must be called
// once the submission has finished.
func (g *SubmissionGuard) Acquire(ctx context.Context, formID string) (func(), error) {
	key := cache.Key("submit", formID)
	ok, err := g.store.SetNX(ctx, key, []byte(time.Now().UTC().Format(time.RFC3339)), g.ttl)
	if err != nil {
		return nil, fmt.Errorf("failed to claim form %s: %w", formID, err)
	}
	if !ok {
		return nil, contact.ErrSubmissionInProgress
	}

	release := func() {
		// The request context may already be done; release on a fresh one.
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := g.store.Del(releaseCtx, key); err != nil {
			g.logger.Warn("Failed to release submission guard for form %s: %v", formID, err)
		}
	}
	return release, nil
}
