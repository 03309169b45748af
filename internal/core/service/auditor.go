package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/chooy/admin-console/internal/core/domain"
	"github.com/chooy/admin-console/internal/core/ports"
)

// auditor records operator mutations. Failures are logged, never propagated:
// an audit hiccup must not roll back the mutation it describes.
type auditor struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

func (a auditor) record(ctx context.Context, actor domain.SessionUser, action, resource, resourceID string) {
	if a.repo == nil {
		return
	}
	entry := &domain.AuditEntry{
		ActorID:    actor.UserID,
		Actor:      actor.Email,
		Action:     action,
		Resource:   resource,
		ResourceID: resourceID,
		At:         time.Now().UTC(),
	}
	if err := a.repo.Record(ctx, entry); err != nil {
		a.log.Warn().Err(err).Str("action", action).Str("resource", resource).Msg("audit record failed")
	}
}
