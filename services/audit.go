package services

import (
	"backend/entity"
	"backend/repository"

	log "github.com/sirupsen/logrus"
)

// AuditLogger appends one ActivityLog row per mutating action. Emission is
// best-effort: a failed write is logged and never rolls back the mutation
// it describes.
type AuditLogger struct {
	Repo *repository.ActivityRepository
}

func NewAuditLogger(repo *repository.ActivityRepository) *AuditLogger {
	return &AuditLogger{Repo: repo}
}

func (a *AuditLogger) Record(actorID uint, action, entityType string, entityID uint, metadata map[string]any) {
	rec := &entity.ActivityLog{
		ActorID:    actorID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Metadata:   metadata,
	}
	if err := a.Repo.Create(rec); err != nil {
		log.WithError(err).WithFields(log.Fields{
			"action":     action,
			"entityType": entityType,
			"entityId":   entityID,
		}).Warn("audit record dropped")
	}
}
