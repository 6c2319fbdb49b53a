package entity

import (
	"gorm.io/gorm"
)

// ActivityLog is the append-only audit trail. One row per mutating action.
type ActivityLog struct {
	gorm.Model
	Action     string `gorm:"not null;index" json:"action"`
	EntityType string `gorm:"not null" json:"entityType"` // shop | order | user
	EntityID   uint   `gorm:"index" json:"entityId"`

	Metadata map[string]any `gorm:"serializer:json" json:"metadata"`

	ActorID uint `gorm:"index" json:"actorId"`
	Actor   User `json:"-"`
}
