package utils

import (
	"backend/entity"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func CurrentUserID(c *gin.Context) uint {
	v, _ := c.Get("userId")
	switch id := v.(type) {
	case uint:
		return id
	case int:
		return uint(id)
	case int64:
		return uint(id)
	case float64:
		return uint(id)
	default:
		return 0
	}
}

// CurrentActor rebuilds the authenticated actor from token claims. Only ID and
// Role are populated — enough for every access-policy predicate.
func CurrentActor(c *gin.Context) *entity.User {
	return &entity.User{
		Model: gorm.Model{ID: CurrentUserID(c)},
		Role:  CurrentRole(c),
	}
}

func CurrentRole(c *gin.Context) string {
	if v, ok := c.Get("role"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
