package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OwnedByOwner filters groups by their owner_id column (groups use
// owner_id, not user_id, since membership is a separate relation).
type OwnedByOwner struct {
	OwnerID uuid.UUID
}

func (s OwnedByOwner) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("owner_id = ?", s.OwnerID)
}
