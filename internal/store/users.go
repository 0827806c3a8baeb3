package store

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dquispe/agrosat-advisor/internal/model"
)

// UserStore mirrors profile rows for accounts managed by the external
// identity provider. It is not an authentication layer.
type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// Upsert writes a profile row, keyed by email. A missing id gets a fresh uuid.
func (s *UserStore) Upsert(ctx context.Context, u *model.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoUpdates: clause.AssignmentColumns([]string{"full_name"}),
		}).
		Create(u).Error
}
