package gorm

import (
	"context"

	"gorm.io/gorm"

	"github.com/doodlesbykumbi/lecture-eval/pkg/model"
	"github.com/doodlesbykumbi/lecture-eval/pkg/server/store"
)

// Ensure UsersStore implements store.UsersStore
var _ store.UsersStore = (*UsersStore)(nil)

// UsersStore implements store.UsersStore using GORM
type UsersStore struct {
	db *gorm.DB
}

// NewUsersStore creates a new UsersStore
func NewUsersStore(db *gorm.DB) *UsersStore {
	return &UsersStore{db: db}
}

// RegisterUser stores a new user under the next free index.
// The table lock serializes concurrent registrations so that the
// count-based index stays unique.
func (s *UsersStore) RegisterUser(ctx context.Context, name, email string) (*store.User, error) {
	var created model.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`LOCK TABLE users IN SHARE ROW EXCLUSIVE MODE`).Error; err != nil {
			return err
		}

		var existing int64
		if err := tx.Model(&model.User{}).Where("email = ?", email).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return store.ErrUserExists
		}

		var total int64
		if err := tx.Model(&model.User{}).Count(&total).Error; err != nil {
			return err
		}

		created = model.User{
			Index: model.FormatUserIndex(int(total) + 1),
			Name:  name,
			Email: email,
		}
		return tx.Create(&created).Error
	})
	if err != nil {
		return nil, err
	}

	return &store.User{Index: created.Index, Name: created.Name, Email: created.Email}, nil
}

// UserExists checks if a user index is registered
func (s *UsersStore) UserExists(ctx context.Context, index string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.User{}).Where("user_index = ?", index).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListUsers returns users in registration order
func (s *UsersStore) ListUsers(ctx context.Context, page store.Page) ([]store.User, error) {
	var rows []model.User
	if err := paginate(s.db.WithContext(ctx).Order("id"), page).Find(&rows).Error; err != nil {
		return nil, err
	}

	users := make([]store.User, 0, len(rows))
	for _, r := range rows {
		users = append(users, store.User{Index: r.Index, Name: r.Name, Email: r.Email})
	}
	return users, nil
}

func paginate(tx *gorm.DB, page store.Page) *gorm.DB {
	if page.Limit > 0 {
		tx = tx.Limit(page.Limit)
	}
	if page.Offset > 0 {
		tx = tx.Offset(page.Offset)
	}
	return tx
}
