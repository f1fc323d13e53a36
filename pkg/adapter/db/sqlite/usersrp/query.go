// Package usersrp implements the users repository over the catalog
// user table.
package usersrp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/comixd/comixd/pkg/adapter/db/sqlite"
	"github.com/comixd/comixd/pkg/core/cerr"
	"github.com/comixd/comixd/pkg/core/model"
	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"
)

type gUser struct {
	ID           uuid.UUID `gorm:"primaryKey;column:id"`
	Email        string
	PasswordHash string
	Admin        bool
	CreatedDate  time.Time `gorm:"column:created_date"`
}

func (gu *gUser) TableName() string {
	return "user"
}

func (gu *gUser) Model() *model.User {
	return &model.User{
		ID:           gu.ID,
		Email:        gu.Email,
		PasswordHash: gu.PasswordHash,
		Admin:        gu.Admin,
	}
}

func Create[Q sqlite.Queryer](ctx context.Context, q Q, u model.User) (*model.User, error) {
	gdb := q.GORM(ctx)
	gu := gUser{
		ID:           u.ID,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Admin:        u.Admin,
		CreatedDate:  time.Now().UTC(),
	}
	if err := gdb.Create(&gu).Error; err != nil {
		var serr sqlite3.Error
		if errors.As(err, &serr) &&
			serr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return nil, cerr.Conflict(
				fmt.Errorf("user %q exists already", u.Email),
			)
		}
		return nil, fmt.Errorf("query: %w", err)
	}
	return gu.Model(), nil
}

func Count[Q sqlite.Queryer](ctx context.Context, q Q) (int64, error) {
	gdb := q.GORM(ctx)
	var n int64
	if err := gdb.Model(&gUser{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("query: %w", err)
	}
	return n, nil
}
