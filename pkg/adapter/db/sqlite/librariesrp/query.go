// Package librariesrp implements the libraries repository over the
// catalog library table.
package librariesrp

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
	"gorm.io/gorm"
)

type gLibrary struct {
	ID          uuid.UUID `gorm:"primaryKey;column:id"`
	Name        string
	Root        string
	CreatedDate time.Time `gorm:"column:created_date"`
	// the copy engine fills this column; the repo only reads it
	LastModifiedDate time.Time `gorm:"column:last_modified_date"`
}

func (gl *gLibrary) TableName() string {
	return "library"
}

func (gl *gLibrary) Model() *model.Library {
	return &model.Library{
		ID:        gl.ID,
		Name:      gl.Name,
		Root:      gl.Root,
		CreatedAt: gl.CreatedDate,
	}
}

func List[Q sqlite.Queryer](ctx context.Context, q Q) ([]model.Library, error) {
	gdb := q.GORM(ctx)
	var gls []gLibrary
	if err := gdb.Order("name").Find(&gls).Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	libs := make([]model.Library, 0, len(gls))
	for i := range gls {
		libs = append(libs, *gls[i].Model())
	}
	return libs, nil
}

func Create[Q sqlite.Queryer](ctx context.Context, q Q, l model.Library) (*model.Library, error) {
	gdb := q.GORM(ctx)
	gl := gLibrary{
		ID:               l.ID,
		Name:             l.Name,
		Root:             l.Root,
		CreatedDate:      l.CreatedAt,
		LastModifiedDate: l.CreatedAt,
	}
	if err := gdb.Create(&gl).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, cerr.Conflict(
				fmt.Errorf("library %q exists already", l.Name),
			)
		}
		return nil, fmt.Errorf("query: %w", err)
	}
	return gl.Model(), nil
}

func isUniqueViolation(err error) bool {
	var serr sqlite3.Error
	if errors.As(err, &serr) {
		return serr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			serr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
