package repo

import (
	"context"

	"github.com/comixd/comixd/pkg/core/model"
)

type LibrariesConnQueryer interface {
	LibrariesQueryer
}

type LibrariesTxQueryer interface {
	LibrariesQueryer
}

type LibrariesQueryer interface {
	List(ctx context.Context) ([]model.Library, error)
	Create(ctx context.Context, l model.Library) (*model.Library, error)
}

type Libraries interface {
	Conn(Conn) LibrariesConnQueryer
	Tx(Tx) LibrariesTxQueryer
}
