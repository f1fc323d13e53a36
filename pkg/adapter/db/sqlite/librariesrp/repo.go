package librariesrp

import (
	"context"

	"github.com/comixd/comixd/pkg/adapter/db/sqlite"
	"github.com/comixd/comixd/pkg/core/model"
	"github.com/comixd/comixd/pkg/core/repo"
)

type Repo struct {
}

func New() *Repo {
	return &Repo{}
}

type connQueryer struct {
	*sqlite.Conn
}

func (libs *Repo) Conn(c repo.Conn) repo.LibrariesConnQueryer {
	cc := c.(*sqlite.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) List(ctx context.Context) ([]model.Library, error) {
	return List(ctx, cq.Conn)
}

func (cq connQueryer) Create(ctx context.Context, l model.Library) (*model.Library, error) {
	return Create(ctx, cq.Conn, l)
}

type txQueryer struct {
	*sqlite.Tx
}

func (libs *Repo) Tx(tx repo.Tx) repo.LibrariesTxQueryer {
	tt := tx.(*sqlite.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) List(ctx context.Context) ([]model.Library, error) {
	return List(ctx, tq.Tx)
}

func (tq txQueryer) Create(ctx context.Context, l model.Library) (*model.Library, error) {
	return Create(ctx, tq.Tx, l)
}
