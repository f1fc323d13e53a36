package repo

import (
	"context"

	"github.com/comixd/comixd/pkg/core/model"
)

type UsersConnQueryer interface {
	UsersQueryer
}

type UsersTxQueryer interface {
	UsersQueryer
}

type UsersQueryer interface {
	Create(ctx context.Context, u model.User) (*model.User, error)
	Count(ctx context.Context) (int64, error)
}

type Users interface {
	Conn(Conn) UsersConnQueryer
	Tx(Tx) UsersTxQueryer
}
