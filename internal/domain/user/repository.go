package user

import (
	"context"
)

// Repository хранит учётные записи. Create обязан вернуть ErrDuplicate,
// если email уже занят, даже при гонке двух регистраций.
type Repository interface {
	Create(ctx context.Context, u *User) error
	FindByEmail(ctx context.Context, email string) (User, error)
	FindByID(ctx context.Context, id string) (User, error)
}
