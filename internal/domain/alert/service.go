package alert

import (
	"context"

	"healthwatch/internal/domain/record"

	"golang.org/x/exp/slog"
)

// Repository lists active alerts only. Count and InsertMany back the startup seed.
type Repository interface {
	record.Store[Input, Alert]
	Count(ctx context.Context) (int, error)
	InsertMany(ctx context.Context, in []Input) error
}

type Servicer = record.Servicer[Input, Alert]

func NewService(repo Repository, log *slog.Logger) *record.Service[Input, Alert] {
	return record.NewService[Input, Alert]("alert", repo, record.Unattributed, log)
}
