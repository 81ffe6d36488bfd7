package watertest

import (
	"healthwatch/internal/domain/record"

	"golang.org/x/exp/slog"
)

type (
	Repository = record.Store[Input, Test]
	Servicer   = record.Servicer[Input, Test]
)

func NewService(repo Repository, log *slog.Logger) *record.Service[Input, Test] {
	return record.NewService[Input, Test]("water_test", repo, record.Attributed, log)
}
