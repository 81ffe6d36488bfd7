package casereport

import (
	"healthwatch/internal/domain/record"

	"golang.org/x/exp/slog"
)

type (
	Repository = record.Store[Input, Report]
	Servicer   = record.Servicer[Input, Report]
)

func NewService(repo Repository, log *slog.Logger) *record.Service[Input, Report] {
	return record.NewService[Input, Report]("case_report", repo, record.Attributed, log)
}
