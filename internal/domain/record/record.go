// Package record holds the submit/list contract shared by every report kind.
package record

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/exp/slog"
)

var (
	ErrNotFound        = errors.New("record not found")
	ErrUnauthorized    = errors.New("submission requires an authenticated account")
	ErrUnknownReporter = errors.New("reporting account does not exist")
)

// Attribution says whether a record kind is stamped with the submitting account.
type Attribution int

const (
	Unattributed Attribution = iota
	Attributed
)

// Input trims and defaults a submission, reporting every missing or malformed field.
type Input[T any] interface {
	Prepare() (T, error)
}

// Store persists one record kind. Create assigns the id and timestamp;
// List returns records newest first.
type Store[In, Out any] interface {
	Create(ctx context.Context, reporterID string, in In) (Out, error)
	List(ctx context.Context) ([]Out, error)
}

type Servicer[In, Out any] interface {
	Submit(ctx context.Context, reporterID string, in In) (Out, error)
	List(ctx context.Context) ([]Out, error)
}

type Service[In Input[In], Out any] struct {
	store       Store[In, Out]
	attribution Attribution
	log         *slog.Logger
}

func NewService[In Input[In], Out any](kind string, store Store[In, Out], attribution Attribution, log *slog.Logger) *Service[In, Out] {
	return &Service[In, Out]{
		store:       store,
		attribution: attribution,
		log:         log.With("component", kind+"_service"),
	}
}

// Submit validates in before touching the store. For attributed kinds reporterID
// must be the authenticated account; for unattributed kinds it is ignored.
func (s *Service[In, Out]) Submit(ctx context.Context, reporterID string, in In) (Out, error) {
	var zero Out

	prepared, err := in.Prepare()
	if err != nil {
		return zero, err
	}

	switch s.attribution {
	case Attributed:
		if reporterID == "" {
			return zero, ErrUnauthorized
		}
	default:
		reporterID = ""
	}

	out, err := s.store.Create(ctx, reporterID, prepared)
	if err != nil {
		if errors.Is(err, ErrUnknownReporter) {
			return zero, err
		}
		s.log.Error("failed to create record", "reporter_id", reporterID, "error", err)
		return zero, fmt.Errorf("create record: %w", err)
	}

	return out, nil
}

func (s *Service[In, Out]) List(ctx context.Context) ([]Out, error) {
	out, err := s.store.List(ctx)
	if err != nil {
		s.log.Error("failed to list records", "error", err)
		return nil, fmt.Errorf("list records: %w", err)
	}
	if out == nil {
		out = []Out{}
	}
	return out, nil
}
