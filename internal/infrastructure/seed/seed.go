// Package seed fills an empty alert store with the sample announcements.
package seed

import (
	"context"
	"fmt"

	"healthwatch/internal/domain/alert"

	"golang.org/x/exp/slog"
)

type AlertStore interface {
	Count(ctx context.Context) (int, error)
	InsertMany(ctx context.Context, in []alert.Input) error
}

func DefaultAlerts() []alert.Input {
	return []alert.Input{
		{
			Title:    "Water Quality Alert",
			Message:  "High bacterial contamination detected in Ward 5 handpumps",
			Severity: alert.SeverityHigh,
			Location: "Ward 5, Village Center",
		},
		{
			Title:    "Diarrhea Outbreak",
			Message:  "Multiple cases reported in surrounding areas",
			Severity: alert.SeverityCritical,
			Location: "Northern Districts",
		},
		{
			Title:    "Preventive Measures",
			Message:  "Boil water before consumption as precautionary measure",
			Severity: alert.SeverityMedium,
			Location: "All Areas",
		},
	}
}

// Alerts inserts DefaultAlerts only when the store holds no alerts at all.
// It reports whether anything was inserted.
func Alerts(ctx context.Context, store AlertStore, log *slog.Logger) (bool, error) {
	log = log.With("component", "seed")

	n, err := store.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("count alerts: %w", err)
	}
	if n > 0 {
		log.Debug("alerts already present, skipping seed", "count", n)
		return false, nil
	}

	items := make([]alert.Input, 0, len(DefaultAlerts()))
	for _, a := range DefaultAlerts() {
		prepared, err := a.Prepare()
		if err != nil {
			return false, fmt.Errorf("prepare seed alert %q: %w", a.Title, err)
		}
		items = append(items, prepared)
	}

	if err := store.InsertMany(ctx, items); err != nil {
		return false, fmt.Errorf("insert seed alerts: %w", err)
	}

	log.Info("sample alerts seeded", "count", len(items))
	return true, nil
}
