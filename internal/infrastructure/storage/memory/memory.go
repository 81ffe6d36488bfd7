// Package memory keeps every record kind in process memory. It backs the
// HTTP tests and the server when no DATABASE_URI is configured.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"healthwatch/internal/domain/alert"
	"healthwatch/internal/domain/casereport"
	"healthwatch/internal/domain/record"
	"healthwatch/internal/domain/user"
	"healthwatch/internal/domain/watertest"

	"github.com/google/uuid"
)

type Storage struct {
	mu      sync.RWMutex
	now     func() time.Time
	users   map[string]user.User // по id
	byEmail map[string]string
	cases   []casereport.Report
	tests   []watertest.Test
	alerts  []alert.Alert
}

func New() *Storage {
	return &Storage{
		now:     time.Now,
		users:   make(map[string]user.User),
		byEmail: make(map[string]string),
	}
}

// SetClock подменяет источник времени; записи с одинаковой меткой теряют порядок вставки.
func (s *Storage) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *Storage) Users() *UserRepository           { return &UserRepository{s} }
func (s *Storage) Cases() *CaseRepository           { return &CaseRepository{s} }
func (s *Storage) WaterTests() *WaterTestRepository { return &WaterTestRepository{s} }
func (s *Storage) Alerts() *AlertRepository         { return &AlertRepository{s} }

func (s *Storage) Ping(context.Context) error { return nil }
func (s *Storage) Close() error               { return nil }

func (s *Storage) reporter(id string) (*user.Public, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, record.ErrUnknownReporter
	}
	p := u.Public()
	return &p, nil
}

// newestFirst returns a copy sorted by created, latest first; ties keep reverse insertion order.
func newestFirst[T any](items []T, created func(T) time.Time) []T {
	out := make([]T, len(items))
	for i, it := range items {
		out[len(items)-1-i] = it
	}
	sort.SliceStable(out, func(i, j int) bool {
		return created(out[i]).After(created(out[j]))
	})
	return out
}

type UserRepository struct{ s *Storage }

func (r *UserRepository) Create(_ context.Context, u *user.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.byEmail[u.Email]; ok {
		return user.ErrDuplicate
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = r.s.now().UTC()
	}
	r.s.users[u.ID] = *u
	r.s.byEmail[u.Email] = u.ID
	return nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (user.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	id, ok := r.s.byEmail[email]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return r.s.users[id], nil
}

func (r *UserRepository) FindByID(_ context.Context, id string) (user.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

type CaseRepository struct{ s *Storage }

func (r *CaseRepository) Create(_ context.Context, reporterID string, in casereport.Input) (casereport.Report, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	by, err := r.s.reporter(reporterID)
	if err != nil {
		return casereport.Report{}, err
	}

	rep := casereport.Report{
		ID:          uuid.NewString(),
		PatientName: in.PatientName,
		Age:         in.Age,
		Gender:      in.Gender,
		Symptoms:    append([]string(nil), in.Symptoms...),
		WaterSource: in.WaterSource,
		Location:    in.Location,
		Notes:       in.Notes,
		ImageURL:    in.ImageURL,
		ReportedBy:  by,
		CreatedAt:   r.s.now().UTC(),
	}
	r.s.cases = append(r.s.cases, rep)
	return rep, nil
}

func (r *CaseRepository) List(context.Context) ([]casereport.Report, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return newestFirst(r.s.cases, func(c casereport.Report) time.Time { return c.CreatedAt }), nil
}

type WaterTestRepository struct{ s *Storage }

func (r *WaterTestRepository) Create(_ context.Context, reporterID string, in watertest.Input) (watertest.Test, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	by, err := r.s.reporter(reporterID)
	if err != nil {
		return watertest.Test{}, err
	}

	wt := watertest.Test{
		ID:            uuid.NewString(),
		Location:      in.Location,
		Turbidity:     in.Turbidity,
		PH:            in.PH,
		Temperature:   in.Temperature,
		BacterialTest: in.BacterialTest,
		Notes:         in.Notes,
		ReportedBy:    by,
		CreatedAt:     r.s.now().UTC(),
	}
	r.s.tests = append(r.s.tests, wt)
	return wt, nil
}

func (r *WaterTestRepository) List(context.Context) ([]watertest.Test, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return newestFirst(r.s.tests, func(w watertest.Test) time.Time { return w.CreatedAt }), nil
}

type AlertRepository struct{ s *Storage }

func (r *AlertRepository) Create(_ context.Context, _ string, in alert.Input) (alert.Alert, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.insert(in), nil
}

func (r *AlertRepository) insert(in alert.Input) alert.Alert {
	a := alert.Alert{
		ID:        uuid.NewString(),
		Title:     in.Title,
		Message:   in.Message,
		Severity:  in.Severity,
		Location:  in.Location,
		IsActive:  in.Active(),
		CreatedAt: r.s.now().UTC(),
	}
	r.s.alerts = append(r.s.alerts, a)
	return a
}

func (r *AlertRepository) List(context.Context) ([]alert.Alert, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	active := make([]alert.Alert, 0, len(r.s.alerts))
	for _, a := range r.s.alerts {
		if a.IsActive {
			active = append(active, a)
		}
	}
	return newestFirst(active, func(a alert.Alert) time.Time { return a.CreatedAt }), nil
}

func (r *AlertRepository) Count(context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.alerts), nil
}

func (r *AlertRepository) InsertMany(_ context.Context, in []alert.Input) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range in {
		r.insert(a)
	}
	return nil
}
