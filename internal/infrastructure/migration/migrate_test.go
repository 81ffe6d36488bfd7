package migration

import (
	"errors"
	"testing"

	"healthwatch/internal/app/server/config"

	"github.com/golang-migrate/migrate/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

type MockMigrator struct {
	mock.Mock
}

func (m *MockMigrator) Up() error   { return m.Called().Error(0) }
func (m *MockMigrator) Down() error { return m.Called().Error(0) }

func (m *MockMigrator) Version() (uint, bool, error) {
	args := m.Called()
	return args.Get(0).(uint), args.Bool(1), args.Error(2)
}

func (m *MockMigrator) Close() (error, error) {
	args := m.Called()
	return args.Error(0), args.Error(1)
}

func newTestMigration(m Migrator) *Migration {
	cfg := &config.Config{}
	cfg.DB.DatabaseURI = "postgres://localhost/healthwatch"
	cfg.DB.Migrations = "migrations"
	return NewMigration(cfg, func(string, string) (Migrator, error) { return m, nil }, slog.Default())
}

func TestMigration_UsesConfiguredURLs(t *testing.T) {
	mockM := new(MockMigrator)
	mockM.On("Up").Return(nil)
	mockM.On("Version").Return(uint(1), false, nil)
	mockM.On("Close").Return(nil, nil)

	cfg := &config.Config{}
	cfg.DB.DatabaseURI = "postgres://localhost/healthwatch"
	cfg.DB.Migrations = "db/migrations"

	var gotSource, gotDB string
	mg := NewMigration(cfg, func(source, db string) (Migrator, error) {
		gotSource, gotDB = source, db
		return mockM, nil
	}, slog.Default())

	require.NoError(t, mg.Up())
	assert.Equal(t, "file://db/migrations", gotSource)
	assert.Equal(t, "postgres://localhost/healthwatch", gotDB)
	mockM.AssertExpectations(t)
}

func TestMigration_UpNoChangeIsSuccess(t *testing.T) {
	mockM := new(MockMigrator)
	mockM.On("Up").Return(migrate.ErrNoChange)
	mockM.On("Close").Return(nil, nil)

	assert.NoError(t, newTestMigration(mockM).Up())
	mockM.AssertNotCalled(t, "Version")
	mockM.AssertCalled(t, "Close")
}

func TestMigration_UpFailureJoinsCloseErrors(t *testing.T) {
	mockM := new(MockMigrator)
	mockM.On("Up").Return(errors.New("syntax error at line 3"))
	mockM.On("Close").Return(nil, errors.New("conn reset"))

	err := newTestMigration(mockM).Up()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migrate up: syntax error at line 3")
	assert.Contains(t, err.Error(), "conn reset")
}

func TestMigration_DownToEmptySchema(t *testing.T) {
	mockM := new(MockMigrator)
	mockM.On("Down").Return(nil)
	mockM.On("Version").Return(uint(0), false, migrate.ErrNilVersion)
	mockM.On("Close").Return(nil, nil)

	assert.NoError(t, newTestMigration(mockM).Down())
	mockM.AssertExpectations(t)
}

func TestMigration_Status(t *testing.T) {
	tests := []struct {
		name    string
		version uint
		dirty   bool
		err     error
		want    State
		wantErr bool
	}{
		{name: "applied", version: 1, want: State{Version: 1, Applied: true}},
		{name: "dirty", version: 2, dirty: true, want: State{Version: 2, Applied: true, Dirty: true}},
		{name: "fresh database", err: migrate.ErrNilVersion, want: State{}},
		{name: "broken", err: errors.New("relation does not exist"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockM := new(MockMigrator)
			mockM.On("Version").Return(tt.version, tt.dirty, tt.err)
			mockM.On("Close").Return(nil, nil)

			st, err := newTestMigration(mockM).Status()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, st)
		})
	}
}

func TestMigration_EngineError(t *testing.T) {
	cfg := &config.Config{}
	mg := NewMigration(cfg, func(string, string) (Migrator, error) {
		return nil, errors.New("engine crash")
	}, slog.Default())

	err := mg.Up()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "engine crash")
}
