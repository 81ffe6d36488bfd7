package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"
)

type Servicer interface {
	Register(ctx context.Context, name, email, password string) (User, error)
	Authenticate(ctx context.Context, email, password string) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
	FindByID(ctx context.Context, id string) (User, error)
	RequestPasswordReset(ctx context.Context, email string) error
}

type Service struct {
	repo      Repository
	validator Validator
	log       *slog.Logger
	cost      int
	now       func() time.Time

	dummyOnce sync.Once
	dummyHash []byte
}

func NewService(repo Repository, validator Validator, log *slog.Logger, cost int) *Service {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Service{
		repo:      repo,
		validator: validator,
		log:       log.With("component", "user_service"),
		cost:      cost,
		now:       time.Now,
	}
}

func (s *Service) Register(ctx context.Context, name, email, password string) (User, error) {
	if err := s.validator.ValidateRegister(name, email, password); err != nil {
		s.log.Debug("validation failed", "error", err)
		return User{}, err
	}

	email = NormalizeEmail(email)

	// Предварительная проверка; окончательное слово за уникальным индексом в хранилище.
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return User{}, ErrDuplicate
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, fmt.Errorf("find user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	u := User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: string(hash),
		Role:         DefaultRole,
		CreatedAt:    s.now().UTC(),
	}

	if err := s.repo.Create(ctx, &u); err != nil {
		if errors.Is(err, ErrDuplicate) {
			return User{}, ErrDuplicate
		}
		return User{}, fmt.Errorf("create user: %w", err)
	}

	s.log.Info("user registered", "user_id", u.ID)
	return u, nil
}

// Authenticate returns ErrInvalidAuth for both an unknown email and a wrong password.
func (s *Service) Authenticate(ctx context.Context, email, password string) (User, error) {
	u, err := s.repo.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			return User{}, fmt.Errorf("find user: %w", err)
		}
		// сравниваем с фиктивным хэшем, чтобы время ответа не выдавало наличие аккаунта
		_ = bcrypt.CompareHashAndPassword(s.dummy(), []byte(password))
		return User{}, ErrInvalidAuth
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return User{}, ErrInvalidAuth
	}

	return u, nil
}

func (s *Service) FindByEmail(ctx context.Context, email string) (User, error) {
	return s.repo.FindByEmail(ctx, NormalizeEmail(email))
}

func (s *Service) FindByID(ctx context.Context, id string) (User, error) {
	return s.repo.FindByID(ctx, id)
}

// RequestPasswordReset only confirms the account exists; delivery of a reset link is not implemented.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	if err := s.validator.ValidateEmail(strings.TrimSpace(email)); err != nil {
		return err
	}

	u, err := s.repo.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return err
	}

	s.log.Info("password reset requested", "user_id", u.ID)
	return nil
}

func (s *Service) dummy() []byte {
	s.dummyOnce.Do(func() {
		h, err := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), s.cost)
		if err != nil {
			s.log.Error("generate dummy hash", "error", err)
		}
		s.dummyHash = h
	})
	return s.dummyHash
}
