package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/exp/slog"
)

const (
	DefaultTTL = 24 * time.Hour
	issuer     = "healthwatch"
)

// Claims: полезная нагрузка токена: идентификатор аккаунта и email на момент выдачи.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

type Servicer interface {
	Create(ctx context.Context, userID, email string) (string, error)
	Validate(ctx context.Context, token string) (Claims, error)
}

// Service выпускает и проверяет подписанные HS256 токены. Состояние на сервере не хранится.
type Service struct {
	secret []byte
	ttl    time.Duration
	log    *slog.Logger
	now    func() time.Time
}

func NewService(secret string, ttl time.Duration, log *slog.Logger) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{
		secret: []byte(secret),
		ttl:    ttl,
		log:    log.With("component", "session_service"),
		now:    time.Now,
	}
}

func (s *Service) Create(_ context.Context, userID, email string) (string, error) {
	now := s.now()
	claims := Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

// Validate checks the signature first and the expiry second. Every failure wraps ErrUnauthorized.
func (s *Service) Validate(_ context.Context, token string) (Claims, error) {
	var claims Claims

	parsed, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, fmt.Errorf("%w: %w", ErrUnauthorized, ErrExpiredToken)
		}
		s.log.Debug("token rejected", "error", err)
		return Claims{}, fmt.Errorf("%w: %w", ErrUnauthorized, ErrInvalidToken)
	}

	if !parsed.Valid || claims.UserID == "" {
		return Claims{}, fmt.Errorf("%w: %w", ErrUnauthorized, ErrInvalidToken)
	}

	return claims, nil
}
