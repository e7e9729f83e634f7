package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"dispatch/internal/entities"
	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

type Clock interface {
	Now() time.Time
}

type claims struct {
	jwt.RegisteredClaims
	Email     string `json:"email"`
	FullName  string `json:"name"`
	Role      string `json:"role"`
	CourierID *int64 `json:"courier_id,omitempty"`
}

// Tokens выпускает и проверяет HS256 токены сессии.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	clock  Clock
}

func NewTokens(secret string, ttl time.Duration, clock Clock) *Tokens {
	return &Tokens{
		secret: []byte(secret),
		ttl:    ttl,
		clock:  clock,
	}
}

func (t *Tokens) Issue(session entities.Session) (string, time.Time, error) {
	now := t.clock.Now().UTC()
	expiresAt := now.Add(t.ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(session.UserID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Email:     session.Email,
		FullName:  session.FullName,
		Role:      session.Role.String(),
		CourierID: session.CourierID,
	})

	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

func (t *Tokens) Parse(raw string) (*entities.Session, error) {
	var c claims
	_, err := jwt.ParseWithClaims(raw, &c, func(*jwt.Token) (any, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(t.clock.Now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	userID, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: subject: %w", ErrInvalidToken, err)
	}

	role := entities.RoleType(c.Role)
	if role != entities.RoleManager && role != entities.RoleCourier {
		return nil, fmt.Errorf("%w: role %q", ErrInvalidToken, c.Role)
	}

	return &entities.Session{
		UserID:    userID,
		Email:     c.Email,
		FullName:  c.FullName,
		Role:      role,
		CourierID: c.CourierID,
	}, nil
}
