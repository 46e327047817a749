// Package auth handles registration, login and token verification.
// Passwords are stored as bcrypt hashes; sessions are stateless HS256
// tokens carrying the numeric user id.
package auth

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"github.com/CamiloBarros/todolist/internal/logger"
	"github.com/CamiloBarros/todolist/internal/model"
	"github.com/CamiloBarros/todolist/internal/store"
)

const minPasswordLength = 8

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Service authenticates users and issues tokens.
type Service struct {
	db     *sqlx.DB
	secret []byte
	ttl    time.Duration
	log    *slog.Logger
}

// NewService creates an auth service. ttl bounds token lifetime.
func NewService(db *sqlx.DB, secret string, ttl time.Duration) *Service {
	return &Service{
		db:     db,
		secret: []byte(secret),
		ttl:    ttl,
		log:    logger.Auth(),
	}
}

// Registration is the input shape for creating an account.
type Registration struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// Credentials is the login input shape.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenClaims struct {
	UserID int64 `json:"uid"`
	jwt.RegisteredClaims
}

// Register creates an account. A duplicate email surfaces as a conflict.
func (s *Service) Register(ctx context.Context, reg Registration) (*model.User, error) {
	email := strings.ToLower(strings.TrimSpace(reg.Email))
	if !emailPattern.MatchString(email) {
		return nil, store.Validationf("auth.register", "invalid email address")
	}
	name := strings.TrimSpace(reg.Name)
	if name == "" {
		return nil, store.Validationf("auth.register", "name is required")
	}
	if len(reg.Password) < minPasswordLength {
		return nil, store.Validationf("auth.register", "password must be at least %d characters", minPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, store.WrapDBError(err, "auth.register", "user")
	}

	var user model.User
	err = s.db.GetContext(ctx, &user,
		`INSERT INTO users (email, name, password_hash)
		 VALUES ($1, $2, $3)
		 RETURNING id, email, name, password_hash, is_active, created_at, updated_at`,
		email, name, string(hash))
	if err != nil {
		return nil, store.WrapDBError(err, "auth.register", "user")
	}

	s.log.Info("user registered", "user_id", user.ID)
	return &user, nil
}

// Login verifies credentials and issues a token. A missing account, a
// deactivated account and a wrong password are indistinguishable to the
// caller.
func (s *Service) Login(ctx context.Context, creds Credentials) (string, *model.User, error) {
	email := strings.ToLower(strings.TrimSpace(creds.Email))

	var user model.User
	err := s.db.GetContext(ctx, &user,
		"SELECT id, email, name, password_hash, is_active, created_at, updated_at FROM users WHERE email = $1",
		email)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil, store.Validationf("auth.login", "invalid credentials")
	}
	if err != nil {
		return "", nil, store.WrapDBError(err, "auth.login", "user")
	}

	if !user.IsActive {
		return "", nil, store.Validationf("auth.login", "invalid credentials")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)) != nil {
		return "", nil, store.Validationf("auth.login", "invalid credentials")
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return "", nil, err
	}

	s.log.Info("user logged in", "user_id", user.ID)
	return token, &user, nil
}

func (s *Service) issueToken(userID int64) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", store.Validationf("auth.token", "failed to sign token")
	}
	return signed, nil
}

// Verify parses a bearer token and returns the user id it carries.
func (s *Service) Verify(tokenString string) (int64, error) {
	token, err := jwt.ParseWithClaims(tokenString, &tokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, store.Validationf("auth.verify", "invalid token")
	}

	claims, ok := token.Claims.(*tokenClaims)
	if !ok || claims.UserID == 0 {
		return 0, store.Validationf("auth.verify", "invalid token")
	}
	return claims.UserID, nil
}
