// Package auth implements account registration, credential checks, and
// opaque expiring session tokens.
package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/GriffinCanCode/GridBoard/internal/storage/sqlite"
)

var (
	// ErrDuplicateAccount is returned when the email is already registered
	ErrDuplicateAccount = errors.New("account already exists")
	// ErrInvalidCredentials is returned for a bad email/password pair
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthorized is returned for a missing, unknown, or expired token
	ErrUnauthorized = errors.New("unauthorized")
	// ErrValidation is returned for malformed registration input
	ErrValidation = errors.New("validation failed")
)

const minPasswordLen = 8

// Session is one live login
type Session struct {
	ID        string
	AccountID string
	Token     string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Service authenticates accounts and manages session tokens. Accounts
// are durable in SQLite; sessions are in-memory and die with the process.
type Service struct {
	accounts   *sqlite.AccountRepository
	tokenTTL   time.Duration
	bcryptCost int
	sessions   sync.Map // token -> *Session
}

// NewService creates an auth service
func NewService(accounts *sqlite.AccountRepository, tokenTTL time.Duration, bcryptCost int) *Service {
	if tokenTTL <= 0 {
		tokenTTL = time.Hour
	}
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		accounts:   accounts,
		tokenTTL:   tokenTTL,
		bcryptCost: bcryptCost,
	}
}

// Register creates a new account
func (s *Service) Register(ctx context.Context, name, email, password string) (*sqlite.Account, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(strings.ToLower(email))

	if name == "" {
		return nil, fmt.Errorf("%w: name required", ErrValidation)
	}
	if !strings.Contains(email, "@") || strings.ContainsAny(email, " \t") {
		return nil, fmt.Errorf("%w: invalid email", ErrValidation)
	}
	if len(password) < minPasswordLen {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLen)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	acct := &sqlite.Account{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.accounts.Create(ctx, acct); err != nil {
		if errors.Is(err, sqlite.ErrDuplicate) {
			return nil, ErrDuplicateAccount
		}
		return nil, err
	}

	return acct, nil
}

// Login checks credentials and opens a session. Every failure path
// returns ErrInvalidCredentials so callers cannot probe for accounts.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	acct, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sqlite.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	session := &Session{
		ID:        uuid.NewString(),
		AccountID: acct.ID,
		Token:     generateToken(),
		CreatedAt: now,
		ExpiresAt: now.Add(s.tokenTTL),
	}
	s.sessions.Store(session.Token, session)

	return session, nil
}

// Logout ends the session for a token. Unknown tokens are a no-op.
func (s *Service) Logout(token string) {
	s.sessions.Delete(token)
}

// Verify resolves a token to its account id
func (s *Service) Verify(token string) (string, error) {
	if token == "" {
		return "", ErrUnauthorized
	}

	val, ok := s.sessions.Load(token)
	if !ok {
		return "", ErrUnauthorized
	}

	session := val.(*Session)
	if time.Now().After(session.ExpiresAt) {
		s.sessions.Delete(token)
		return "", ErrUnauthorized
	}

	return session.AccountID, nil
}

// Account returns the account behind a valid token
func (s *Service) Account(ctx context.Context, token string) (*sqlite.Account, error) {
	accountID, err := s.Verify(token)
	if err != nil {
		return nil, err
	}

	acct, err := s.accounts.Get(ctx, accountID)
	if err != nil {
		if errors.Is(err, sqlite.ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	return acct, nil
}

// PruneExpired drops expired sessions and returns how many were removed
func (s *Service) PruneExpired() int {
	now := time.Now()
	removed := 0
	s.sessions.Range(func(key, val any) bool {
		if now.After(val.(*Session).ExpiresAt) {
			s.sessions.Delete(key)
			removed++
		}
		return true
	})
	return removed
}

func generateToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("crypto/rand failed: %v", err))
	}
	return base64.URLEncoding.EncodeToString(b)
}
