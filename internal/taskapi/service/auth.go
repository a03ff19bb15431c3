package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/taskdeck/taskdeck/internal/taskapi/domain"
	"github.com/taskdeck/taskdeck/internal/taskapi/store"
	"github.com/taskdeck/taskdeck/pkg/cryptox"
	"github.com/taskdeck/taskdeck/pkg/idx"
	"github.com/taskdeck/taskdeck/pkg/jwtx"
	"github.com/taskdeck/taskdeck/pkg/slogx"
)

// Credential failures are deliberately indistinguishable: unknown email,
// wrong password and deactivated account all surface this exact error so
// responses carry no account-existence oracle.
var errInvalidCredentials = domain.NewAuthenticationError("Invalid email or password")

// dummyHash is a bcrypt hash of a throwaway string, compared against when
// the email is unknown so the unknown-email path does comparable work to a
// real password check.
const dummyHash = "$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW"

// AuthService owns signup, login and token refresh.
type AuthService struct {
	Store  store.Store
	Codec  *jwtx.Codec
	Hasher *cryptox.Hasher
}

// AuthResult is a user plus the freshly issued token pair.
type AuthResult struct {
	User   domain.User
	Tokens domain.TokenPair
}

// Signup registers a new account, hashes the password, stamps the initial
// login and issues both tokens. The email is unique case-insensitively.
func (s *AuthService) Signup(ctx context.Context, email, password, firstName, lastName string) (AuthResult, error) {
	now := time.Now().UTC()

	hash, err := s.Hasher.Hash(password)
	if err != nil {
		return AuthResult{}, domain.NewInternalError(err)
	}

	user := domain.User{
		ID:           idx.New().String(),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(firstName),
		LastName:     strings.TrimSpace(lastName),
		Role:         domain.RoleUser,
		IsActive:     true,
		LastLoginAt:  &now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return AuthResult{}, domain.NewDuplicateError("An account with this email already exists")
		}
		return AuthResult{}, domain.NewDatabaseError(err)
	}

	tokens, err := s.issuePair(user)
	if err != nil {
		return AuthResult{}, err
	}

	slogx.FromContext(ctx).Info("user signed up", "user_id", user.ID)
	return AuthResult{User: user, Tokens: tokens}, nil
}

// Login verifies credentials and issues a fresh token pair. Every failure
// mode returns the same AuthenticationError.
func (s *AuthService) Login(ctx context.Context, email, password string) (AuthResult, error) {
	log := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Burn comparable time before rejecting.
			_ = s.Hasher.Verify(password, dummyHash)
			return AuthResult{}, errInvalidCredentials
		}
		return AuthResult{}, domain.NewDatabaseError(err)
	}

	if err := s.Hasher.Verify(password, user.PasswordHash); err != nil {
		log.Info("login rejected: bad password", "user_id", user.ID)
		return AuthResult{}, errInvalidCredentials
	}
	if !user.IsActive {
		log.Info("login rejected: account deactivated", "user_id", user.ID)
		return AuthResult{}, errInvalidCredentials
	}

	now := time.Now().UTC()
	if err := s.Store.Users().UpdateLastLogin(ctx, user.ID, now); err != nil {
		return AuthResult{}, domain.NewDatabaseError(err)
	}
	user.LastLoginAt = &now

	tokens, err := s.issuePair(user)
	if err != nil {
		return AuthResult{}, err
	}

	log.Info("user logged in", "user_id", user.ID)
	return AuthResult{User: user, Tokens: tokens}, nil
}

// Refresh exchanges a valid refresh token plus an active account for a
// freshly issued pair. The presented token is never extended; both tokens
// are always reissued.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (domain.TokenPair, error) {
	claims, err := s.Codec.Verify(refreshToken, jwtx.KindRefresh)
	if err != nil {
		if errors.Is(err, jwtx.ErrExpired) {
			return domain.TokenPair{}, domain.NewAuthenticationError("Refresh token has expired")
		}
		return domain.TokenPair{}, domain.NewAuthenticationError("Invalid refresh token")
	}

	user, err := s.Store.Users().GetUserByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.TokenPair{}, domain.NewAuthenticationError("Invalid refresh token")
		}
		return domain.TokenPair{}, domain.NewDatabaseError(err)
	}
	if !user.IsActive {
		return domain.TokenPair{}, domain.NewAuthenticationError("Invalid refresh token")
	}

	return s.issuePair(user)
}

func (s *AuthService) issuePair(u domain.User) (domain.TokenPair, error) {
	access, err := s.Codec.Issue(jwtx.KindAccess, u.ID, u.Email)
	if err != nil {
		return domain.TokenPair{}, domain.NewInternalError(err)
	}
	refresh, err := s.Codec.Issue(jwtx.KindRefresh, u.ID, u.Email)
	if err != nil {
		return domain.TokenPair{}, domain.NewInternalError(err)
	}
	return domain.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
