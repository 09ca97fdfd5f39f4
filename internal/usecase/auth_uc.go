// File: internal/usecase/auth_uc.go
package usecase

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/Omyadav19/puresoul-20-02-2026/internal/domain"
	"github.com/Omyadav19/puresoul-20-02-2026/internal/domain/model"
	"github.com/Omyadav19/puresoul-20-02-2026/internal/domain/ports/repository"
	"github.com/Omyadav19/puresoul-20-02-2026/internal/infra/logging"
)

// Compile-time check
var _ AuthUseCase = (*authUC)(nil)

const bcryptCost = 10

var (
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)
	emailRe    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	passwordLowerRe   = regexp.MustCompile(`[a-z]`)
	passwordUpperRe   = regexp.MustCompile(`[A-Z]`)
	passwordDigitRe   = regexp.MustCompile(`[0-9]`)
	passwordSpecialRe = regexp.MustCompile(`[@$!%*?&]`)
)

// AuthUseCase covers account lifecycle: registration, login, lookup and
// tier upgrades.
type AuthUseCase interface {
	Register(ctx context.Context, name, email, username, password string) (*model.User, error)
	Login(ctx context.Context, identifier, password string) (*model.User, error)
	GetByID(ctx context.Context, userID string) (*model.User, error)
	UpgradeToPro(ctx context.Context, userID string) error
}

type authUC struct {
	users repository.UserRepository
	log   *zerolog.Logger
}

func NewAuthUseCase(users repository.UserRepository, logger *zerolog.Logger) *authUC {
	return &authUC{users: users, log: logger}
}

func (a *authUC) Register(ctx context.Context, name, email, username, password string) (*model.User, error) {
	defer logging.TraceDuration(a.log, "AuthUC.Register")()

	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	username = strings.ToLower(strings.TrimSpace(username))

	if err := validateRegistration(name, email, username, password); err != nil {
		return nil, err
	}

	exists, err := a.users.ExistsByEmailOrUsername(ctx, repository.NoTX, email, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: email or username already registered", domain.ErrAlreadyExists)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := model.NewUser("", name, email, username, string(hash))
	if err != nil {
		return nil, err
	}
	if err := a.users.Save(ctx, repository.NoTX, user); err != nil {
		return nil, err
	}
	a.log.Info().Str("user_id", user.ID).Msg("user registered")
	return user, nil
}

func (a *authUC) Login(ctx context.Context, identifier, password string) (*model.User, error) {
	defer logging.TraceDuration(a.log, "AuthUC.Login")()

	identifier = strings.ToLower(strings.TrimSpace(identifier))
	if identifier == "" || password == "" {
		return nil, fmt.Errorf("%w: identifier and password are required", domain.ErrInvalidArgument)
	}

	user, err := a.users.FindByIdentifier(ctx, repository.NoTX, identifier)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrUnauthenticated
	}
	return user, nil
}

func (a *authUC) GetByID(ctx context.Context, userID string) (*model.User, error) {
	return a.users.FindByID(ctx, repository.NoTX, userID)
}

func (a *authUC) UpgradeToPro(ctx context.Context, userID string) error {
	defer logging.TraceDuration(a.log, "AuthUC.UpgradeToPro")()

	if err := a.users.SetPro(ctx, repository.NoTX, userID, true); err != nil {
		return err
	}
	a.log.Info().Str("user_id", userID).Msg("user upgraded to pro")
	return nil
}

func validateRegistration(name, email, username, password string) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrInvalidArgument)
	}
	if !emailRe.MatchString(email) {
		return fmt.Errorf("%w: invalid email address", domain.ErrInvalidArgument)
	}
	if !usernameRe.MatchString(username) {
		return fmt.Errorf("%w: username must be 3-20 characters (letters, digits, underscore)", domain.ErrInvalidArgument)
	}
	if len(password) < 8 ||
		!passwordLowerRe.MatchString(password) ||
		!passwordUpperRe.MatchString(password) ||
		!passwordDigitRe.MatchString(password) ||
		!passwordSpecialRe.MatchString(password) {
		return fmt.Errorf("%w: password must be at least 8 characters with upper, lower, digit and special character", domain.ErrInvalidArgument)
	}
	return nil
}
