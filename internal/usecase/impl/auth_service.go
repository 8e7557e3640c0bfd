package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/pkg/errors"
)

// authService implements the AuthUsecase interface.
type authService struct {
	txManager repository.TransactionManager
	hasher    service.PasswordHasher
	tokens    service.TokenService
	logger    *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(
	txManager repository.TransactionManager,
	hasher service.PasswordHasher,
	tokens service.TokenService,
	logger *slog.Logger,
) usecase.AuthUsecase {
	return &authService{
		txManager: txManager,
		hasher:    hasher,
		tokens:    tokens,
		logger:    logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a new customer account. The role is fixed server-side;
// there is no way to request an admin account through this path.
func (srv *authService) Register(ctx context.Context, input usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	srv.log(ctx).Info("Registering account", slog.String("username", input.Username))

	passwordHash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}

	user := &entity.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: passwordHash,
		Role:         entity.RoleCustomer,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.UserRepo().Create(ctx, user); err != nil {
			if errors.Is(err, repository.ErrDuplicateUser) {
				return errors.Wrap(domainerrors.ErrConflict, "username or email already taken")
			}

			return errors.Wrap(err, "failed to create user")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to register account", slog.Any("error", err), slog.String("username", input.Username))

		return nil, err
	}
	srv.log(ctx).Info("Registered account", slog.Uint64("user_id", uint64(user.ID)))

	return &usecase.RegisterOutput{User: user}, nil
}

// Login verifies credentials against the user found by email or username
// and issues a token pair. The refresh token is stored hashed.
func (srv *authService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.LoginOutput, error) {
	srv.log(ctx).Info("Login attempt", slog.String("identifier", input.Identifier))

	var output *usecase.LoginOutput

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		user, err := repoFactory.UserRepo().FindByIdentifier(ctx, input.Identifier)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				// Same error as a wrong password so the response does not
				// reveal which accounts exist.
				return errors.Wrap(domainerrors.ErrInvalidCredentials, "unknown identifier")
			}

			return errors.Wrap(err, "failed to find user")
		}

		if !srv.hasher.Check(input.Password, user.PasswordHash) {
			return errors.Wrap(domainerrors.ErrInvalidCredentials, "password mismatch")
		}

		pair, err := srv.issueTokens(ctx, repoFactory, user)
		if err != nil {
			return err
		}

		output = &usecase.LoginOutput{
			AccessToken:  pair.AccessToken,
			RefreshToken: pair.RefreshToken,
			User:         user,
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Login failed", slog.Any("error", err), slog.String("identifier", input.Identifier))

		return nil, err
	}
	srv.log(ctx).Info("Login succeeded", slog.Uint64("user_id", uint64(output.User.ID)))

	return output, nil
}

// Refresh rotates a refresh token. The presented token must carry a valid
// signature AND match a stored, non-revoked, non-expired session hash; the
// matched session is revoked and a fresh pair issued in its place.
func (srv *authService) Refresh(ctx context.Context, rawRefreshToken string) (*usecase.RefreshOutput, error) {
	claims, err := srv.tokens.VerifyRefreshToken(rawRefreshToken)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrInvalidToken, "refresh token rejected")
	}

	var output *usecase.RefreshOutput

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		matched, err := srv.findMatchingSession(ctx, repoFactory, rawRefreshToken)
		if err != nil {
			return err
		}
		if matched == nil || matched.UserID != claims.UserID {
			return errors.Wrap(domainerrors.ErrInvalidToken, "no matching session")
		}

		if err := repoFactory.RefreshTokenRepo().Revoke(ctx, matched.ID); err != nil {
			return errors.Wrap(err, "failed to revoke rotated token")
		}

		user, err := repoFactory.UserRepo().FindByID(ctx, claims.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrInvalidToken, "user no longer exists")
			}

			return errors.Wrap(err, "failed to find user")
		}

		pair, err := srv.issueTokens(ctx, repoFactory, user)
		if err != nil {
			return err
		}

		output = &usecase.RefreshOutput{
			AccessToken:  pair.AccessToken,
			RefreshToken: pair.RefreshToken,
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Refresh failed", slog.Any("error", err))

		return nil, err
	}
	srv.log(ctx).Info("Rotated refresh token", slog.Uint64("user_id", uint64(claims.UserID)))

	return output, nil
}

// Logout revokes the session matching the presented token. It returns
// success whether or not a match was found, so a caller probing with
// invented tokens learns nothing.
func (srv *authService) Logout(ctx context.Context, rawRefreshToken string) error {
	if _, err := srv.tokens.VerifyRefreshToken(rawRefreshToken); err != nil {
		srv.log(ctx).Debug("Logout with unverifiable token", slog.Any("error", err))

		return nil
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		matched, err := srv.findMatchingSession(ctx, repoFactory, rawRefreshToken)
		if err != nil {
			return err
		}
		if matched == nil {
			return nil
		}

		if err := repoFactory.RefreshTokenRepo().Revoke(ctx, matched.ID); err != nil {
			return errors.Wrap(err, "failed to revoke token")
		}
		srv.log(ctx).Info("Logged out session", slog.Uint64("session_id", uint64(matched.ID)))

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Logout failed", slog.Any("error", err))

		return errors.Wrap(err, "failed to log out")
	}

	return nil
}

// ChangePassword verifies the current password before storing a new hash.
func (srv *authService) ChangePassword(ctx context.Context, input usecase.ChangePasswordInput) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		user, err := userRepo.FindByID(ctx, input.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrNotFound, "user not found")
			}

			return errors.Wrap(err, "failed to find user")
		}

		if !srv.hasher.Check(input.CurrentPassword, user.PasswordHash) {
			return errors.Wrap(domainerrors.ErrInvalidCredentials, "current password mismatch")
		}

		newHash, err := srv.hasher.Hash(input.NewPassword)
		if err != nil {
			return errors.Wrap(err, "failed to hash new password")
		}

		if err := userRepo.UpdatePassword(ctx, input.UserID, newHash); err != nil {
			return errors.Wrap(err, "failed to update password")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Password change failed", slog.Any("error", err), slog.Uint64("user_id", uint64(input.UserID)))

		return err
	}
	srv.log(ctx).Info("Password changed", slog.Uint64("user_id", uint64(input.UserID)))

	return nil
}

// ListUsers returns all accounts.
func (srv *authService) ListUsers(ctx context.Context) ([]*entity.User, error) {
	var users []*entity.User

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		users, err = repoFactory.UserRepo().List(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to list users")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return users, nil
}

// ListSessions returns all stored refresh token sessions, newest first.
func (srv *authService) ListSessions(ctx context.Context) ([]*usecase.SessionInfo, error) {
	var sessions []*usecase.SessionInfo

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		tokens, err := repoFactory.RefreshTokenRepo().List(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to list refresh tokens")
		}

		now := time.Now()
		for _, token := range tokens {
			sessions = append(sessions, &usecase.SessionInfo{
				ID:        token.ID,
				UserID:    token.UserID,
				Revoked:   token.Revoked,
				Active:    token.Active(now),
				ExpiresAt: token.ExpiresAt,
				CreatedAt: token.CreatedAt,
			})
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return sessions, nil
}

// RevokeSession revokes a session by record id.
func (srv *authService) RevokeSession(ctx context.Context, sessionID uint) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.RefreshTokenRepo().Revoke(ctx, sessionID); err != nil {
			if errors.Is(err, repository.ErrRefreshTokenNotFound) {
				return errors.Wrap(domainerrors.ErrNotFound, "session not found")
			}

			return errors.Wrap(err, "failed to revoke session")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Session revocation failed", slog.Any("error", err), slog.Uint64("session_id", uint64(sessionID)))

		return err
	}
	srv.log(ctx).Info("Revoked session", slog.Uint64("session_id", uint64(sessionID)))

	return nil
}

// issueTokens mints a token pair for the user and persists the refresh
// token's hash. The stored expiry comes from the configured TTL, not from
// the token's own claim.
func (srv *authService) issueTokens(ctx context.Context, repoFactory repository.RepositoryFactory, user *entity.User) (*entity.TokenPair, error) {
	accessToken, err := srv.tokens.SignAccessToken(user)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign access token")
	}

	refreshToken, err := srv.tokens.SignRefreshToken(user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign refresh token")
	}

	tokenHash, err := srv.hasher.HashToken(refreshToken)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash refresh token")
	}

	record := &entity.RefreshToken{
		UserID:    user.ID,
		TokenHash: tokenHash,
		ExpiresAt: time.Now().Add(srv.tokens.RefreshTokenDuration()),
	}
	if err := repoFactory.RefreshTokenRepo().Create(ctx, record); err != nil {
		return nil, errors.Wrap(err, "failed to store refresh token")
	}

	return &entity.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// findMatchingSession scans all active sessions and bcrypt-verifies the
// presented token against each stored hash. Linear in the number of active
// sessions, which stays tiny for a single-store admin panel; the upside is
// that the table never holds anything a leak could replay.
func (srv *authService) findMatchingSession(ctx context.Context, repoFactory repository.RepositoryFactory, rawRefreshToken string) (*entity.RefreshToken, error) {
	active, err := repoFactory.RefreshTokenRepo().FindActive(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load active sessions")
	}

	for _, token := range active {
		if srv.hasher.CheckToken(rawRefreshToken, token.TokenHash) {
			return token, nil
		}
	}

	return nil, nil
}
