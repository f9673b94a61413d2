package service

import (
	"context"
	"log/slog"

	"github.com/clutchplay/platform/internal/auth"
	"github.com/clutchplay/platform/internal/domain"
	"github.com/clutchplay/platform/internal/guard"
	"github.com/clutchplay/platform/internal/provider"
	"github.com/clutchplay/platform/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles registration and login for both realms.
type AuthService struct {
	pool     *pgxpool.Pool
	users    repository.UserRepository
	outbox   repository.OutboxRepository
	jwtMgr   *auth.JWTManager
	verifier provider.VerificationSender
	logger   *slog.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(
	pool *pgxpool.Pool,
	users repository.UserRepository,
	outbox repository.OutboxRepository,
	jwtMgr *auth.JWTManager,
	verifier provider.VerificationSender,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		pool:     pool,
		users:    users,
		outbox:   outbox,
		jwtMgr:   jwtMgr,
		verifier: verifier,
		logger:   logger,
	}
}

// RegisterInput holds the registration request fields.
type RegisterInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// AuthResult is returned on successful registration or login.
type AuthResult struct {
	Token    string      `json:"token"`
	UserID   uuid.UUID   `json:"user_id"`
	Username string      `json:"username"`
	Role     domain.Role `json:"role"`
	Balance  int64       `json:"balance"`
}

// Register creates a new player account within a single transaction.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	if err := domain.ValidateUsername(input.Username); err != nil {
		return nil, domain.ErrValidation(err.Error())
	}
	if len(input.Password) < 8 {
		return nil, domain.ErrValidation("password must be at least 8 characters")
	}
	if err := domain.ValidateEmail(input.Email); err != nil {
		return nil, domain.ErrValidation(err.Error())
	}
	if err := domain.ValidatePhone(input.Phone); err != nil {
		return nil, domain.ErrValidation(err.Error())
	}

	existing, err := s.users.FindByUsername(ctx, s.pool, input.Username)
	if err != nil {
		return nil, domain.ErrInternal("find user", err)
	}
	if existing != nil {
		return nil, domain.ErrConflict("username already taken")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.ErrInternal("hash password", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Username:     input.Username,
		PasswordHash: string(hash),
		Role:         domain.RolePlayer,
	}
	if input.Email != "" {
		user.Email = &input.Email
	}
	if input.Phone != "" {
		user.Phone = &input.Phone
	}

	// Run in transaction: the user row and its registration event commit together.
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, domain.ErrInternal("begin tx", err)
	}
	defer tx.Rollback(ctx)

	if err := s.users.Create(ctx, tx, user); err != nil {
		return nil, domain.ErrInternal("create user", err)
	}
	if err := s.outbox.Insert(ctx, tx, domain.NewUserRegisteredEvent(user.ID, user.Username)); err != nil {
		return nil, domain.ErrInternal("insert outbox event", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, domain.ErrInternal("commit tx", err)
	}

	s.sendVerificationCodes(ctx, user)

	token, err := s.jwtMgr.GenerateToken(auth.RealmPlayer, user.ID, user.Username)
	if err != nil {
		return nil, domain.ErrInternal("generate token", err)
	}

	return &AuthResult{
		Token:    token,
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		Balance:  user.Balance,
	}, nil
}

// sendVerificationCodes issues contact verification codes after registration.
// Delivery failures never fail the registration.
func (s *AuthService) sendVerificationCodes(ctx context.Context, user *domain.User) {
	if user.Email != nil {
		code, err := provider.GenerateCode()
		if err == nil {
			err = s.verifier.SendEmailCode(ctx, *user.Email, code)
		}
		if err != nil {
			s.logger.Warn("email verification send failed", "user_id", user.ID, "error", err)
		}
	}
	if user.Phone != nil {
		code, err := provider.GenerateCode()
		if err == nil {
			err = s.verifier.SendSMSCode(ctx, *user.Phone, code)
		}
		if err != nil {
			s.logger.Warn("sms verification send failed", "user_id", user.ID, "error", err)
		}
	}
}

// LoginInput holds the login request fields.
type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
	ClientIP string `json:"-"`
}

// Login authenticates a player and returns a JWT.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	return s.login(ctx, input, auth.RealmPlayer)
}

// AdminLogin authenticates an admin account against the admin realm.
// A player account holding valid credentials is still rejected here.
func (s *AuthService) AdminLogin(ctx context.Context, input LoginInput) (*AuthResult, error) {
	return s.login(ctx, input, auth.RealmAdmin)
}

func (s *AuthService) login(ctx context.Context, input LoginInput, realm auth.Realm) (*AuthResult, error) {
	if err := guard.CheckLocked(ctx, s.pool, input.Username, string(realm)); err != nil {
		return nil, err
	}

	user, err := s.users.FindByUsername(ctx, s.pool, input.Username)
	if err != nil {
		return nil, domain.ErrInternal("find user", err)
	}
	if user == nil {
		guard.RecordAttempt(ctx, s.pool, input.Username, string(realm), input.ClientIP, false)
		return nil, domain.ErrInvalidCredentials()
	}

	// The ban check runs before the password compare: a banned account gets
	// ACCOUNT_BANNED whether or not the password is right, so the response
	// does not leak credential validity for banned accounts.
	if user.Banned {
		guard.RecordAttempt(ctx, s.pool, input.Username, string(realm), input.ClientIP, false)
		return nil, domain.ErrAccountBanned()
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		guard.RecordAttempt(ctx, s.pool, input.Username, string(realm), input.ClientIP, false)
		return nil, domain.ErrInvalidCredentials()
	}

	if realm == auth.RealmAdmin && !user.IsAdmin() {
		guard.RecordAttempt(ctx, s.pool, input.Username, string(realm), input.ClientIP, false)
		return nil, domain.ErrForbidden("admin access required")
	}

	guard.RecordAttempt(ctx, s.pool, input.Username, string(realm), input.ClientIP, true)

	token, err := s.jwtMgr.GenerateToken(realm, user.ID, user.Username)
	if err != nil {
		return nil, domain.ErrInternal("generate token", err)
	}

	return &AuthResult{
		Token:    token,
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		Balance:  user.Balance,
	}, nil
}

// Me returns the authenticated account's own record.
func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, s.pool, userID)
	if err != nil {
		return nil, domain.ErrInternal("find user", err)
	}
	if user == nil {
		return nil, domain.ErrNotFound("user", userID.String())
	}
	return user, nil
}
