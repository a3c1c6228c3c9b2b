package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/mindstep-labs/mindstep-api/internal/dto"
	"github.com/mindstep-labs/mindstep-api/internal/models"
	"github.com/mindstep-labs/mindstep-api/internal/repository"
)

// ErrEmailTaken indicates the sign-up email already has an account.
var ErrEmailTaken = errors.New("email already registered")

// ErrSessionNotFound indicates the presented token has no active session.
var ErrSessionNotFound = errors.New("session not found")

// ErrUserNotFound indicates the account no longer exists.
var ErrUserNotFound = errors.New("user not found")

// AuthService handles sign-up, sign-in, sign-out and plan upgrades.
type AuthService interface {
	SignUp(ctx context.Context, payload dto.SignUpRequest) (dto.AuthResponse, error)
	SignIn(ctx context.Context, payload dto.SignInRequest) (dto.AuthResponse, error)
	SignOut(ctx context.Context, tokenID string) error
	CurrentSession(ctx context.Context, tokenID string) (dto.SessionResponse, error)
	Upgrade(ctx context.Context, userID uint) (dto.UserResponse, error)
}

// PaymentGateway completes an upgrade purchase. The default implementation
// simulates a fixed-latency provider and always succeeds.
type PaymentGateway interface {
	Charge(ctx context.Context, userID uint, plan string) error
}

type authService struct {
	users           repository.UserRepository
	sessions        repository.SessionRepository
	gateway         PaymentGateway
	validator       *validator.Validate
	logger          zerolog.Logger
	jwtSecret       string
	adminAccessCode string
	now             func() time.Time
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(userRepo repository.UserRepository, sessionRepo repository.SessionRepository, gateway PaymentGateway, validate *validator.Validate, logger zerolog.Logger, jwtSecret, adminAccessCode string) AuthService {
	return &authService{
		users:           userRepo,
		sessions:        sessionRepo,
		gateway:         gateway,
		validator:       validate,
		logger:          logger.With().Str("component", "auth_service").Logger(),
		jwtSecret:       jwtSecret,
		adminAccessCode: adminAccessCode,
		now:             time.Now,
	}
}

func (s *authService) SignUp(ctx context.Context, payload dto.SignUpRequest) (dto.AuthResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AuthResponse{}, err
	}

	if _, err := s.users.GetByEmail(ctx, payload.Email); err == nil {
		return dto.AuthResponse{}, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.AuthResponse{}, err
	}

	user := models.User{
		Name:  payload.Name,
		Email: payload.Email,
		Plan:  models.PlanFree,
	}
	if payload.Password == s.adminAccessCode {
		user.Plan = models.PlanAdmin
	}

	if err := s.users.Create(ctx, &user); err != nil {
		return dto.AuthResponse{}, err
	}

	s.logger.Info().Uint("user_id", user.ID).Str("plan", user.Plan).Msg("account created")

	return s.openSession(ctx, user)
}

func (s *authService) SignIn(ctx context.Context, payload dto.SignInRequest) (dto.AuthResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AuthResponse{}, err
	}

	user, err := s.users.GetByEmail(ctx, payload.Email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Demo flow: unknown emails get an account on first sign-in.
		user = models.User{
			Name:  nameFromEmail(payload.Email),
			Email: payload.Email,
			Plan:  models.PlanFree,
		}
		if payload.Password == s.adminAccessCode {
			user.Plan = models.PlanAdmin
		}
		if err := s.users.Create(ctx, &user); err != nil {
			return dto.AuthResponse{}, err
		}
	} else if err != nil {
		return dto.AuthResponse{}, err
	}

	// The admin access code promotes on any sign-in; it never demotes.
	if payload.Password == s.adminAccessCode && user.Plan != models.PlanAdmin {
		if err := s.users.UpdatePlan(ctx, user.ID, models.PlanAdmin); err != nil {
			return dto.AuthResponse{}, err
		}
		user.Plan = models.PlanAdmin
	}

	return s.openSession(ctx, user)
}

// SignOut deletes the session for the token. Signing out an already closed
// session succeeds without effect.
func (s *authService) SignOut(ctx context.Context, tokenID string) error {
	deleted, err := s.sessions.DeleteByTokenID(ctx, tokenID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		s.logger.Debug().Str("token_id", tokenID).Msg("sign-out for inactive session")
	}

	return nil
}

func (s *authService) CurrentSession(ctx context.Context, tokenID string) (dto.SessionResponse, error) {
	session, err := s.sessions.GetByTokenID(ctx, tokenID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.SessionResponse{}, ErrSessionNotFound
	} else if err != nil {
		return dto.SessionResponse{}, err
	}

	user, err := s.users.GetByID(ctx, session.UserID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.SessionResponse{}, ErrUserNotFound
	} else if err != nil {
		return dto.SessionResponse{}, err
	}

	return dto.SessionResponse{
		User:       dto.NewUserResponse(user),
		SignedInAt: session.CreatedAt,
	}, nil
}

// Upgrade moves a free account to premium after the gateway confirms the
// charge. Admin accounts are never downgraded; upgrading one is a no-op.
func (s *authService) Upgrade(ctx context.Context, userID uint) (dto.UserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.UserResponse{}, ErrUserNotFound
	} else if err != nil {
		return dto.UserResponse{}, err
	}

	if user.Plan == models.PlanAdmin || user.Plan == models.PlanPremium {
		return dto.NewUserResponse(user), nil
	}

	if err := s.gateway.Charge(ctx, user.ID, models.PlanPremium); err != nil {
		return dto.UserResponse{}, err
	}

	if err := s.users.UpdatePlan(ctx, user.ID, models.PlanPremium); err != nil {
		return dto.UserResponse{}, err
	}
	user.Plan = models.PlanPremium

	s.logger.Info().Uint("user_id", user.ID).Msg("plan upgraded to premium")

	return dto.NewUserResponse(user), nil
}

func (s *authService) openSession(ctx context.Context, user models.User) (dto.AuthResponse, error) {
	tokenID := uuid.NewString()
	issuedAt := s.now()

	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"plan":  user.Plan,
		"jti":   tokenID,
		"iat":   issuedAt.Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
	if err != nil {
		return dto.AuthResponse{}, err
	}

	session := models.Session{UserID: user.ID, TokenID: tokenID, CreatedAt: issuedAt}
	if err := s.sessions.Create(ctx, &session); err != nil {
		return dto.AuthResponse{}, err
	}

	return dto.AuthResponse{Token: token, User: dto.NewUserResponse(user)}, nil
}

func nameFromEmail(email string) string {
	for i, r := range email {
		if r == '@' {
			return email[:i]
		}
	}
	return email
}
