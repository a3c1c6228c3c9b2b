package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mindstep-labs/mindstep-api/internal/dto"
	"github.com/mindstep-labs/mindstep-api/internal/models"
	"github.com/mindstep-labs/mindstep-api/internal/repository"
)

const testAdminCode = "admin123"

type instantGateway struct {
	charges int
}

func (g *instantGateway) Charge(ctx context.Context, userID uint, plan string) error {
	g.charges++
	return nil
}

func newAuthFixture(t *testing.T, dsn string) (AuthService, *gorm.DB, *instantGateway) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Session{}))

	gateway := &instantGateway{}
	svc := NewAuthService(
		repository.NewUserRepository(db),
		repository.NewSessionRepository(db),
		gateway,
		validator.New(validator.WithRequiredStructEnabled()),
		zerolog.Nop(),
		"test-secret",
		testAdminCode,
	)

	return svc, db, gateway
}

func TestSignUpIssuesTokenAndSession(t *testing.T) {
	svc, db, _ := newAuthFixture(t, "file:auth_signup?mode=memory&cache=shared")
	ctx := context.Background()

	resp, err := svc.SignUp(ctx, dto.SignUpRequest{
		Name:     "Asha",
		Email:    "asha@example.com",
		Password: "secret",
	})
	require.NoError(t, err)
	require.Equal(t, models.PlanFree, resp.User.Plan)
	require.False(t, resp.User.Premium)

	token, err := jwt.Parse(resp.Token, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	require.Equal(t, "asha@example.com", claims["email"])

	var session models.Session
	require.NoError(t, db.Where("token_id = ?", claims["jti"]).First(&session).Error)
	require.Equal(t, resp.User.ID, session.UserID)
}

func TestSignUpDuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthFixture(t, "file:auth_dupe?mode=memory&cache=shared")
	ctx := context.Background()

	payload := dto.SignUpRequest{Name: "Asha", Email: "asha@example.com", Password: "secret"}
	_, err := svc.SignUp(ctx, payload)
	require.NoError(t, err)

	_, err = svc.SignUp(ctx, payload)
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestSignUpAdminCodeGrantsAdminPlan(t *testing.T) {
	svc, _, _ := newAuthFixture(t, "file:auth_admin?mode=memory&cache=shared")

	resp, err := svc.SignUp(context.Background(), dto.SignUpRequest{
		Name:     "Root",
		Email:    "root@example.com",
		Password: testAdminCode,
	})
	require.NoError(t, err)
	require.Equal(t, models.PlanAdmin, resp.User.Plan)
	require.True(t, resp.User.Premium)
}

func TestSignInCreatesUnknownAccount(t *testing.T) {
	svc, _, _ := newAuthFixture(t, "file:auth_autocreate?mode=memory&cache=shared")

	resp, err := svc.SignIn(context.Background(), dto.SignInRequest{
		Email:    "newcomer@example.com",
		Password: "whatever",
	})
	require.NoError(t, err)
	require.Equal(t, "newcomer", resp.User.Name)
	require.Equal(t, models.PlanFree, resp.User.Plan)
}

func TestSignInAdminCodePromotesButNeverDemotes(t *testing.T) {
	svc, _, _ := newAuthFixture(t, "file:auth_promote?mode=memory&cache=shared")
	ctx := context.Background()

	first, err := svc.SignIn(ctx, dto.SignInRequest{Email: "asha@example.com", Password: "plain"})
	require.NoError(t, err)
	require.Equal(t, models.PlanFree, first.User.Plan)

	promoted, err := svc.SignIn(ctx, dto.SignInRequest{Email: "asha@example.com", Password: testAdminCode})
	require.NoError(t, err)
	require.Equal(t, models.PlanAdmin, promoted.User.Plan)

	// Later sign-in with an ordinary password keeps the admin plan.
	again, err := svc.SignIn(ctx, dto.SignInRequest{Email: "asha@example.com", Password: "plain"})
	require.NoError(t, err)
	require.Equal(t, models.PlanAdmin, again.User.Plan)
}

func TestSignOutIsIdempotent(t *testing.T) {
	svc, _, _ := newAuthFixture(t, "file:auth_signout?mode=memory&cache=shared")
	ctx := context.Background()

	resp, err := svc.SignIn(ctx, dto.SignInRequest{Email: "asha@example.com", Password: "plain"})
	require.NoError(t, err)

	token, err := jwt.Parse(resp.Token, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	tokenID := token.Claims.(jwt.MapClaims)["jti"].(string)

	require.NoError(t, svc.SignOut(ctx, tokenID))
	require.NoError(t, svc.SignOut(ctx, tokenID))

	_, err = svc.CurrentSession(ctx, tokenID)
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestUpgradeChargesGatewayOnce(t *testing.T) {
	svc, _, gateway := newAuthFixture(t, "file:auth_upgrade?mode=memory&cache=shared")
	ctx := context.Background()

	resp, err := svc.SignUp(ctx, dto.SignUpRequest{Name: "Asha", Email: "asha@example.com", Password: "secret"})
	require.NoError(t, err)

	upgraded, err := svc.Upgrade(ctx, resp.User.ID)
	require.NoError(t, err)
	require.Equal(t, models.PlanPremium, upgraded.Plan)
	require.True(t, upgraded.Premium)
	require.Equal(t, 1, gateway.charges)

	// Upgrading an already premium account is a no-op.
	again, err := svc.Upgrade(ctx, resp.User.ID)
	require.NoError(t, err)
	require.Equal(t, models.PlanPremium, again.Plan)
	require.Equal(t, 1, gateway.charges)
}

func TestUpgradeUnknownUser(t *testing.T) {
	svc, _, _ := newAuthFixture(t, "file:auth_upgrade_missing?mode=memory&cache=shared")

	_, err := svc.Upgrade(context.Background(), 9999)
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestSimulatedGatewayHonorsContext(t *testing.T) {
	gateway := NewSimulatedGateway(time.Minute, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := gateway.Charge(ctx, 1, models.PlanPremium)
	require.ErrorIs(t, err, context.Canceled)
}
