package service

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mindstep-labs/mindstep-api/internal/dto"
	"github.com/mindstep-labs/mindstep-api/internal/models"
	"github.com/mindstep-labs/mindstep-api/internal/repository"
)

type dashboardFixture struct {
	dashboard   DashboardService
	assessments AssessmentService
	careers     CareerService
	learning    LearningService
	db          *gorm.DB
	mini        *miniredis.Miniredis
}

func newDashboardFixture(t *testing.T, dsn string) dashboardFixture {
	t.Helper()

	mini, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mini.Close)

	redisClient := redis.NewClient(&redis.Options{Addr: mini.Addr()})

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.SkillTestResult{},
		&models.PsychometricResult{},
		&models.Marksheet{},
		&models.UserSkill{},
		&models.LearningActivity{},
		&models.LearningGoal{},
	))

	validate := validator.New(validator.WithRequiredStructEnabled())
	assessmentRepo := repository.NewAssessmentRepository(db)
	skillRepo := repository.NewSkillRepository(db)
	learningRepo := repository.NewLearningRepository(db)

	return dashboardFixture{
		dashboard: NewDashboardService(
			repository.NewUserRepository(db),
			repository.NewProfileRepository(db),
			assessmentRepo,
			skillRepo,
			learningRepo,
			redisClient,
			"dashboard",
			time.Minute,
			zerolog.Nop(),
		),
		assessments: NewAssessmentService(assessmentRepo, validate, zerolog.Nop()),
		careers:     NewCareerService(skillRepo, validate, zerolog.Nop()),
		learning:    NewLearningService(learningRepo, validate, zerolog.Nop()),
		db:          db,
		mini:        mini,
	}
}

func (f dashboardFixture) createUser(t *testing.T) models.User {
	t.Helper()
	user := models.User{Name: "Asha", Email: "asha@example.com", Plan: models.PlanFree}
	require.NoError(t, f.db.Create(&user).Error)
	return user
}

func TestDashboardSummaryForNewUser(t *testing.T) {
	f := newDashboardFixture(t, "file:dash_new?mode=memory&cache=shared")
	user := f.createUser(t)

	summary, err := f.dashboard.Summary(context.Background(), user.ID)
	require.NoError(t, err)
	require.False(t, summary.CacheHit)
	require.False(t, summary.ProfileComplete)
	require.Empty(t, summary.SkillTests)
	require.Nil(t, summary.Psychometric)
	require.Nil(t, summary.Marksheet)
	require.Zero(t, summary.ProgressPercent)
}

func TestDashboardProgressCountsComponents(t *testing.T) {
	f := newDashboardFixture(t, "file:dash_progress?mode=memory&cache=shared")
	user := f.createUser(t)
	ctx := context.Background()

	_, err := f.assessments.SubmitSkillTest(ctx, user.ID, "technical", dto.SkillTestSubmitRequest{
		Answers: map[int]int{0: 1, 1: 0, 2: 2},
	})
	require.NoError(t, err)

	_, err = f.careers.AddSkill(ctx, user.ID, dto.SkillAddRequest{Name: "python"})
	require.NoError(t, err)

	// Two of the six journey components are done: 33 percent.
	summary, err := f.dashboard.Summary(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, 33, summary.ProgressPercent)
	require.Len(t, summary.SkillTests, 1)
	require.Equal(t, 1, summary.SkillCount)
}

func TestDashboardSummaryCachesAndInvalidates(t *testing.T) {
	f := newDashboardFixture(t, "file:dash_cache?mode=memory&cache=shared")
	user := f.createUser(t)
	ctx := context.Background()

	first, err := f.dashboard.Summary(ctx, user.ID)
	require.NoError(t, err)
	require.False(t, first.CacheHit)

	second, err := f.dashboard.Summary(ctx, user.ID)
	require.NoError(t, err)
	require.True(t, second.CacheHit)
	require.Zero(t, second.SkillCount)

	// A write plus invalidation forces a rebuild with fresh counts.
	_, err = f.careers.AddSkill(ctx, user.ID, dto.SkillAddRequest{Name: "python"})
	require.NoError(t, err)
	require.NoError(t, f.dashboard.Invalidate(ctx, user.ID))

	third, err := f.dashboard.Summary(ctx, user.ID)
	require.NoError(t, err)
	require.False(t, third.CacheHit)
	require.Equal(t, 1, third.SkillCount)
}

func TestDashboardSummaryUnknownUser(t *testing.T) {
	f := newDashboardFixture(t, "file:dash_missing?mode=memory&cache=shared")

	_, err := f.dashboard.Summary(context.Background(), 404)
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestDashboardLatestSkillTestPerCategory(t *testing.T) {
	f := newDashboardFixture(t, "file:dash_latest?mode=memory&cache=shared")
	user := f.createUser(t)
	ctx := context.Background()

	_, err := f.assessments.SubmitSkillTest(ctx, user.ID, "technical", dto.SkillTestSubmitRequest{
		Answers: map[int]int{0: 0},
	})
	require.NoError(t, err)
	retake, err := f.assessments.SubmitSkillTest(ctx, user.ID, "technical", dto.SkillTestSubmitRequest{
		Answers: map[int]int{0: 1, 1: 0, 2: 2, 3: 1, 4: 2},
	})
	require.NoError(t, err)

	summary, err := f.dashboard.Summary(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, summary.SkillTests, 1)
	require.Equal(t, retake.Percentage, summary.SkillTests[0].Percentage)
}
