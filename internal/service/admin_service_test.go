package service

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mindstep-labs/mindstep-api/internal/models"
	"github.com/mindstep-labs/mindstep-api/internal/repository"
)

func TestAdminStatsCountsAndCaches(t *testing.T) {
	mini, err := miniredis.Run()
	require.NoError(t, err)
	defer mini.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: mini.Addr()})

	db, err := gorm.Open(sqlite.Open("file:admin_stats?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.SkillTestResult{},
		&models.PsychometricResult{},
		&models.Marksheet{},
		&models.LearningActivity{},
		&models.MentorMessage{},
	))

	users := []models.User{
		{Name: "A", Email: "a@example.com", Plan: models.PlanFree},
		{Name: "B", Email: "b@example.com", Plan: models.PlanPremium},
		{Name: "C", Email: "c@example.com", Plan: models.PlanAdmin},
	}
	for i := range users {
		require.NoError(t, db.Create(&users[i]).Error)
	}
	require.NoError(t, db.Create(&models.MentorMessage{UserID: users[0].ID, Role: models.MentorRoleUser, Content: "hi"}).Error)

	svc := NewAdminService(repository.NewAdminRepository(db), redisClient, time.Minute, zerolog.Nop())
	ctx := context.Background()

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	require.False(t, stats.CacheHit)
	require.EqualValues(t, 3, stats.Users)
	require.EqualValues(t, 2, stats.PremiumUsers)
	require.Zero(t, stats.Marksheets)
	require.EqualValues(t, 1, stats.MentorMessages)

	cached, err := svc.Stats(ctx)
	require.NoError(t, err)
	require.True(t, cached.CacheHit)
	require.EqualValues(t, 3, cached.Users)
}
