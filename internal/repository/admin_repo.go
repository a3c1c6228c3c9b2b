package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/mindstep-labs/mindstep-api/internal/models"
)

// PlatformCounts holds row counts aggregated for the admin overview.
type PlatformCounts struct {
	Users              int64
	PremiumUsers       int64
	Profiles           int64
	SkillTestResults   int64
	PsychometricTests  int64
	Marksheets         int64
	LearningActivities int64
	MentorMessages     int64
}

// AdminRepository surfaces platform-wide aggregates.
type AdminRepository interface {
	Counts(ctx context.Context) (PlatformCounts, error)
}

type adminRepository struct {
	db *gorm.DB
}

// NewAdminRepository constructs a gorm-backed admin repository.
func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) Counts(ctx context.Context) (PlatformCounts, error) {
	var counts PlatformCounts
	db := r.db.WithContext(ctx)

	queries := []struct {
		target *int64
		build  func() *gorm.DB
	}{
		{&counts.Users, func() *gorm.DB { return db.Model(&models.User{}) }},
		{&counts.PremiumUsers, func() *gorm.DB {
			return db.Model(&models.User{}).Where("plan IN ?", []string{models.PlanPremium, models.PlanAdmin})
		}},
		{&counts.Profiles, func() *gorm.DB { return db.Model(&models.Profile{}) }},
		{&counts.SkillTestResults, func() *gorm.DB { return db.Model(&models.SkillTestResult{}) }},
		{&counts.PsychometricTests, func() *gorm.DB { return db.Model(&models.PsychometricResult{}) }},
		{&counts.Marksheets, func() *gorm.DB { return db.Model(&models.Marksheet{}) }},
		{&counts.LearningActivities, func() *gorm.DB { return db.Model(&models.LearningActivity{}) }},
		{&counts.MentorMessages, func() *gorm.DB { return db.Model(&models.MentorMessage{}) }},
	}

	for _, q := range queries {
		if err := q.build().Count(q.target).Error; err != nil {
			return PlatformCounts{}, err
		}
	}

	return counts, nil
}
