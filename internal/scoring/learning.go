package scoring

import (
	"fmt"
	"math"
	"time"
)

// ActivityEntry is the slice of a learning activity the tracker needs.
type ActivityEntry struct {
	Hours float64
	Date  time.Time
}

// WeekBucket aggregates activities falling inside one seven day window.
type WeekBucket struct {
	Label      string  `json:"label"`
	Hours      float64 `json:"hours"`
	Activities int     `json:"activity_count"`
}

// WeeklyBuckets splits activities into four trailing seven day windows ending
// with the window that starts at now. Window bounds are inclusive at day
// granularity, so an activity dated exactly on a boundary counts.
func WeeklyBuckets(activities []ActivityEntry, now time.Time) []WeekBucket {
	buckets := make([]WeekBucket, 0, 4)
	for i := 3; i >= 0; i-- {
		start := dayStart(now.AddDate(0, 0, -i*7))
		end := dayEnd(start.AddDate(0, 0, 6))

		bucket := WeekBucket{Label: fmt.Sprintf("W%d", 4-i)}
		for _, a := range activities {
			if !a.Date.Before(start) && !a.Date.After(end) {
				bucket.Hours += a.Hours
				bucket.Activities++
			}
		}
		buckets = append(buckets, bucket)
	}
	return buckets
}

// LearningTotals summarises all activities plus the average across buckets.
type LearningTotals struct {
	TotalHours      float64 `json:"total_hours"`
	TotalActivities int     `json:"total_activities"`
	AvgHoursPerWeek float64 `json:"avg_hours_per_week"`
}

// SummarizeLearning computes lifetime totals and the per-week average over
// the given buckets, rounded to one decimal.
func SummarizeLearning(activities []ActivityEntry, buckets []WeekBucket) LearningTotals {
	totals := LearningTotals{TotalActivities: len(activities)}
	for _, a := range activities {
		totals.TotalHours += a.Hours
	}
	if len(buckets) > 0 {
		sum := 0.0
		for _, b := range buckets {
			sum += b.Hours
		}
		totals.AvgHoursPerWeek = math.Round(sum/float64(len(buckets))*10) / 10
	}
	return totals
}

func dayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func dayEnd(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
