// Package statistics derives dashboard figures from a snapshot of jobs.
package statistics

import (
	"time"

	"resaleops/internal/domain"
)

// Window is the length of each trend window.
const Window = 7 * 24 * time.Hour

// Compute is pure: it reads jobs, never modifies them, and gives the same
// answer for the same snapshot and now.
func Compute(jobs []domain.Job, now time.Time) domain.Statistics {
	st := domain.Statistics{
		Total:    len(jobs),
		ByStatus: make(map[domain.Status]int, len(domain.Statuses)),
		Trend:    domain.TrendStable,
	}
	for _, s := range domain.Statuses {
		st.ByStatus[s] = 0
	}
	if len(jobs) == 0 {
		return st
	}

	var (
		durationSum   time.Duration
		durationCount int
		targetCounts  = make(map[string]int)
	)
	recentStart := now.Add(-Window)
	previousStart := now.Add(-2 * Window)

	for _, j := range jobs {
		st.ByStatus[j.Status]++
		st.CompletedActions += len(j.CompletedTargets)
		if j.StartedAt != nil && j.CompletedAt != nil {
			durationSum += j.CompletedAt.Sub(*j.StartedAt)
			durationCount++
		}
		for _, t := range j.Targets {
			targetCounts[t]++
		}
		switch {
		case j.CreatedAt.After(now):
		case !j.CreatedAt.Before(recentStart):
			st.RecentCount++
		case !j.CreatedAt.Before(previousStart):
			st.PreviousCount++
		}
	}

	st.SuccessRate = float64(st.ByStatus[domain.StatusCompleted]) / float64(st.Total)
	if durationCount > 0 {
		st.AverageDuration = durationSum / time.Duration(durationCount)
	}
	st.MostActiveTarget = mostActive(targetCounts)
	st.Trend = trend(st.RecentCount, st.PreviousCount)
	return st
}

// trend compares recent against 1.1x and 0.9x of previous in integers so
// the boundaries are exact.
func trend(recent, previous int) domain.Trend {
	switch {
	case 10*recent > 11*previous:
		return domain.TrendUp
	case 10*recent < 9*previous:
		return domain.TrendDown
	default:
		return domain.TrendStable
	}
}

// mostActive picks the highest count; ties go to the lexically smallest name.
func mostActive(counts map[string]int) string {
	best, bestN := "", 0
	for t, n := range counts {
		if n > bestN || (n == bestN && t < best) {
			best, bestN = t, n
		}
	}
	return best
}
