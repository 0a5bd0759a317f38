package domain

import "time"

type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// Statistics is a read-only projection over a snapshot of jobs. It is never stored.
type Statistics struct {
	Total            int
	ByStatus         map[Status]int
	SuccessRate      float64
	AverageDuration  time.Duration
	CompletedActions int
	MostActiveTarget string
	Trend            Trend
	RecentCount      int
	PreviousCount    int
}
