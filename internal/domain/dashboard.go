package domain

// Duration selects a reporting window on dashboard summary endpoints.
type Duration string

const (
	DurationToday     Duration = "today"
	DurationThisWeek  Duration = "thisWeek"
	DurationLastWeek  Duration = "lastWeek"
	DurationThisMonth Duration = "thisMonth"
	DurationLastMonth Duration = "lastMonth"
	DurationThisYear  Duration = "thisYear"
	DurationLastYear  Duration = "lastYear"
)

// Durations lists the selector options in display order.
var Durations = []Duration{
	DurationToday, DurationThisWeek, DurationLastWeek,
	DurationThisMonth, DurationLastMonth, DurationThisYear, DurationLastYear,
}

// ParseDuration falls back to today for unknown input.
func ParseDuration(s string) Duration {
	for _, d := range Durations {
		if string(d) == s {
			return d
		}
	}
	return DurationToday
}

// Ranking orders the staff leaderboard.
type Ranking string

const (
	RankingBest  Ranking = "best"
	RankingWorst Ranking = "worst"
)

// ParseRanking falls back to best for unknown input.
func ParseRanking(s string) Ranking {
	if Ranking(s) == RankingWorst {
		return RankingWorst
	}
	return RankingBest
}

// Count is the body of every */count endpoint.
type Count struct {
	Count int `json:"count"`
}

type DepartmentSolved struct {
	DepartmentName string `json:"departmentName"`
	Count          int    `json:"count"`
}

type SolvedPending struct {
	Solved  int `json:"solved"`
	Pending int `json:"pending"`
}

// TicketSeries is the daily solved/pending time series.
type TicketSeries struct {
	Dates         []string `json:"dates"`
	PendingCounts []int    `json:"pendingCounts"`
	SolvedCounts  []int    `json:"solvedCounts"`
}

// StaffRank is one leaderboard entry.
type StaffRank struct {
	StaffName string `json:"staffName"`
	StaffRole string `json:"staffRole,omitempty"`
	Count     int    `json:"count"`
}

// StaffPerformance is one staff member's solved tickets per day.
type StaffPerformance struct {
	Days  []string `json:"days"`
	Count []int    `json:"count"`
}
