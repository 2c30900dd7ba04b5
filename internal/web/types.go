package web

import "time"

// Viewer is the signed-in user as seen by the templates, nil for guests.
type Viewer struct {
	Name  string
	Email string
}

type PollSummary struct {
	ID            string
	Question      string
	Description   string
	OptionCount   int
	RequiresLogin bool
	CreatedAt     time.Time
}

type OptionField struct {
	ID   string
	Text string
}

type PollForm struct {
	PollID        string
	Question      string
	Description   string
	RequiresLogin bool
	SignedIn      bool
	Options       []OptionField
}

type PollView struct {
	ID            string
	Question      string
	Description   string
	Options       []OptionField
	VotedOptionID string
	CanEdit       bool
}

type ResultRow struct {
	Text    string
	Count   int
	Percent float64
}

type ResultsView struct {
	ID          string
	Question    string
	Description string
	TotalVotes  int
	Rows        []ResultRow
}

type ActivityItem struct {
	Type string
	When time.Time
}

type DashboardData struct {
	Polls     []PollSummary
	VoteCount int
	Activity  []ActivityItem
}
