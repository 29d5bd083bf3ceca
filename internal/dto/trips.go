package dto

// PageData is the common payload for static form pages
type PageData struct {
	Flashes []string
}

// CommitmentView is one row of the trip page's contribution list
type CommitmentView struct {
	Name        string
	Amount      float64
	CommittedAt string
}

// TripPageData is the payload for the trip detail page
type TripPageData struct {
	Name            string
	Code            string
	GoalAmount      float64
	MaxParticipants int
	Details         string
	Deadline        string
	CreatedAt       string
	DeadlinePassed  bool

	TotalCommitted  float64
	GoalPercent     int
	NumParticipants int
	Commitments     []CommitmentView

	Flashes []string
}
