package model

import "time"

// Repository is an immutable snapshot of one public repository
// the full list feeds language aggregation, only the first five are deep scanned
type Repository struct {
	Name        string   `json:"name"`
	Owner       string   `json:"owner"`
	Language    *string  `json:"language,omitempty"` // primary language can be nil for empty repositories
	Description string   `json:"description,omitempty"`
	Topics      []string `json:"topics,omitempty"`
	Stars       int      `json:"stars"`
	Forks       int      `json:"forks"`
}

// Commit only carries what the cadence extractor needs
type Commit struct {
	Date    time.Time `json:"date"`
	Message string    `json:"message"`
}

// Event types counted in the trailing activity window
// every other event type is ignored
const (
	EventTypePullRequest = "PullRequestEvent"
	EventTypeIssues      = "IssuesEvent"
)

type Event struct {
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
}
