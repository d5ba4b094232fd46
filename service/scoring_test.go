package service

import (
	"testing"
	"time"

	"github.com/defamed-sol/github-analyzer-bot/model"
	"github.com/stretchr/testify/assert"
)

// TestAccountAgePoints will test function accountAgePoints
func TestAccountAgePoints(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		created  time.Time
		expected float64
	}{
		{
			name:     "Account older than a year saturates at the maximum",
			created:  now.AddDate(-2, 0, 0),
			expected: 10,
		},
		{
			name:     "Account exactly one year old reaches the maximum through the ramp",
			created:  now.AddDate(0, 0, -365),
			expected: 10,
		},
		{
			name:     "Young account gets a fractional ramp value",
			created:  now.AddDate(0, 0, -100),
			expected: 100.0 / 365 * 10,
		},
		{
			name:     "Brand new account gets zero",
			created:  now,
			expected: 0,
		},
		{
			name:     "Missing creation date gets zero",
			created:  time.Time{},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, accountAgePoints(tt.created, now), 0.0001)
		})
	}
}

// TestAccountAgePointsMonotonic checks the ramp only grows with age
func TestAccountAgePointsMonotonic(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	previous := 0.0

	for days := 0; days <= 400; days += 10 {
		points := accountAgePoints(now.AddDate(0, 0, -days), now)

		assert.GreaterOrEqual(t, points, previous)
		assert.LessOrEqual(t, points, 10.0)

		previous = points
	}
}

// TestComputeScore will test function computeScore
func TestComputeScore(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name              string
		user              model.UserProfile
		readmePoints      int
		commitPoints      int
		pullRequests      int
		issues            int
		hasAI             bool
		hasCrypto         bool
		expectedBreakdown model.ScoreBreakdown
		expectedScore     float64
	}{
		{
			name:          "Empty profile scores zero",
			user:          model.UserProfile{CreatedAt: now},
			expectedScore: 0,
			expectedBreakdown: model.ScoreBreakdown{
				AccountAge: 0,
			},
		},
		{
			name:         "Established profile saturates at one hundred",
			user:         model.UserProfile{CreatedAt: now.AddDate(-2, 0, 0), Bio: "hello"},
			readmePoints: 10,
			commitPoints: 25,
			pullRequests: 2,
			expectedBreakdown: model.ScoreBreakdown{
				AccountAge:     10,
				Readme:         10,
				Commit:         25,
				PRIssues:       4,
				ProfileBioBlog: 5,
			},
			expectedScore: 100,
		},
		{
			name: "Blog alone is enough for the profile category",
			user: model.UserProfile{CreatedAt: now.AddDate(-2, 0, 0), Blog: "https://example.org"},
			expectedBreakdown: model.ScoreBreakdown{
				AccountAge:     10,
				ProfileBioBlog: 5,
			},
			expectedScore: 50,
		},
		{
			name:      "AI and crypto both detected",
			user:      model.UserProfile{CreatedAt: now.AddDate(-2, 0, 0)},
			hasAI:     true,
			hasCrypto: true,
			expectedBreakdown: model.ScoreBreakdown{
				AccountAge: 10,
				AICrypto:   6,
			},
			expectedScore: 53.33,
		},
		{
			name:         "Pull requests weigh double the issues",
			user:         model.UserProfile{CreatedAt: now},
			pullRequests: 3,
			issues:       2,
			expectedBreakdown: model.ScoreBreakdown{
				PRIssues: 8,
			},
			expectedScore: 26.67,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			breakdown, score := computeScore(tt.user, tt.readmePoints, tt.commitPoints, tt.pullRequests, tt.issues, tt.hasAI, tt.hasCrypto, now)

			assert.Equal(t, tt.expectedBreakdown, breakdown)
			assert.Equal(t, tt.expectedScore, score)
		})
	}
}

// TestComputeScoreBounds checks the final score always stays in [0, 100]
func TestComputeScoreBounds(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	user := model.UserProfile{CreatedAt: now.AddDate(-5, 0, 0), Bio: "bio", Blog: "blog"}

	for _, magnitude := range []int{0, 1, 10, 100, 10000} {
		_, score := computeScore(user, magnitude, magnitude, magnitude, magnitude, true, true, now)

		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 100.0)
	}
}
