package service

import (
	"math"
	"time"

	"github.com/defamed-sol/github-analyzer-bot/model"
)

// scoring constants: each category contribution is capped before summation and
// the base score saturates at scoreCap, scores above it simply read as 100
const (
	accountAgeMaxPoints  = 10
	accountAgeRampDays   = 365
	deepReadmePoints     = 2 // per deep-scanned repository
	commitDaysMaxPoints  = 5 // per deep-scanned repository
	bioOrBlogPoints      = 5
	aiDetectedPoints     = 3
	cryptoDetectedPoints = 3
	scoreCap             = 30
)

// accountAgePoints ramps linearly over the first year and saturates at the maximum
func accountAgePoints(createdAt time.Time, now time.Time) float64 {
	if createdAt.IsZero() {
		return 0
	}

	ageDays := int(now.Sub(createdAt).Hours() / 24)

	if ageDays > accountAgeRampDays {
		return accountAgeMaxPoints
	}

	if ageDays < 0 {
		return 0
	}

	return float64(ageDays) / accountAgeRampDays * accountAgeMaxPoints
}

// computeScore combines every category contribution into the breakdown and the
// final normalized score. saturation above the cap is silent: the breakdown
// keeps the raw values so the report stays auditable
func computeScore(user model.UserProfile, readmePoints int, commitPoints int,
	pullRequests int, issues int, hasAI bool, hasCrypto bool, now time.Time) (model.ScoreBreakdown, float64) {

	breakdown := model.ScoreBreakdown{
		AccountAge: roundTwoDecimals(accountAgePoints(user.CreatedAt, now)),
		Readme:     readmePoints,
		Commit:     commitPoints,
		PRIssues:   pullRequests*2 + issues,
	}

	if user.HasBioOrBlog() {
		breakdown.ProfileBioBlog = bioOrBlogPoints
	}

	if hasAI {
		breakdown.AICrypto += aiDetectedPoints
	}

	if hasCrypto {
		breakdown.AICrypto += cryptoDetectedPoints
	}

	finalScore := math.Min(breakdown.BaseScore(), scoreCap) / scoreCap * 100

	return breakdown, roundTwoDecimals(finalScore)
}

func roundTwoDecimals(value float64) float64 {
	return math.Round(value*100) / 100
}
