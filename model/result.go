package model

// ScoreBreakdown holds the raw, pre-cap point contribution of each category
// every value is non-negative, the overall cap is applied after summation
type ScoreBreakdown struct {
	AccountAge     float64 `json:"accountAgePoints"`
	Readme         int     `json:"readmePoints"`
	Commit         int     `json:"commitPoints"`
	PRIssues       int     `json:"prIssuesPoints"`
	ProfileBioBlog int     `json:"profileBioBlogPoints"`
	AICrypto       int     `json:"aiCryptoPoints"`
}

// BaseScore is the un-normalized sum of all category contributions
func (b ScoreBreakdown) BaseScore() float64 {
	return b.AccountAge + float64(b.Readme+b.Commit+b.PRIssues+b.ProfileBioBlog+b.AICrypto)
}

// AnalysisResult is the single value the pipeline hands to its callers
// it is fully populated or not produced at all
type AnalysisResult struct {
	User               UserProfile    `json:"user"`
	Repositories       []Repository   `json:"repositories"`
	Languages          map[string]int `json:"languages"`
	LanguageChart      string         `json:"languageChart"`
	HasAI              bool           `json:"hasAI"`
	HasCrypto          bool           `json:"hasCrypto"`
	PullRequestsLast30 int            `json:"pullRequestsLast30Days"`
	IssuesLast30       int            `json:"issuesLast30Days"`
	DependencyFindings []string       `json:"dependencyFindings,omitempty"`
	Breakdown          ScoreBreakdown `json:"scoreBreakdown"`
	Score              float64        `json:"score"` // normalized to [0, 100], two decimals
	Warnings           []string       `json:"warnings,omitempty"`
}
