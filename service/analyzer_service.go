package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/defamed-sol/github-analyzer-bot/config"
	"github.com/defamed-sol/github-analyzer-bot/model"

	log "github.com/sirupsen/logrus"
)

// only the first repositories of the listing are deep scanned (readme, commits,
// dependency files), this bounds the number of external calls per analysis
const maxDeepScanRepositories = 5

type AnalyzerService interface {
	Analyze(ctx context.Context, username string) (*model.AnalysisResult, error)
}

type analyzerService struct {
	githubService GithubService
	keywords      KeywordConfig
	config        config.Config
	now           func() time.Time
}

func NewAnalyzerService(config config.Config, githubService GithubService, keywords KeywordConfig) AnalyzerService {
	return analyzerService{
		githubService: githubService,
		keywords:      keywords,
		config:        config,
		now:           time.Now,
	}
}

// Analyze runs the whole scoring pipeline for one username
// only the initial user lookup can abort the analysis: every later fetch
// failure degrades the affected signal to its fallback value and adds a warning
func (s analyzerService) Analyze(ctx context.Context, username string) (*model.AnalysisResult, error) {
	user, err := s.githubService.GetUser(ctx, username)

	if err != nil {
		return nil, err
	}

	log.WithField("username", user.Login).Info("running profile analysis")

	warnings := make([]string, 0)

	repositories, err := s.githubService.ListRepositories(ctx, user.Login)

	if err != nil {
		log.WithField("username", user.Login).WithError(err).Warning("unable to list repositories, analysis continues without them")
		warnings = append(warnings, "Unable to list public repositories.")
		repositories = []model.Repository{}
	}

	readmePoints := 0
	commitPoints := 0
	dependencyFindings := make([]string, 0)

	deepScanCount := len(repositories)
	if deepScanCount > maxDeepScanRepositories {
		deepScanCount = maxDeepScanRepositories
	}

	for _, r := range repositories[:deepScanCount] {
		if points, ok := s.scanReadme(ctx, r); ok {
			readmePoints += points
		} else {
			warnings = append(warnings, fmt.Sprintf("Repo '%s': Shallow or missing README.", r.Name))
		}

		if points, ok := s.scanCommitHistory(ctx, r); ok {
			commitPoints += points
		} else {
			warnings = append(warnings, fmt.Sprintf("Repo '%s': Suspicious commit pattern.", r.Name))
		}

		dependencies, depWarnings := s.scanDependencyFiles(ctx, r)
		warnings = append(warnings, depWarnings...)

		if len(dependencies) > 0 {
			dependencyFindings = append(dependencyFindings, fmt.Sprintf("%s dependencies: %s", r.Name, strings.Join(dependencies, ", ")))
		}
	}

	events, err := s.githubService.ListUserEvents(ctx, user.Login)

	if err != nil {
		log.WithField("username", user.Login).WithError(err).Warning("unable to list public events, analysis continues without them")
		warnings = append(warnings, "Unable to fetch recent public activity.")
		events = []model.Event{}
	}

	now := s.now()
	pullRequests, issues := countRecentActivity(events, now)

	languages, hasAI, hasCrypto := detectLanguages(repositories, s.keywords)

	breakdown, finalScore := computeScore(user, readmePoints, commitPoints, pullRequests, issues, hasAI, hasCrypto, now)

	log.WithFields(log.Fields{
		"username": user.Login,
		"score":    finalScore,
		"warnings": len(warnings),
	}).Info("profile analysis finished")

	return &model.AnalysisResult{
		User:               user,
		Repositories:       repositories,
		Languages:          languages,
		LanguageChart:      asciiBarChart(languages, "Language Usage"),
		HasAI:              hasAI,
		HasCrypto:          hasCrypto,
		PullRequestsLast30: pullRequests,
		IssuesLast30:       issues,
		DependencyFindings: dependencyFindings,
		Breakdown:          breakdown,
		Score:              finalScore,
		Warnings:           warnings,
	}, nil
}

// scanReadme fetch the repository readme and check its depth
// any fetch failure degrades to a missing readme
func (s analyzerService) scanReadme(ctx context.Context, r model.Repository) (int, bool) {
	readme, err := s.githubService.GetReadme(ctx, r.Owner, r.Name)

	if err != nil {
		if !errors.Is(err, model.ErrNotFound) {
			log.WithFields(log.Fields{
				"owner":      r.Owner,
				"repository": r.Name,
			}).WithError(err).Debug("unable to fetch readme, counted as missing")
		}

		return 0, false
	}

	if !isDeepReadme(readme, s.keywords.ReadmeSections) {
		return 0, false
	}

	return deepReadmePoints, true
}

// scanCommitHistory fetch the commit history and check the cadence
// an unreachable history shows up as zero active days, which the suspicion
// rules already treat as a red flag
func (s analyzerService) scanCommitHistory(ctx context.Context, r model.Repository) (int, bool) {
	commits, err := s.githubService.ListCommits(ctx, r.Owner, r.Name)

	if err != nil {
		log.WithFields(log.Fields{
			"owner":      r.Owner,
			"repository": r.Name,
		}).WithError(err).Debug("unable to fetch commits, counted as suspicious")

		commits = []model.Commit{}
	}

	dayCounts, suspicious := analyzeCommitFrequency(commits)

	if suspicious {
		return 0, false
	}

	points := len(dayCounts)
	if points > commitDaysMaxPoints {
		points = commitDaysMaxPoints
	}

	return points, true
}

// scanDependencyFiles probe the candidate dependency filenames on a repository
// and accumulate the known AI / crypto library tokens found in them
// a missing file is skipped silently, a decode failure produces a warning
func (s analyzerService) scanDependencyFiles(ctx context.Context, r model.Repository) ([]string, []string) {
	found := make(map[string]bool)
	warnings := make([]string, 0)

	for _, filename := range s.keywords.DependencyFiles {
		content, err := s.githubService.GetFileContent(ctx, r.Owner, r.Name, filename)

		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				continue
			}

			log.WithFields(log.Fields{
				"repository": r.Name,
				"filename":   filename,
			}).WithError(err).Warning("failed to read dependency file")

			warnings = append(warnings, fmt.Sprintf("Repo '%s': unable to read %s.", r.Name, filename))
			continue
		}

		for _, lib := range scanDependencyContent(content, s.keywords) {
			found[lib] = true
		}
	}

	dependencies := make([]string, 0, len(found))
	for lib := range found {
		dependencies = append(dependencies, lib)
	}

	sort.Strings(dependencies)
	return dependencies, warnings
}
