package service

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/defamed-sol/github-analyzer-bot/model"
)

// minimum readme length before the section keywords are even considered
const minDeepReadmeLength = 200

// trailing window used for the pull request / issue activity counter
const activityWindowDays = 30

// isDeepReadme reports whether a readme is substantial: long enough and
// containing at least one expected section keyword
func isDeepReadme(text string, sections []string) bool {
	if len(text) < minDeepReadmeLength {
		return false
	}

	textLower := strings.ToLower(text)

	for _, section := range sections {
		if strings.Contains(textLower, section) {
			return true
		}
	}

	return false
}

// analyzeCommitFrequency groups commits into a day (UTC) -> count histogram
// and flags patterns typical of fabricated history:
// - everything pushed in a single day burst
// - very few active days with a low total
func analyzeCommitFrequency(commits []model.Commit) (map[string]int, bool) {
	dayCounts := make(map[string]int)
	total := 0

	for _, c := range commits {
		day := c.Date.UTC().Format("2006-01-02")
		dayCounts[day]++
		total++
	}

	if len(dayCounts) == 1 && total > 10 {
		return dayCounts, true
	}

	if len(dayCounts) < 5 && total < 20 {
		return dayCounts, true
	}

	return dayCounts, false
}

// detectLanguages builds the primary language histogram over the full repository
// list and detects AI / crypto involvement from topics, descriptions and languages
func detectLanguages(repositories []model.Repository, keywords KeywordConfig) (map[string]int, bool, bool) {
	languages := make(map[string]int)
	hasAI := false
	hasCrypto := false

	for _, r := range repositories {
		if r.Language != nil && *r.Language != "" {
			languages[*r.Language]++
		}

		topics := make(map[string]bool, len(r.Topics))
		for _, topic := range r.Topics {
			topics[strings.ToLower(topic)] = true
		}

		for _, kw := range keywords.AIKeywords {
			if topics[kw] {
				hasAI = true
			}
		}

		for _, kw := range keywords.CryptoKeywords {
			if topics[kw] {
				hasCrypto = true
			}
		}

		description := strings.ToLower(r.Description)

		if description != "" {
			for _, kw := range keywords.AIKeywords {
				if strings.Contains(description, kw) {
					hasAI = true
				}
			}

			for _, kw := range keywords.CryptoKeywords {
				if strings.Contains(description, kw) {
					hasCrypto = true
				}
			}
		}
	}

	// language based detection over the observed language set
	for _, lang := range keywords.AILanguages {
		if languages[lang] > 0 {
			hasAI = true
		}
	}

	for _, lang := range keywords.CryptoLanguages {
		if languages[lang] > 0 {
			hasCrypto = true
		}
	}

	return languages, hasAI, hasCrypto
}

// scanDependencyContent searches a decoded dependency file for known AI and
// crypto library tokens, returns the matches found (possibly none)
func scanDependencyContent(content string, keywords KeywordConfig) []string {
	contentLower := strings.ToLower(content)
	found := make(map[string]bool)

	for _, lib := range keywords.AILibraries {
		if strings.Contains(contentLower, lib) {
			found[lib] = true
		}
	}

	for _, lib := range keywords.CryptoLibraries {
		if strings.Contains(contentLower, lib) {
			found[lib] = true
		}
	}

	matches := make([]string, 0, len(found))
	for lib := range found {
		matches = append(matches, lib)
	}

	sort.Strings(matches)
	return matches
}

// countRecentActivity counts pull request and issue events created within the
// trailing 30 days window. the window boundary is inclusive: an event created
// exactly at the cutoff instant is counted
func countRecentActivity(events []model.Event, now time.Time) (int, int) {
	cutoff := now.Add(-activityWindowDays * 24 * time.Hour)

	pullRequests := 0
	issues := 0

	for _, ev := range events {
		if ev.CreatedAt.Before(cutoff) {
			continue
		}

		switch ev.Type {
		case model.EventTypePullRequest:
			pullRequests++
		case model.EventTypeIssues:
			issues++
		}
	}

	return pullRequests, issues
}

// asciiBarChart renders a counter as a fixed width text bar chart
// entries are ordered by count descending, then name, to keep the output stable
func asciiBarChart(counter map[string]int, title string) string {
	if len(counter) == 0 {
		return title + "\nNo data."
	}

	type entry struct {
		name  string
		count int
	}

	entries := make([]entry, 0, len(counter))
	total := 0
	maxNameLen := 0

	for name, count := range counter {
		entries = append(entries, entry{name: name, count: count})
		total += count

		if len(name) > maxNameLen {
			maxNameLen = len(name)
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].name < entries[j].name
	})

	lines := []string{title}

	for _, e := range entries {
		barLen := int(float64(e.count) / float64(total) * 20)
		bars := strings.Repeat("█", barLen)
		lines = append(lines, fmt.Sprintf("%*s: %s (%d)", maxNameLen, e.name, bars, e.count))
	}

	return strings.Join(lines, "\n")
}
