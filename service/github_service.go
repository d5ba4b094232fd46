package service

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/defamed-sol/github-analyzer-bot/config"
	"github.com/defamed-sol/github-analyzer-bot/model"
	"github.com/google/go-github/v66/github"

	log "github.com/sirupsen/logrus"

	"golang.org/x/time/rate"
)

type GithubService interface {
	GetUser(ctx context.Context, username string) (model.UserProfile, error)
	ListRepositories(ctx context.Context, username string) ([]model.Repository, error)
	GetReadme(ctx context.Context, owner string, repository string) (string, error)
	ListCommits(ctx context.Context, owner string, repository string) ([]model.Commit, error)
	ListUserEvents(ctx context.Context, username string) ([]model.Event, error)
	GetFileContent(ctx context.Context, owner string, repository string, path string) (string, error)

	HandleRequestErrors(err error) error
}

type githubService struct {
	githubClient      *github.Client
	githubRateLimiter *rate.Limiter
	config            config.Config
}

// all requests used here share the GitHub core rate limit
// core rate limit = 60 calls per hour for non-authenticated and 5000 calls for authenticated
// a single analysis can spend up to ~40 requests (user + repo pages + 5 deep scans + events)
func NewGithubService(config config.Config, githubClient *github.Client, rateLimiter *rate.Limiter) GithubService {
	return githubService{
		githubClient:      githubClient,
		githubRateLimiter: rateLimiter,
		config:            config,
	}
}

// GetUser fetch a single user profile
// a 404 from github is returned as model.ErrUserNotFound and aborts the whole analysis
func (s githubService) GetUser(ctx context.Context, username string) (model.UserProfile, error) {
	if !s.githubRateLimiter.Allow() {
		log.Warning("the Github rate limit has been reached. Use a token or wait until the limit reset")
		return model.UserProfile{}, model.ErrRateLimitReached
	}

	log.WithField("username", username).Debug("fetch user profile from github")

	user, resp, err := s.githubClient.Users.Get(ctx, username)

	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return model.UserProfile{}, model.ErrUserNotFound
		}

		return model.UserProfile{}, s.HandleRequestErrors(err)
	}

	return model.UserProfile{
		Login:           user.GetLogin(),
		Name:            user.GetName(),
		CreatedAt:       user.GetCreatedAt().Time,
		Bio:             user.GetBio(),
		Blog:            user.GetBlog(),
		TwitterUsername: user.GetTwitterUsername(),
		AvatarURL:       user.GetAvatarURL(),
		ProfileURL:      user.GetHTMLURL(),
		PublicRepos:     user.GetPublicRepos(),
		Followers:       user.GetFollowers(),
	}, nil
}

// ListRepositories fetch every public repository of a user in provider listing order
// the pagination is walked until the last page like the events and commits listings
func (s githubService) ListRepositories(ctx context.Context, username string) ([]model.Repository, error) {
	opts := &github.RepositoryListByUserOptions{
		ListOptions: github.ListOptions{PerPage: 100},
	}

	repositories := make([]model.Repository, 0)

	for {
		if !s.githubRateLimiter.Allow() {
			log.Warning("the Github rate limit has been reached. Use a token or wait until the limit reset")
			return nil, model.ErrRateLimitReached
		}

		repos, resp, err := s.githubClient.Repositories.ListByUser(ctx, username, opts)

		if err != nil {
			return nil, s.HandleRequestErrors(err)
		}

		for _, r := range repos {
			if r == nil || r.Name == nil || r.Owner == nil || r.Owner.Login == nil {
				log.WithField("repositoryID", r.GetID()).Debug("repository found with invalid information. skipped")
				continue
			}

			repositories = append(repositories, model.Repository{
				Name:        r.GetName(),
				Owner:       r.GetOwner().GetLogin(),
				Language:    r.Language,
				Description: r.GetDescription(),
				Topics:      r.Topics,
				Stars:       r.GetStargazersCount(),
				Forks:       r.GetForksCount(),
			})
		}

		if resp.NextPage == 0 {
			break
		}

		opts.Page = resp.NextPage
	}

	log.WithFields(log.Fields{
		"username":             username,
		"numberOfRepositories": len(repositories),
	}).Debug("fetched all public repositories for user")

	return repositories, nil
}

// GetReadme fetch and decode the main readme of a repository
// a missing readme is a normal situation and returned as model.ErrNotFound
func (s githubService) GetReadme(ctx context.Context, owner string, repository string) (string, error) {
	if !s.githubRateLimiter.Allow() {
		log.Warning("the Github rate limit has been reached. Use a token or wait until the limit reset")
		return "", model.ErrRateLimitReached
	}

	readme, resp, err := s.githubClient.Repositories.GetReadme(ctx, owner, repository, nil)

	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return "", model.ErrNotFound
		}

		return "", s.HandleRequestErrors(err)
	}

	content, err := readme.GetContent()

	if err != nil {
		log.WithFields(log.Fields{
			"owner":      owner,
			"repository": repository,
		}).WithError(err).Warning("unable to decode readme content")

		return "", model.ErrFetch
	}

	return content, nil
}

// ListCommits fetch the full commit history of a repository default branch
func (s githubService) ListCommits(ctx context.Context, owner string, repository string) ([]model.Commit, error) {
	opts := &github.CommitsListOptions{
		ListOptions: github.ListOptions{PerPage: 100},
	}

	commits := make([]model.Commit, 0)

	for {
		if !s.githubRateLimiter.Allow() {
			log.Warning("the Github rate limit has been reached. Use a token or wait until the limit reset")
			return nil, model.ErrRateLimitReached
		}

		repositoryCommits, resp, err := s.githubClient.Repositories.ListCommits(ctx, owner, repository, opts)

		if err != nil {
			return nil, s.HandleRequestErrors(err)
		}

		for _, c := range repositoryCommits {
			if c == nil || c.Commit == nil {
				continue
			}

			commits = append(commits, model.Commit{
				Date:    c.GetCommit().GetCommitter().GetDate().Time,
				Message: c.GetCommit().GetMessage(),
			})
		}

		if resp.NextPage == 0 {
			break
		}

		opts.Page = resp.NextPage
	}

	return commits, nil
}

// ListUserEvents fetch the public events of a user
// github only keeps the last 90 days, which covers the 30 days activity window
func (s githubService) ListUserEvents(ctx context.Context, username string) ([]model.Event, error) {
	opts := &github.ListOptions{PerPage: 100}

	events := make([]model.Event, 0)

	for {
		if !s.githubRateLimiter.Allow() {
			log.Warning("the Github rate limit has been reached. Use a token or wait until the limit reset")
			return nil, model.ErrRateLimitReached
		}

		userEvents, resp, err := s.githubClient.Activity.ListEventsPerformedByUser(ctx, username, true, opts)

		if err != nil {
			return nil, s.HandleRequestErrors(err)
		}

		for _, ev := range userEvents {
			if ev == nil {
				continue
			}

			events = append(events, model.Event{
				Type:      ev.GetType(),
				CreatedAt: ev.GetCreatedAt().Time,
			})
		}

		if resp.NextPage == 0 {
			break
		}

		opts.Page = resp.NextPage
	}

	return events, nil
}

// GetFileContent fetch and decode a single file from the repository root
// used by the dependency file scanner, a 404 means the candidate file does not exist
func (s githubService) GetFileContent(ctx context.Context, owner string, repository string, path string) (string, error) {
	if !s.githubRateLimiter.Allow() {
		log.Warning("the Github rate limit has been reached. Use a token or wait until the limit reset")
		return "", model.ErrRateLimitReached
	}

	fileContent, _, resp, err := s.githubClient.Repositories.GetContents(ctx, owner, repository, path, nil)

	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return "", model.ErrNotFound
		}

		return "", s.HandleRequestErrors(err)
	}

	if fileContent == nil {
		// path resolved to a directory, treat as absent
		return "", model.ErrNotFound
	}

	content, err := fileContent.GetContent()

	if err != nil {
		return "", model.ErrFetch
	}

	return content, nil
}

// HandleRequestErrors manage errors including github rate limit errors at the same location
// If error is a rate limit error, this function will update the local rate limiter to consume all available requests
// this can help us to keep the local rate limiter up to date
func (s githubService) HandleRequestErrors(err error) error {
	var rateLimitErr *github.RateLimitError

	if errors.As(err, &rateLimitErr) {
		// drain the local limiter so the next calls fail fast until the quota resets
		s.githubRateLimiter.AllowN(time.Now(), s.githubRateLimiter.Burst())

		log.Warning("the Github rate limit has been reached. Use a token or wait until the limit reset")
		return model.ErrRateLimitReached
	}

	log.WithError(err).Error("error catched when fetching data from github")
	return model.ErrFetch
}
