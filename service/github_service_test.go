package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/defamed-sol/github-analyzer-bot/config"
	"github.com/defamed-sol/github-analyzer-bot/model"
	"github.com/google/go-github/v66/github"
	githubMock "github.com/migueleliasweb/go-github-mock/src/mock"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func newTestGithubService(rateLimit int, options ...githubMock.MockBackendOption) GithubService {
	mockedHTTPClient := githubMock.NewMockedHTTPClient(options...)
	mockedRateLimiter := rate.NewLimiter(rate.Every(time.Hour), rateLimit)
	mockedGithubClient := github.NewClient(mockedHTTPClient)

	return NewGithubService(*config.GetDefault(), mockedGithubClient, mockedRateLimiter)
}

// TestGetUser will test function GetUser
func TestGetUser(t *testing.T) {
	createdAt := time.Date(2020, 1, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		rateLimit     int
		mockResponse  *github.User
		mockNotFound  bool
		expectedUser  model.UserProfile
		expectedError error
	}{
		{
			name:      "User fetched and mapped",
			rateLimit: 60,
			mockResponse: &github.User{
				Login:           github.String("octocat"),
				Name:            github.String("The Octocat"),
				CreatedAt:       &github.Timestamp{Time: createdAt},
				Bio:             github.String("I am a cat"),
				Blog:            github.String("https://octo.example"),
				TwitterUsername: github.String("octocat"),
				HTMLURL:         github.String("https://github.com/octocat"),
				PublicRepos:     github.Int(8),
				Followers:       github.Int(100),
			},
			expectedUser: model.UserProfile{
				Login:           "octocat",
				Name:            "The Octocat",
				CreatedAt:       createdAt,
				Bio:             "I am a cat",
				Blog:            "https://octo.example",
				TwitterUsername: "octocat",
				ProfileURL:      "https://github.com/octocat",
				PublicRepos:     8,
				Followers:       100,
			},
		},
		{
			name:          "Unknown user returns the dedicated error",
			rateLimit:     60,
			mockNotFound:  true,
			expectedError: model.ErrUserNotFound,
		},
		{
			name:          "Exhausted rate limiter fails before calling github",
			rateLimit:     0,
			expectedError: model.ErrRateLimitReached,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var handler http.HandlerFunc

			if tt.mockNotFound {
				handler = func(w http.ResponseWriter, _ *http.Request) {
					githubMock.WriteError(w, http.StatusNotFound, "Not Found")
				}
			} else {
				handler = func(w http.ResponseWriter, _ *http.Request) {
					_, err := w.Write(githubMock.MustMarshal(tt.mockResponse))

					if err != nil {
						t.Error("unable to configure mock http client")
					}
				}
			}

			svc := newTestGithubService(tt.rateLimit, githubMock.WithRequestMatchHandler(githubMock.GetUsersByUsername, handler))

			user, err := svc.GetUser(context.Background(), "octocat")

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedUser, user)
			}
		})
	}
}

// TestListRepositories will test function ListRepositories
func TestListRepositories(t *testing.T) {
	t.Run("Two pages are concatenated in listing order", func(t *testing.T) {
		svc := newTestGithubService(60, githubMock.WithRequestMatchPages(
			githubMock.GetUsersReposByUsername,
			[]github.Repository{
				{
					Name:            github.String("repo1"),
					Owner:           &github.User{Login: github.String("octocat")},
					Language:        github.String("Go"),
					Description:     github.String("first"),
					Topics:          []string{"cli"},
					StargazersCount: github.Int(12),
					ForksCount:      github.Int(3),
				},
			},
			[]github.Repository{
				{
					Name:  github.String("repo2"),
					Owner: &github.User{Login: github.String("octocat")},
				},
			},
		))

		repositories, err := svc.ListRepositories(context.Background(), "octocat")

		assert.NoError(t, err)
		assert.Equal(t, []model.Repository{
			{
				Name:        "repo1",
				Owner:       "octocat",
				Language:    github.String("Go"),
				Description: "first",
				Topics:      []string{"cli"},
				Stars:       12,
				Forks:       3,
			},
			{
				Name:  "repo2",
				Owner: "octocat",
			},
		}, repositories)
	})

	t.Run("Exhausted rate limiter fails before calling github", func(t *testing.T) {
		svc := newTestGithubService(0)

		_, err := svc.ListRepositories(context.Background(), "octocat")

		assert.ErrorIs(t, err, model.ErrRateLimitReached)
	})
}

// TestGetReadme will test function GetReadme
func TestGetReadme(t *testing.T) {
	t.Run("Readme content is decoded", func(t *testing.T) {
		svc := newTestGithubService(60, githubMock.WithRequestMatchHandler(
			githubMock.GetReposReadmeByOwnerByRepo,
			http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, err := w.Write(githubMock.MustMarshal(github.RepositoryContent{
					Content: github.String("# hello\ninstallation guide"),
				}))

				if err != nil {
					t.Error("unable to configure mock http client")
				}
			}),
		))

		readme, err := svc.GetReadme(context.Background(), "octocat", "repo1")

		assert.NoError(t, err)
		assert.Equal(t, "# hello\ninstallation guide", readme)
	})

	t.Run("Missing readme returns the absence marker", func(t *testing.T) {
		svc := newTestGithubService(60, githubMock.WithRequestMatchHandler(
			githubMock.GetReposReadmeByOwnerByRepo,
			http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				githubMock.WriteError(w, http.StatusNotFound, "Not Found")
			}),
		))

		_, err := svc.GetReadme(context.Background(), "octocat", "repo1")

		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}

// TestListCommits will test function ListCommits
func TestListCommits(t *testing.T) {
	firstDate := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	secondDate := time.Date(2024, 3, 2, 11, 0, 0, 0, time.UTC)

	svc := newTestGithubService(60, githubMock.WithRequestMatchHandler(
		githubMock.GetReposCommitsByOwnerByRepo,
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, err := w.Write(githubMock.MustMarshal([]github.RepositoryCommit{
				{
					Commit: &github.Commit{
						Message:   github.String("first commit"),
						Committer: &github.CommitAuthor{Date: &github.Timestamp{Time: firstDate}},
					},
				},
				{
					Commit: &github.Commit{
						Message:   github.String("second commit"),
						Committer: &github.CommitAuthor{Date: &github.Timestamp{Time: secondDate}},
					},
				},
			}))

			if err != nil {
				t.Error("unable to configure mock http client")
			}
		}),
	))

	commits, err := svc.ListCommits(context.Background(), "octocat", "repo1")

	assert.NoError(t, err)
	assert.Equal(t, []model.Commit{
		{Date: firstDate, Message: "first commit"},
		{Date: secondDate, Message: "second commit"},
	}, commits)
}

// TestListUserEvents will test function ListUserEvents
func TestListUserEvents(t *testing.T) {
	createdAt := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	svc := newTestGithubService(60, githubMock.WithRequestMatchHandler(
		githubMock.GetUsersEventsPublicByUsername,
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, err := w.Write(githubMock.MustMarshal([]github.Event{
				{Type: github.String("PullRequestEvent"), CreatedAt: &github.Timestamp{Time: createdAt}},
				{Type: github.String("PushEvent"), CreatedAt: &github.Timestamp{Time: createdAt}},
			}))

			if err != nil {
				t.Error("unable to configure mock http client")
			}
		}),
	))

	events, err := svc.ListUserEvents(context.Background(), "octocat")

	assert.NoError(t, err)
	assert.Equal(t, []model.Event{
		{Type: "PullRequestEvent", CreatedAt: createdAt},
		{Type: "PushEvent", CreatedAt: createdAt},
	}, events)
}

// TestGetFileContent will test function GetFileContent
func TestGetFileContent(t *testing.T) {
	t.Run("Existing file is decoded", func(t *testing.T) {
		svc := newTestGithubService(60, githubMock.WithRequestMatchHandler(
			githubMock.GetReposContentsByOwnerByRepoByPath,
			http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, err := w.Write(githubMock.MustMarshal(github.RepositoryContent{
					Type:    github.String("file"),
					Content: github.String("tensorflow==2.15"),
				}))

				if err != nil {
					t.Error("unable to configure mock http client")
				}
			}),
		))

		content, err := svc.GetFileContent(context.Background(), "octocat", "repo1", "requirements.txt")

		assert.NoError(t, err)
		assert.Equal(t, "tensorflow==2.15", content)
	})

	t.Run("Missing file returns the absence marker", func(t *testing.T) {
		svc := newTestGithubService(60, githubMock.WithRequestMatchHandler(
			githubMock.GetReposContentsByOwnerByRepoByPath,
			http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				githubMock.WriteError(w, http.StatusNotFound, "Not Found")
			}),
		))

		_, err := svc.GetFileContent(context.Background(), "octocat", "repo1", "Cargo.toml")

		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}
