package model

import "time"

// UserProfile is an immutable snapshot of a GitHub user, fetched once per analysis
type UserProfile struct {
	Login           string    `json:"login"`
	Name            string    `json:"name,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	Bio             string    `json:"bio,omitempty"`
	Blog            string    `json:"blog,omitempty"`
	TwitterUsername string    `json:"twitterUsername,omitempty"`
	AvatarURL       string    `json:"avatarUrl,omitempty"`
	ProfileURL      string    `json:"profileUrl"`
	PublicRepos     int       `json:"publicRepos"`
	Followers       int       `json:"followers"`
}

// HasBioOrBlog reports whether the profile carries a non-empty bio or blog URL
// used by the scoring engine for the profile completeness category
func (u UserProfile) HasBioOrBlog() bool {
	return u.Bio != "" || u.Blog != ""
}
