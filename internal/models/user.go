package models

import "time"

// Auth providers a User can sign in with.
const (
	ProviderCredentials = "credentials"
	ProviderGoogle      = "google"
	ProviderGitHub      = "github"
)

type User struct {
	ID         int    `gorm:"primaryKey" json:"id"`
	Name       string `json:"name"`
	Username   string `gorm:"unique;not null" json:"username"`
	Email      string `gorm:"unique;not null" json:"email"`
	Password   string `json:"-"` // bcrypt hash, empty for OAuth users
	Bio        string `json:"bio"`
	Image      string `json:"image"`
	Location   string `json:"location"`
	Reputation int    `gorm:"default:0" json:"reputation"`

	// OAuth fields
	GoogleID     string `gorm:"index" json:"-"`
	GitHubID     string `gorm:"column:github_id;index" json:"-"`
	AuthProvider string `json:"auth_provider"` // "credentials", "google", "github"

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PublicUser is the part of a User embedded in other responses.
type PublicUser struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Image    string `json:"image"`
}

func (u User) Public() PublicUser {
	return PublicUser{ID: u.ID, Name: u.Name, Username: u.Username, Image: u.Image}
}
