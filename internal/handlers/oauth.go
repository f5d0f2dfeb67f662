package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

var ErrInvalidOAuthToken = errors.New("invalid oauth token")

// GoogleUserInfo represents user data from Google OAuth
type GoogleUserInfo struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified string `json:"email_verified"`
	Picture       string `json:"picture"`
	Name          string `json:"name"`
}

// GitHubUserInfo represents user data from the GitHub API
type GitHubUserInfo struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
}

type GoogleVerifier interface {
	VerifyGoogle(ctx context.Context, idToken string) (*GoogleUserInfo, error)
}

type GitHubVerifier interface {
	VerifyGitHub(ctx context.Context, accessToken string) (*GitHubUserInfo, error)
}

// OAuthClient verifies provider tokens against the providers' HTTP APIs.
type OAuthClient struct {
	HTTP          *http.Client
	GoogleBaseURL string
	GitHubBaseURL string
}

func NewOAuthClient() *OAuthClient {
	return &OAuthClient{
		HTTP:          &http.Client{Timeout: 10 * time.Second},
		GoogleBaseURL: "https://oauth2.googleapis.com",
		GitHubBaseURL: "https://api.github.com",
	}
}

// VerifyGoogle verifies the Google ID token and returns user info
func (o *OAuthClient) VerifyGoogle(ctx context.Context, idToken string) (*GoogleUserInfo, error) {
	endpoint := o.GoogleBaseURL + "/tokeninfo?id_token=" + url.QueryEscape(idToken)

	var user GoogleUserInfo
	if err := o.getJSON(ctx, endpoint, "", &user); err != nil {
		return nil, err
	}
	if user.EmailVerified != "true" {
		return nil, fmt.Errorf("%w: email not verified", ErrInvalidOAuthToken)
	}
	return &user, nil
}

// VerifyGitHub resolves a GitHub access token to the user it belongs to. The
// primary verified email is looked up when the profile hides it.
func (o *OAuthClient) VerifyGitHub(ctx context.Context, accessToken string) (*GitHubUserInfo, error) {
	var user GitHubUserInfo
	if err := o.getJSON(ctx, o.GitHubBaseURL+"/user", accessToken, &user); err != nil {
		return nil, err
	}
	if user.ID == 0 {
		return nil, ErrInvalidOAuthToken
	}
	if user.Email != "" {
		return &user, nil
	}

	var emails []struct {
		Email    string `json:"email"`
		Primary  bool   `json:"primary"`
		Verified bool   `json:"verified"`
	}
	if err := o.getJSON(ctx, o.GitHubBaseURL+"/user/emails", accessToken, &emails); err != nil {
		return nil, err
	}
	for _, e := range emails {
		if e.Primary && e.Verified {
			user.Email = e.Email
			return &user, nil
		}
	}
	return nil, fmt.Errorf("%w: no verified email", ErrInvalidOAuthToken)
}

func (o *OAuthClient) getJSON(ctx context.Context, endpoint, bearer string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := o.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("failed to verify token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: provider returned %d", ErrInvalidOAuthToken, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode user info: %w", err)
	}
	return nil
}
