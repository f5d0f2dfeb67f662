package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/emilythestrangee/devflow/backend/internal/database"
	"github.com/emilythestrangee/devflow/backend/internal/models"
)

// OAuthProfile is the identity an OAuth provider vouched for.
type OAuthProfile struct {
	Provider string
	Subject  string
	Email    string
	Name     string
	Username string
	Image    string
}

// CreateUser inserts a new user.
func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	err := s.db.WithContext(ctx).Create(user).Error
	if database.IsUniqueViolation(err) {
		return ErrUserExists
	}
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// UserExists reports whether username or email is taken.
func (s *Store) UserExists(ctx context.Context, username, email string) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("check user: %w", err)
	}
	return n > 0, nil
}

func (s *Store) UserByID(ctx context.Context, id int) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Take(&user, id).Error; err != nil {
		return nil, notFound(err, fmt.Sprintf("user %d", id))
	}
	return &user, nil
}

// UserByEmail returns the credentials user registered with email.
func (s *Store) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).
		Where("email = ? AND auth_provider = ?", email, models.ProviderCredentials).
		Take(&user).Error
	if err != nil {
		return nil, notFound(err, "user")
	}
	return &user, nil
}

// FindOrCreateOAuthUser returns the user the provider subject belongs to,
// creating one with a unique username on first sign-in. An existing account
// with the same email is linked only when it signed up with the same
// provider; any other account yields ErrAccountNotLinked.
func (s *Store) FindOrCreateOAuthUser(ctx context.Context, p OAuthProfile) (*models.User, error) {
	column, err := providerColumn(p.Provider)
	if err != nil {
		return nil, err
	}
	if p.Subject == "" || p.Email == "" {
		return nil, fmt.Errorf("%w: oauth subject and email are required", ErrInvalidInput)
	}

	for attempt := 1; ; attempt++ {
		user, err := s.findOAuthUser(ctx, column, p)
		if !errors.Is(err, ErrNotFound) {
			return user, err
		}

		user, err = s.createOAuthUser(ctx, p)
		if errors.Is(err, ErrUserExists) && attempt < 2 {
			// A concurrent first sign-in took the subject, email or username.
			continue
		}
		return user, err
	}
}

func providerColumn(provider string) (string, error) {
	switch provider {
	case models.ProviderGoogle:
		return "google_id", nil
	case models.ProviderGitHub:
		return "github_id", nil
	default:
		return "", fmt.Errorf("%w: provider %q", ErrInvalidInput, provider)
	}
}

func (s *Store) findOAuthUser(ctx context.Context, column string, p OAuthProfile) (*models.User, error) {
	db := s.db.WithContext(ctx)

	var user models.User
	err := db.Where(column+" = ?", p.Subject).Take(&user).Error
	if err == nil {
		if user.Image == "" && p.Image != "" {
			if err := db.Model(&user).Update("image", p.Image).Error; err != nil {
				return nil, fmt.Errorf("update oauth user: %w", err)
			}
		}
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("find oauth user: %w", err)
	}

	err = db.Where("email = ?", p.Email).Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find oauth user: %w", err)
	}
	if user.AuthProvider != p.Provider || providerID(user, p.Provider) != "" {
		return nil, ErrAccountNotLinked
	}

	updates := map[string]any{column: p.Subject}
	if user.Image == "" && p.Image != "" {
		updates["image"] = p.Image
	}
	if err := db.Model(&user).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("link oauth user: %w", err)
	}
	return &user, nil
}

func (s *Store) createOAuthUser(ctx context.Context, p OAuthProfile) (*models.User, error) {
	base := p.Username
	if base == "" {
		base = usernameFromEmail(p.Email)
	}
	username, err := s.uniqueUsername(ctx, base)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Name:         p.Name,
		Username:     username,
		Email:        p.Email,
		Image:        p.Image,
		AuthProvider: p.Provider,
	}
	setProviderID(&user, p)
	if err := s.CreateUser(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func setProviderID(u *models.User, p OAuthProfile) {
	switch p.Provider {
	case models.ProviderGoogle:
		u.GoogleID = p.Subject
	case models.ProviderGitHub:
		u.GitHubID = p.Subject
	}
}

func providerID(u models.User, provider string) string {
	if provider == models.ProviderGitHub {
		return u.GitHubID
	}
	return u.GoogleID
}

func usernameFromEmail(email string) string {
	if i := strings.IndexByte(email, '@'); i > 0 {
		return email[:i]
	}
	return email
}

func (s *Store) uniqueUsername(ctx context.Context, base string) (string, error) {
	username := base
	for counter := 1; ; counter++ {
		var n int64
		err := s.db.WithContext(ctx).Model(&models.User{}).Where("username = ?", username).Count(&n).Error
		if err != nil {
			return "", fmt.Errorf("check username: %w", err)
		}
		if n == 0 {
			return username, nil
		}
		username = fmt.Sprintf("%s%d", base, counter)
	}
}
