package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/devflow/backend/internal/auth"
	"github.com/emilythestrangee/devflow/backend/internal/models"
	"github.com/emilythestrangee/devflow/backend/internal/store"
)

type AuthHandler struct {
	users  UserStore
	tokens *auth.Tokens
	google GoogleVerifier
	github GitHubVerifier
}

func NewAuthHandler(users UserStore, tokens *auth.Tokens, google GoogleVerifier, github GitHubVerifier) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens, google: google, github: github}
}

func userJSON(u *models.User) gin.H {
	return gin.H{
		"id":            u.ID,
		"name":          u.Name,
		"username":      u.Username,
		"email":         u.Email,
		"bio":           u.Bio,
		"image":         u.Image,
		"location":      u.Location,
		"reputation":    u.Reputation,
		"auth_provider": u.AuthProvider,
	}
}

func (h *AuthHandler) respondWithToken(c *gin.Context, status int, message string, user *models.User) {
	tokenString, err := h.tokens.Issue(user.ID, user.Username, user.Email)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(status, gin.H{
		"success": true,
		"message": message,
		"token":   tokenString,
		"user":    userJSON(user),
	})
}

// Register handles credentials sign-up
func (h *AuthHandler) Register(c *gin.Context) {
	var input struct {
		Name     string `json:"name" binding:"required,min=1,max=50"`
		Username string `json:"username" binding:"required,min=3,max=30,alphanum"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6,max=100"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	exists, err := h.users.UserExists(ctx, input.Username, input.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	if exists {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username or email already exists"})
		return
	}

	hashedPassword, err := auth.HashPassword(input.Password)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user := models.User{
		Name:         input.Name,
		Username:     input.Username,
		Email:        input.Email,
		Password:     hashedPassword,
		AuthProvider: models.ProviderCredentials,
	}
	if err := h.users.CreateUser(ctx, &user); err != nil {
		respondError(c, err)
		return
	}

	h.respondWithToken(c, http.StatusCreated, "User registered successfully", &user)
}

// Login handles credentials sign-in
func (h *AuthHandler) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.UserByEmail(c.Request.Context(), input.Email)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	if !auth.CheckPassword(user.Password, input.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	h.respondWithToken(c, http.StatusOK, "Login successful", user)
}

type oauthInput struct {
	Token    string `json:"token" binding:"required"`
	Username string `json:"username"`
}

// GoogleLogin handles Google OAuth sign-in
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	var input oauthInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	googleUser, err := h.google.VerifyGoogle(c.Request.Context(), input.Token)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid Google token"})
		return
	}

	h.oauthSignIn(c, store.OAuthProfile{
		Provider: models.ProviderGoogle,
		Subject:  googleUser.Sub,
		Email:    googleUser.Email,
		Name:     googleUser.Name,
		Username: input.Username,
		Image:    googleUser.Picture,
	})
}

// GitHubLogin handles GitHub OAuth sign-in
func (h *AuthHandler) GitHubLogin(c *gin.Context) {
	var input oauthInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	githubUser, err := h.github.VerifyGitHub(c.Request.Context(), input.Token)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid GitHub token"})
		return
	}

	username := input.Username
	if username == "" {
		username = githubUser.Login
	}
	h.oauthSignIn(c, store.OAuthProfile{
		Provider: models.ProviderGitHub,
		Subject:  strconv.FormatInt(githubUser.ID, 10),
		Email:    githubUser.Email,
		Name:     githubUser.Name,
		Username: username,
		Image:    githubUser.AvatarURL,
	})
}

func (h *AuthHandler) oauthSignIn(c *gin.Context, profile store.OAuthProfile) {
	user, err := h.users.FindOrCreateOAuthUser(c.Request.Context(), profile)
	if err != nil {
		respondError(c, err)
		return
	}
	h.respondWithToken(c, http.StatusOK, "Login successful", user)
}

// GetMe returns the current authenticated user
func (h *AuthHandler) GetMe(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	user, err := h.users.UserByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, userJSON(user))
}
