package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/printshop/printshop-api/config"
	"github.com/printshop/printshop-api/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Auth0UserInfo represents the user information returned from Auth0's /userinfo endpoint
type Auth0UserInfo struct {
	Sub      string `json:"sub"` // Auth0 user ID
	Email    string `json:"email"`
	Name     string `json:"name"`
	Nickname string `json:"nickname"`
}

// Auth0Service handles interactions with Auth0 API
type Auth0Service struct {
	domain     string
	httpClient *http.Client
}

// NewAuth0Service creates a new Auth0 service instance
func NewAuth0Service(cfg *config.Config) *Auth0Service {
	return &Auth0Service{
		domain: cfg.Auth0Domain,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// GetUserInfo fetches user information from Auth0's /userinfo endpoint
// accessToken is the JWT access token from the Authorization header
func (s *Auth0Service) GetUserInfo(ctx context.Context, accessToken string) (*Auth0UserInfo, error) {
	// A domain with a scheme is used as-is (tests point it at httptest)
	url := s.domain + "/userinfo"
	if !strings.HasPrefix(s.domain, "http://") && !strings.HasPrefix(s.domain, "https://") {
		url = "https://" + url
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Add("Authorization", "Bearer "+accessToken)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call userinfo endpoint: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			zap.L().Warn("Failed to close userinfo response", zap.Error(closeErr))
		}
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("userinfo endpoint returned status %d: %s", resp.StatusCode, string(body))
	}

	var userInfo Auth0UserInfo
	if err := json.NewDecoder(resp.Body).Decode(&userInfo); err != nil {
		return nil, fmt.Errorf("failed to decode userinfo response: %w", err)
	}

	return &userInfo, nil
}

// ErrUserExists indicates a staff record already exists for the Auth0 subject.
var ErrUserExists = errors.New("user already exists")

// RegisterUser creates the staff record for an Auth0 identity. The username
// falls back to the part of the email before '@' when Auth0 has no nickname.
func RegisterUser(db *gorm.DB, info *Auth0UserInfo, role models.UserRole) (*models.User, error) {
	var existing models.User
	err := db.Where("auth0_id = ?", info.Sub).First(&existing).Error
	if err == nil {
		return nil, ErrUserExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	username := info.Nickname
	if username == "" {
		username, _, _ = strings.Cut(info.Email, "@")
	}
	if role == "" {
		role = models.RoleDesigner
	}

	user := models.User{
		Auth0ID:  info.Sub,
		Username: username,
		FullName: info.Name,
		Email:    info.Email,
		Role:     role,
		IsActive: true,
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}
