package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/drinkph/portal-go/config"
	"github.com/drinkph/portal-go/models"
	"github.com/drinkph/portal-go/repositories"
	"github.com/drinkph/portal-go/types"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrSessionExpired     = errors.New("session expired")
)

type AuthService struct {
	repos *repositories.Repos
}

func NewAuthService(repos *repositories.Repos) *AuthService {
	return &AuthService{repos: repos}
}

// Login checks the password, opens a session row, and returns a signed
// bearer token carrying the session id.
func (s *AuthService) Login(email, password string) (*models.User, string, error) {
	user, err := s.repos.User.FindByEmail(email)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	now := time.Now()
	session := &models.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Role:      user.Role,
		CreatedAt: now,
		ExpiresAt: now.Add(config.SessionTTL),
	}
	if err := s.repos.Session.Create(session); err != nil {
		return nil, "", fmt.Errorf("create session: %w", err)
	}

	token, err := generateToken(session, user)
	if err != nil {
		return nil, "", fmt.Errorf("sign token: %w", err)
	}
	return user, token, nil
}

// RegisterClient creates a client account with a bcrypt-hashed password.
func (s *AuthService) RegisterClient(email, password, companyName string) (*models.User, error) {
	if _, err := s.repos.User.FindByEmail(email); err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		CompanyName:  companyName,
		Role:         models.RoleClient,
	}
	if err := s.repos.User.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate resolves a token into an explicit auth context. The session
// row is re-checked so a revoked or expired session fails even while the
// token signature is still valid.
func (s *AuthService) Authenticate(tokenStr string) (*types.AuthContext, error) {
	claims, err := ParseToken(tokenStr)
	if err != nil {
		return nil, err
	}

	session, err := s.repos.Session.FindByID(claims.SessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	if session.Expired(time.Now()) {
		_ = s.repos.Session.Delete(session.ID)
		return nil, ErrSessionExpired
	}

	user := session.User
	return &types.AuthContext{
		User:            &user,
		Session:         session,
		IsAuthenticated: true,
	}, nil
}

// Logout revokes the session row.
func (s *AuthService) Logout(sessionID string) error {
	return s.repos.Session.Delete(sessionID)
}

// PurgeExpiredSessions removes stale session rows and reports the count.
func (s *AuthService) PurgeExpiredSessions() (int64, error) {
	return s.repos.Session.DeleteExpired()
}

func generateToken(session *models.Session, user *models.User) (string, error) {
	claims := &types.Claims{
		SessionID: session.ID,
		UserID:    user.ID,
		Role:      string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(session.CreatedAt),
			Issuer:    config.TokenIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.TokenSecret))
}

func ParseToken(tokenStr string) (*types.Claims, error) {
	claims := &types.Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(config.TokenSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
