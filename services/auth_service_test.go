package services

import (
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/drinkph/portal-go/config"
	"github.com/drinkph/portal-go/models"
	"github.com/drinkph/portal-go/repositories"
	"github.com/drinkph/portal-go/repositories/mock_repositories"
)

// --------------------- Setup ---------------------
func setupAuthMocks(t *testing.T) (*AuthService,
	*mock_repositories.MockUserRepo,
	*mock_repositories.MockSessionRepo) {

	ctrl := gomock.NewController(t)
	t.Cleanup(func() { ctrl.Finish() })

	config.TokenSecret = "test-secret"
	config.TokenIssuer = "portal-test"
	config.SessionTTL = time.Hour

	mockUser := mock_repositories.NewMockUserRepo(ctrl)
	mockSession := mock_repositories.NewMockSessionRepo(ctrl)

	repos := &repositories.Repos{
		User:    mockUser,
		Session: mockSession,
	}
	svc := NewAuthService(repos)
	return svc, mockUser, mockSession
}

func hashedUser(t *testing.T, password string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	u := &models.User{
		Email:        "client@acme.com",
		PasswordHash: string(hash),
		CompanyName:  "Acme Corp",
		Role:         models.RoleClient,
	}
	u.ID = 7
	return u
}

// --------------------- Login ---------------------
func TestLoginSuccess(t *testing.T) {
	svc, mockUser, mockSession := setupAuthMocks(t)

	user := hashedUser(t, "secret123")
	mockUser.EXPECT().FindByEmail("client@acme.com").Return(user, nil)

	var createdSession *models.Session
	mockSession.EXPECT().Create(gomock.Any()).DoAndReturn(func(s *models.Session) error {
		createdSession = s
		return nil
	})

	got, token, err := svc.Login("client@acme.com", "secret123")
	assert.NoError(t, err)
	assert.Equal(t, user, got)
	assert.NotEmpty(t, token)
	assert.NotNil(t, createdSession)
	assert.Equal(t, uint(7), createdSession.UserID)
	assert.Equal(t, models.RoleClient, createdSession.Role)

	claims, err := ParseToken(token)
	assert.NoError(t, err)
	assert.Equal(t, createdSession.ID, claims.SessionID)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "client", claims.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, mockUser, _ := setupAuthMocks(t)

	mockUser.EXPECT().FindByEmail("client@acme.com").Return(hashedUser(t, "secret123"), nil)

	_, _, err := svc.Login("client@acme.com", "wrong")
	assert.Equal(t, ErrInvalidCredentials, err)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, mockUser, _ := setupAuthMocks(t)

	mockUser.EXPECT().FindByEmail("nobody@acme.com").Return(nil, gorm.ErrRecordNotFound)

	_, _, err := svc.Login("nobody@acme.com", "secret123")
	assert.Equal(t, ErrInvalidCredentials, err)
}

// --------------------- Register ---------------------
func TestRegisterClientSuccess(t *testing.T) {
	svc, mockUser, _ := setupAuthMocks(t)

	mockUser.EXPECT().FindByEmail("new@acme.com").Return(nil, gorm.ErrRecordNotFound)
	mockUser.EXPECT().Create(gomock.Any()).DoAndReturn(func(u *models.User) error {
		assert.Equal(t, models.RoleClient, u.Role)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret123")))
		return nil
	})

	user, err := svc.RegisterClient("new@acme.com", "secret123", "Acme Corp")
	assert.NoError(t, err)
	assert.Equal(t, "Acme Corp", user.CompanyName)
}

func TestRegisterClientEmailTaken(t *testing.T) {
	svc, mockUser, _ := setupAuthMocks(t)

	mockUser.EXPECT().FindByEmail("client@acme.com").Return(hashedUser(t, "x"), nil)

	_, err := svc.RegisterClient("client@acme.com", "secret123", "Acme Corp")
	assert.Equal(t, ErrEmailTaken, err)
}

// --------------------- Authenticate ---------------------
func TestAuthenticateRoundTrip(t *testing.T) {
	svc, mockUser, mockSession := setupAuthMocks(t)

	user := hashedUser(t, "secret123")
	mockUser.EXPECT().FindByEmail("client@acme.com").Return(user, nil)

	var createdSession *models.Session
	mockSession.EXPECT().Create(gomock.Any()).DoAndReturn(func(s *models.Session) error {
		createdSession = s
		return nil
	})

	_, token, err := svc.Login("client@acme.com", "secret123")
	assert.NoError(t, err)

	stored := *createdSession
	stored.User = *user
	mockSession.EXPECT().FindByID(createdSession.ID).Return(&stored, nil)

	auth, err := svc.Authenticate(token)
	assert.NoError(t, err)
	assert.True(t, auth.IsAuthenticated)
	assert.Equal(t, uint(7), auth.User.ID)
	assert.Equal(t, createdSession.ID, auth.Session.ID)
}

func TestAuthenticateExpiredSession(t *testing.T) {
	svc, mockUser, mockSession := setupAuthMocks(t)

	user := hashedUser(t, "secret123")
	mockUser.EXPECT().FindByEmail("client@acme.com").Return(user, nil)

	var createdSession *models.Session
	mockSession.EXPECT().Create(gomock.Any()).DoAndReturn(func(s *models.Session) error {
		createdSession = s
		return nil
	})

	_, token, err := svc.Login("client@acme.com", "secret123")
	assert.NoError(t, err)

	// the row was cut short server-side while the token is still within its
	// signed lifetime
	stored := *createdSession
	stored.ExpiresAt = time.Now().Add(-time.Minute)
	mockSession.EXPECT().FindByID(createdSession.ID).Return(&stored, nil)
	mockSession.EXPECT().Delete(createdSession.ID).Return(nil)

	_, err = svc.Authenticate(token)
	assert.Equal(t, ErrSessionExpired, err)
}

func TestAuthenticateRevokedSession(t *testing.T) {
	svc, mockUser, mockSession := setupAuthMocks(t)

	user := hashedUser(t, "secret123")
	mockUser.EXPECT().FindByEmail("client@acme.com").Return(user, nil)

	var createdSession *models.Session
	mockSession.EXPECT().Create(gomock.Any()).DoAndReturn(func(s *models.Session) error {
		createdSession = s
		return nil
	})

	_, token, err := svc.Login("client@acme.com", "secret123")
	assert.NoError(t, err)

	// the row was deleted, so the still-valid token no longer authenticates
	mockSession.EXPECT().FindByID(createdSession.ID).Return(nil, gorm.ErrRecordNotFound)

	_, err = svc.Authenticate(token)
	assert.Error(t, err)
}

func TestAuthenticateGarbageToken(t *testing.T) {
	svc, _, _ := setupAuthMocks(t)

	_, err := svc.Authenticate("not-a-token")
	assert.Error(t, err)
}

// --------------------- Logout / purge ---------------------
func TestLogout(t *testing.T) {
	svc, _, mockSession := setupAuthMocks(t)

	mockSession.EXPECT().Delete("sid-1").Return(nil)
	assert.NoError(t, svc.Logout("sid-1"))
}

func TestPurgeExpiredSessions(t *testing.T) {
	svc, _, mockSession := setupAuthMocks(t)

	mockSession.EXPECT().DeleteExpired().Return(int64(3), nil)

	count, err := svc.PurgeExpiredSessions()
	assert.NoError(t, err)
	assert.Equal(t, int64(3), count)

	mockSession.EXPECT().DeleteExpired().Return(int64(0), errors.New("db down"))
	_, err = svc.PurgeExpiredSessions()
	assert.Error(t, err)
}
