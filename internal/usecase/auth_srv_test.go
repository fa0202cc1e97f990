package usecase

import (
	"context"
	"testing"

	"cinema-reservation/internal/apperr"
	"cinema-reservation/internal/data/entity"
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/internal/dto/request"
	"cinema-reservation/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type userRepoStub struct {
	repository.UserRepository
	byEmail map[string]*entity.User
	created *entity.User
}

func (s *userRepoStub) Create(ctx context.Context, user *entity.User) error {
	s.created = user
	return nil
}

func (s *userRepoStub) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return s.byEmail[email], nil
}

type sessionRepoStub struct {
	repository.SessionRepository
	created *entity.Session
	revoked string
}

func (s *sessionRepoStub) Create(ctx context.Context, session *entity.Session) error {
	s.created = session
	return nil
}

func (s *sessionRepoStub) Revoke(ctx context.Context, token string) error {
	s.revoked = token
	return nil
}

func newAuthFixture(existing ...*entity.User) (AuthService, *userRepoStub, *sessionRepoStub) {
	users := &userRepoStub{byEmail: make(map[string]*entity.User)}
	for _, u := range existing {
		users.byEmail[u.Email] = u
	}
	sessions := &sessionRepoStub{}

	repo := &repository.Repository{User: users, Session: sessions}
	config := &utils.Config{Session: utils.SessionConfig{ExpiryHours: 24}}

	return NewAuthService(repo, config, zap.NewNop()), users, sessions
}

func activeUser(email, password string) *entity.User {
	hash, _ := utils.HashPassword(password)
	return &entity.User{
		Base:         entity.Base{ID: uuid.New()},
		Username:     "budi",
		Email:        email,
		PasswordHash: hash,
		Role:         entity.RoleCustomer,
		IsActive:     true,
	}
}

func TestRegisterCreatesUserAndSession(t *testing.T) {
	svc, users, sessions := newAuthFixture()

	resp, err := svc.Register(context.Background(), &request.RegisterRequest{
		Username: "budi",
		Email:    "budi@example.com",
		Password: "rahasia123",
	})

	require.NoError(t, err)
	require.NotNil(t, users.created)
	assert.Equal(t, entity.RoleCustomer, users.created.Role)

	// Password tidak pernah disimpan plaintext
	assert.NotEqual(t, "rahasia123", users.created.PasswordHash)
	assert.True(t, utils.CheckPasswordHash("rahasia123", users.created.PasswordHash))

	require.NotNil(t, sessions.created)
	assert.Equal(t, sessions.created.Token.String(), resp.Token)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthFixture(activeUser("budi@example.com", "rahasia123"))

	_, err := svc.Register(context.Background(), &request.RegisterRequest{
		Username: "budi2",
		Email:    "budi@example.com",
		Password: "rahasia123",
	})

	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestLoginSuccess(t *testing.T) {
	user := activeUser("budi@example.com", "rahasia123")
	svc, _, sessions := newAuthFixture(user)

	resp, err := svc.Login(context.Background(), &request.LoginRequest{
		Email:    "budi@example.com",
		Password: "rahasia123",
	})

	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), resp.UserID)
	assert.NotNil(t, sessions.created)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _ := newAuthFixture(activeUser("budi@example.com", "rahasia123"))

	_, err := svc.Login(context.Background(), &request.LoginRequest{
		Email:    "budi@example.com",
		Password: "salah-total",
	})

	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, err := svc.Login(context.Background(), &request.LoginRequest{
		Email:    "tidakada@example.com",
		Password: "rahasia123",
	})

	// Sama dengan password salah supaya tidak bocor email terdaftar
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
}

func TestLogoutRevokesSession(t *testing.T) {
	svc, _, sessions := newAuthFixture()
	token := uuid.NewString()

	require.NoError(t, svc.Logout(context.Background(), token))
	assert.Equal(t, token, sessions.revoked)
}
