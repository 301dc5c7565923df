package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abdullah149081/summer-camp-server/internal/models"
	"github.com/Abdullah149081/summer-camp-server/internal/repository"
	appErrors "github.com/Abdullah149081/summer-camp-server/pkg/errors"
)

type mockUserRepo struct {
	byEmail      map[string]*models.User
	byID         map[string]*models.User
	top          []models.User
	topCalls     int
	createCalls  int
	updatedRoles map[string]models.UserRole
}

func (m *mockUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if user, ok := m.byEmail[email]; ok {
		return user, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockUserRepo) FindByID(_ context.Context, id string) (*models.User, error) {
	if user, ok := m.byID[id]; ok {
		return user, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockUserRepo) List(_ context.Context) ([]models.User, error) {
	var users []models.User
	for _, u := range m.byEmail {
		users = append(users, *u)
	}
	return users, nil
}

func (m *mockUserRepo) ListInstructors(_ context.Context) ([]models.User, error) {
	var users []models.User
	for _, u := range m.byEmail {
		if u.Role == models.RoleInstructor {
			users = append(users, *u)
		}
	}
	return users, nil
}

func (m *mockUserRepo) TopInstructors(_ context.Context, limit int) ([]models.User, error) {
	m.topCalls++
	if len(m.top) > limit {
		return m.top[:limit], nil
	}
	return m.top, nil
}

func (m *mockUserRepo) Create(_ context.Context, user *models.User) error {
	m.createCalls++
	user.ID = "user-created"
	if m.byEmail == nil {
		m.byEmail = make(map[string]*models.User)
	}
	m.byEmail[user.Email] = user
	return nil
}

func (m *mockUserRepo) UpdateRole(_ context.Context, id string, role models.UserRole) error {
	user, ok := m.byID[id]
	if !ok {
		return sql.ErrNoRows
	}
	user.Role = role
	if m.updatedRoles == nil {
		m.updatedRoles = make(map[string]models.UserRole)
	}
	m.updatedRoles[id] = role
	return nil
}

type stubListingCache struct {
	store   map[string][]byte
	deleted []string
}

func (s *stubListingCache) Get(_ context.Context, key string, dest interface{}) error {
	payload, ok := s.store[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(payload, dest)
}

func (s *stubListingCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	if s.store == nil {
		s.store = make(map[string][]byte)
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.store[key] = payload
	return nil
}

func (s *stubListingCache) Delete(_ context.Context, keys ...string) {
	s.deleted = append(s.deleted, keys...)
	for _, key := range keys {
		delete(s.store, key)
	}
}

func TestUserServiceCreateIsIdempotent(t *testing.T) {
	repo := &mockUserRepo{byEmail: map[string]*models.User{}}
	svc := NewUserService(repo, nil, nil, nil, 6, time.Minute)

	req := CreateUserRequest{Email: "student@example.com", Name: "Student"}
	user, created, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, models.RoleNone, user.Role)

	again, created, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, user.ID, again.ID)
	assert.Equal(t, 1, repo.createCalls)
}

func TestUserServiceCreateRejectsBadEmail(t *testing.T) {
	svc := NewUserService(&mockUserRepo{}, nil, nil, nil, 6, time.Minute)

	_, _, err := svc.Create(context.Background(), CreateUserRequest{Email: "not-an-email", Name: "X"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestUserServiceRoleFlagsUnknownEmail(t *testing.T) {
	svc := NewUserService(&mockUserRepo{}, nil, nil, nil, 6, time.Minute)

	flags, err := svc.RoleFlags(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.False(t, flags.Admin)
	assert.False(t, flags.Instructor)
}

func TestUserServiceRoleFlagsAdmin(t *testing.T) {
	repo := &mockUserRepo{byEmail: map[string]*models.User{
		"admin@example.com": {ID: "user-1", Email: "admin@example.com", Role: models.RoleAdmin},
	}}
	svc := NewUserService(repo, nil, nil, nil, 6, time.Minute)

	flags, err := svc.RoleFlags(context.Background(), "admin@example.com")
	require.NoError(t, err)
	assert.True(t, flags.Admin)
	assert.False(t, flags.Instructor)
}

func TestUserServicePromoteInvalidatesTopInstructors(t *testing.T) {
	repo := &mockUserRepo{byID: map[string]*models.User{
		"user-1": {ID: "user-1", Email: "coach@example.com", Role: models.RoleNone},
	}}
	cache := &stubListingCache{store: map[string][]byte{repository.CacheKeyTopInstructors: []byte("[]")}}
	svc := NewUserService(repo, cache, nil, nil, 6, time.Minute)

	user, err := svc.Promote(context.Background(), "user-1", models.RoleInstructor)
	require.NoError(t, err)
	assert.Equal(t, models.RoleInstructor, user.Role)
	assert.Contains(t, cache.deleted, repository.CacheKeyTopInstructors)
}

func TestUserServicePromoteRejectsUnknownRole(t *testing.T) {
	svc := NewUserService(&mockUserRepo{}, nil, nil, nil, 6, time.Minute)

	_, err := svc.Promote(context.Background(), "user-1", models.RoleNone)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestUserServicePromoteMissingUser(t *testing.T) {
	svc := NewUserService(&mockUserRepo{}, nil, nil, nil, 6, time.Minute)

	_, err := svc.Promote(context.Background(), "ghost", models.RoleAdmin)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestUserServiceTopInstructorsCaching(t *testing.T) {
	repo := &mockUserRepo{top: []models.User{{ID: "user-1", Email: "coach@example.com", Role: models.RoleInstructor, TotalStudents: 30}}}
	cache := &stubListingCache{}
	svc := NewUserService(repo, cache, nil, nil, 6, time.Minute)

	first, err := svc.TopInstructors(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, 1, repo.topCalls)

	second, err := svc.TopInstructors(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.topCalls)
}

func TestUserServiceFindRoleByEmail(t *testing.T) {
	repo := &mockUserRepo{byEmail: map[string]*models.User{
		"coach@example.com": {ID: "user-1", Email: "coach@example.com", Role: models.RoleInstructor},
	}}
	svc := NewUserService(repo, nil, nil, nil, 6, time.Minute)

	role, err := svc.FindRoleByEmail(context.Background(), "coach@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleInstructor, role)

	role, err = svc.FindRoleByEmail(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleNone, role)
}
