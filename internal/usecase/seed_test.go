package usecase

import (
	"context"
	"testing"
	"time"

	"eduportal-backend/internal/domain"
	"eduportal-backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSeedInitialData(t *testing.T) {
	store := testutil.NewTestStore(t)
	repos := store.Repositories()
	ctx := context.Background()
	users := NewUserUsecase(repos.Users)
	uc := NewSeedUsecase(users, repos.Courses, repos.News, zap.NewNop())

	require.NoError(t, uc.SeedInitialData(ctx))

	courses, err := repos.Courses.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.Equal(t, "Gestión Municipal de Residuos", courses[0].Title)
	assert.Len(t, courses[1].Lessons, 2)
	assert.True(t, courses[1].Lessons[1].HasAssignment)

	all, err := users.GetAllUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	auth := NewAuthUsecase(repos.Users, SessionConfig{Secret: []byte("s"), TTL: time.Hour})
	res, err := auth.Login(ctx, "alumno@test.com", "123456")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleStudent, res.User.Role)

	news, err := repos.News.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, news, 1)
	assert.True(t, news[0].Important)

	// second run is a no-op
	require.NoError(t, uc.SeedInitialData(ctx))
	courses, err = repos.Courses.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, courses, 2)
}

func TestSeedInitialData_KeepsExistingAccounts(t *testing.T) {
	store := testutil.NewTestStore(t)
	repos := store.Repositories()
	ctx := context.Background()
	users := NewUserUsecase(repos.Users)
	require.NoError(t, users.CreateUser(ctx, &domain.User{Email: "alumno@test.com", Name: "Ya existe", Role: domain.RoleStudent}, "pw"))

	uc := NewSeedUsecase(users, repos.Courses, repos.News, nil)
	require.NoError(t, uc.SeedInitialData(ctx))

	u, err := repos.Users.GetByEmail(ctx, "alumno@test.com")
	require.NoError(t, err)
	assert.Equal(t, "Ya existe", u.Name)
}
