package usecase

import (
	"context"
	"testing"
	"time"

	"eduportal-backend/internal/domain"
	"eduportal-backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuth(t *testing.T) (domain.AuthUsecase, domain.UserRepository) {
	t.Helper()
	store := testutil.NewTestStore(t)
	users := store.Repositories().Users
	return NewAuthUsecase(users, SessionConfig{Secret: []byte("test-secret"), TTL: time.Hour}), users
}

func TestRegister(t *testing.T) {
	uc, _ := setupAuth(t)
	ctx := context.Background()

	user, err := uc.Register(ctx, domain.RegisterInput{Name: "Juan", Email: "Juan@Test.com ", Password: "secreto"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleStudent, user.Role)
	assert.Equal(t, DefaultAvatar, user.Avatar)
	assert.Equal(t, "juan@test.com", user.Email)
	assert.NotEqual(t, "secreto", user.Password)
	assert.Empty(t, user.EnrolledCourses)

	_, err = uc.Register(ctx, domain.RegisterInput{Name: "Otro", Email: "juan@test.com", Password: "x"})
	require.Error(t, err)
	assert.Equal(t, "Este email ya está registrado", err.Error())
}

func TestLogin(t *testing.T) {
	uc, _ := setupAuth(t)
	ctx := context.Background()
	registered, err := uc.Register(ctx, domain.RegisterInput{Name: "Juan", Email: "juan@test.com", Password: "secreto"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, "nadie@test.com", "secreto")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, "Usuario no encontrado", err.Error())

	_, err = uc.Login(ctx, "juan@test.com", "otra")
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, "Contraseña incorrecta", err.Error())

	res, err := uc.Login(ctx, "juan@test.com", "secreto")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, res.User.ID)
	assert.NotEmpty(t, res.Token)

	session, err := uc.ParseSession(res.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, session.UserID)
	assert.Equal(t, domain.RoleStudent, session.Role)

	_, err = uc.ParseSession("garbage")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestUpdateProfile(t *testing.T) {
	uc, _ := setupAuth(t)
	ctx := context.Background()
	user, err := uc.Register(ctx, domain.RegisterInput{Name: "Juan", Email: "juan@test.com", Password: "secreto"})
	require.NoError(t, err)

	name, avatar, password := "Juan Pérez", "🦊", "nuevo123"
	updated, err := uc.UpdateProfile(ctx, user.ID, domain.ProfilePatch{Name: &name, Avatar: &avatar, Password: &password})
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)
	assert.Equal(t, avatar, updated.Avatar)

	_, err = uc.Login(ctx, "juan@test.com", "secreto")
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = uc.Login(ctx, "juan@test.com", "nuevo123")
	assert.NoError(t, err)

	_, err = uc.UpdateProfile(ctx, "missing", domain.ProfilePatch{Name: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
