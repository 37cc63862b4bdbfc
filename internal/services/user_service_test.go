package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lucassmelendez/ct-backend/internal/auth"
	"github.com/lucassmelendez/ct-backend/internal/database/testutil"
	"github.com/lucassmelendez/ct-backend/internal/models"
	apperrors "github.com/lucassmelendez/ct-backend/pkg/errors"
)

func newUserTestService(t *testing.T) *UserService {
	t.Helper()

	db := testutil.MustOpenTestDB(t, testutil.WithSeedData())
	jwt, err := auth.NewJWTService(auth.JWTConfig{Secret: "test-secret"})
	require.NoError(t, err)

	svc, err := NewUserService(db, jwt)
	require.NoError(t, err)
	return svc
}

func TestUserServiceRegisterAndLogin(t *testing.T) {
	svc := newUserTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{
		Email:     "Maria@Example.com",
		Password:  "secret123",
		FirstName: "María",
		LastName:  "González",
	})
	require.NoError(t, err)
	require.Equal(t, models.RoleWorker, user.RoleID)
	require.Equal(t, models.PremiumFree, user.PremiumID)
	require.NotEmpty(t, user.AuthID)

	// Email comparisons are case insensitive.
	logged, tokens, err := svc.Login(ctx, "maria@example.com", "secret123")
	require.NoError(t, err)
	require.Equal(t, user.ID, logged.ID)
	require.NotEmpty(t, tokens.AccessToken)
	require.NotEmpty(t, tokens.RefreshToken)

	_, _, err = svc.Login(ctx, "maria@example.com", "wrong")
	require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "nobody@example.com", "secret123")
	require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestUserServiceRegisterDuplicateEmail(t *testing.T) {
	svc := newUserTestService(t)
	ctx := context.Background()

	input := RegisterInput{
		Email:     "dup@example.com",
		Password:  "secret123",
		FirstName: "Ana",
		LastName:  "Pérez",
	}

	_, err := svc.Register(ctx, input)
	require.NoError(t, err)

	_, err = svc.Register(ctx, input)
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestUserServiceRefresh(t *testing.T) {
	svc := newUserTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{
		Email:     "token@example.com",
		Password:  "secret123",
		FirstName: "Luis",
		LastName:  "Campos",
	})
	require.NoError(t, err)

	_, tokens, err := svc.Login(ctx, "token@example.com", "secret123")
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, tokens.RefreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, refreshed.AccessToken)

	// An access token cannot be used as a refresh token.
	_, err = svc.Refresh(ctx, tokens.AccessToken)
	require.Error(t, err)
}

func TestUserServiceUpdateAndDelete(t *testing.T) {
	svc := newUserTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{
		Email:     "upd@example.com",
		Password:  "secret123",
		FirstName: "Pedro",
		LastName:  "Soto",
	})
	require.NoError(t, err)

	newName := "Pablo"
	newRole := models.RoleVeterinarian
	updated, err := svc.Update(ctx, user.ID, UpdateUserInput{
		FirstName: &newName,
		RoleID:    &newRole,
	})
	require.NoError(t, err)
	require.Equal(t, "Pablo", updated.FirstName)
	require.Equal(t, models.RoleVeterinarian, updated.RoleID)
	require.Equal(t, "Soto", updated.LastName)

	require.NoError(t, svc.Delete(ctx, user.ID))

	_, err = svc.Get(ctx, user.ID)
	require.Error(t, err)

	// The credential row is removed with the account.
	_, _, err = svc.Login(ctx, "upd@example.com", "secret123")
	require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestUserServiceUpdatePreferences(t *testing.T) {
	svc := newUserTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{
		Email:     "prefs@example.com",
		Password:  "secret123",
		FirstName: "Rosa",
		LastName:  "Vidal",
	})
	require.NoError(t, err)

	updated, err := svc.UpdatePreferences(ctx, user.ID, []byte(`{"tema":"oscuro"}`))
	require.NoError(t, err)
	require.JSONEq(t, `{"tema":"oscuro"}`, string(updated.Preferences))
}
