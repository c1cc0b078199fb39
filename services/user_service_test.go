package services_test

import (
	"context"
	"testing"

	"github.com/meinhoongagan/tutor-booking/models"
	"github.com/meinhoongagan/tutor-booking/services"
	"github.com/meinhoongagan/tutor-booking/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newUserService(t *testing.T, allowAdmin bool) *services.UserService {
	conn := testutil.NewDB(t)
	return services.NewUserService(conn, services.AuthPolicy{
		AllowAdminSignup: allowAdmin,
		BcryptCost:       bcrypt.MinCost,
	}, testutil.NewLogger(t))
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	svc := newUserService(t, true)

	user, err := svc.Register(ctx, services.RegisterInput{
		Name:     "Ada",
		Email:    "  Ada@Example.com ",
		Password: "secret",
	})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.NotEqual(t, "secret", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret")))

	_, err = svc.Register(ctx, services.RegisterInput{Name: "Ada", Email: "ada@example.com", Password: "x"})
	assert.ErrorIs(t, err, services.ErrEmailTaken)

	admin, err := svc.Register(ctx, services.RegisterInput{Name: "Root", Email: "root@example.com", Password: "x", IsAdmin: true})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, admin.Role)
}

func TestRegisterValidation(t *testing.T) {
	ctx := context.Background()
	svc := newUserService(t, false)

	cases := []struct {
		name string
		in   services.RegisterInput
	}{
		{"missing name", services.RegisterInput{Email: "a@example.com", Password: "x"}},
		{"missing email", services.RegisterInput{Name: "A", Password: "x"}},
		{"missing password", services.RegisterInput{Name: "A", Email: "a@example.com"}},
		{"bad email", services.RegisterInput{Name: "A", Email: "not-an-email", Password: "x"}},
		{"admin disabled", services.RegisterInput{Name: "A", Email: "a@example.com", Password: "x", IsAdmin: true}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var verr *services.ValidationError
			_, err := svc.Register(ctx, tc.in)
			assert.ErrorAs(t, err, &verr)
		})
	}
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	svc := newUserService(t, true)

	_, err := svc.Register(ctx, services.RegisterInput{Name: "U", Email: "user@example.com", Password: "pw"})
	require.NoError(t, err)
	_, err = svc.Register(ctx, services.RegisterInput{Name: "A", Email: "admin@example.com", Password: "pw", IsAdmin: true})
	require.NoError(t, err)

	user, err := svc.Authenticate(ctx, "USER@example.com", "pw", false)
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", user.Email)

	_, err = svc.Authenticate(ctx, "user@example.com", "wrong", false)
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "nobody@example.com", "pw", false)
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "user@example.com", "pw", true)
	assert.ErrorIs(t, err, services.ErrAdminRequired)

	// A wrong password is reported as such even on the admin login.
	_, err = svc.Authenticate(ctx, "user@example.com", "wrong", true)
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	admin, err := svc.Authenticate(ctx, "admin@example.com", "pw", true)
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin())
}

func TestSetRole(t *testing.T) {
	ctx := context.Background()
	svc := newUserService(t, true)

	user, err := svc.Register(ctx, services.RegisterInput{Name: "U", Email: "user@example.com", Password: "pw"})
	require.NoError(t, err)

	promoted, err := svc.SetRole(ctx, user.ID, models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, promoted.Role)

	reloaded, err := svc.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, reloaded.Role)

	var verr *services.ValidationError
	_, err = svc.SetRole(ctx, user.ID, "ROOT")
	assert.ErrorAs(t, err, &verr)

	_, err = svc.SetRole(ctx, "missing", models.RoleUser)
	assert.ErrorIs(t, err, services.ErrNotFound)

	users, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}
