package services

import (
	"context"
	"testing"

	"editorial/models"
	"editorial/testutil"
	"editorial/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestAuthService_Login(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	svc := NewAuthService(db, testSecret)

	admin := testutil.CreateAdmin(t, db, "editor@example.com", "correct horse", true)
	testutil.CreateAdmin(t, db, "retired@example.com", "correct horse", false)

	got, token, err := svc.Login(ctx, &models.LoginRequest{Email: "  Editor@Example.com ", Password: "correct horse"})
	require.NoError(t, err)
	assert.Equal(t, admin.ID, got.ID)
	assert.NotEmpty(t, token)

	adminID, ok := svc.Authenticate(token)
	require.True(t, ok)
	assert.Equal(t, admin.ID, adminID)

	tests := []struct {
		name string
		req  models.LoginRequest
		err  error
	}{
		{"wrong password", models.LoginRequest{Email: "editor@example.com", Password: "nope"}, utils.ErrInvalidCredentials},
		{"unknown email", models.LoginRequest{Email: "ghost@example.com", Password: "correct horse"}, utils.ErrInvalidCredentials},
		{"inactive admin", models.LoginRequest{Email: "retired@example.com", Password: "correct horse"}, utils.ErrInvalidCredentials},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			_, token, err := svc.Login(ctx, &req)
			assert.ErrorIs(t, err, tt.err)
			assert.Empty(t, token)
		})
	}

	_, _, err = svc.Login(ctx, &models.LoginRequest{Email: "editor@example.com"})
	requireKind(t, err, utils.KindValidation)
}

func TestAuthService_Authenticate(t *testing.T) {
	svc := NewAuthService(nil, testSecret)

	_, ok := svc.Authenticate("")
	assert.False(t, ok)

	forged, err := utils.GenerateAdminJWT("other-secret", "00000000-0000-0000-0000-000000000000")
	require.NoError(t, err)
	_, ok = svc.Authenticate(forged)
	assert.False(t, ok)
}

func TestAuthService_GetAdmin(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	svc := NewAuthService(db, testSecret)

	active := testutil.CreateAdmin(t, db, "a@example.com", "pw", true)
	inactive := testutil.CreateAdmin(t, db, "b@example.com", "pw", false)

	got, err := svc.GetAdmin(ctx, active.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", got.Email)
	assert.Equal(t, "admin", got.Role)

	_, err = svc.GetAdmin(ctx, inactive.ID)
	assert.ErrorIs(t, err, utils.ErrUnauthorized)

	_, err = svc.GetAdmin(ctx, "garbage")
	assert.ErrorIs(t, err, utils.ErrUnauthorized)
}

func TestAuthService_EnsureAdmin(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	svc := NewAuthService(db, testSecret)

	admin, created, err := svc.EnsureAdmin(ctx, "Owner@Example.com", "s3cret", "")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "owner@example.com", admin.Email)
	assert.Equal(t, "Admin", admin.Name)
	assert.True(t, admin.IsActive)

	again, created, err := svc.EnsureAdmin(ctx, "owner@example.com", "different", "Owner")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, admin.ID, again.ID)

	_, _, err = svc.Login(ctx, &models.LoginRequest{Email: "owner@example.com", Password: "s3cret"})
	require.NoError(t, err)
}
