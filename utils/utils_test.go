package utils

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminJWTRoundTrip(t *testing.T) {
	token, err := GenerateAdminJWT("secret", "admin-1")
	require.NoError(t, err)

	claims, err := ValidateAdminJWT("secret", token)
	require.NoError(t, err)
	assert.Equal(t, "admin-1", claims.Subject)
	assert.Equal(t, AdminRole, claims.Role)
	assert.WithinDuration(t, time.Now().Add(AdminTokenTTL), claims.ExpiresAt.Time, time.Minute)
}

func TestValidateAdminJWTRejects(t *testing.T) {
	good, err := GenerateAdminJWT("secret", "admin-1")
	require.NoError(t, err)

	_, err = ValidateAdminJWT("other", good)
	assert.Error(t, err, "wrong secret")

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &AdminClaims{
		Role: AdminRole,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "admin-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})
	signed, err := expired.SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = ValidateAdminJWT("secret", signed)
	assert.Error(t, err, "expired")

	editor := jwt.NewWithClaims(jwt.SigningMethodHS256, &AdminClaims{
		Role:             "editor",
		RegisteredClaims: jwt.RegisteredClaims{Subject: "admin-1"},
	})
	signed, err = editor.SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = ValidateAdminJWT("secret", signed)
	assert.Error(t, err, "wrong role")

	_, err = ValidateAdminJWT("secret", "not-a-token")
	assert.Error(t, err)
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Hello World":           "hello-world",
		"  It's a \"Test\"!  ":  "its-a-test",
		"Go -- 1.23 release":    "go-1-23-release",
		"---trim---":            "trim",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), in)
	}

	fallback := Slugify("বাংলা")
	assert.True(t, strings.HasPrefix(fallback, "post-"), fallback)
}

type sample struct {
	Title  string `json:"title" binding:"required,min=3"`
	Status string `json:"status" binding:"omitempty,oneof=DRAFT PUBLISHED"`
}

func TestValidateStructReportsJSONNames(t *testing.T) {
	err := ValidateStruct(&sample{Title: "ab", Status: "NOPE"})
	require.Error(t, err)

	appErr, ok := AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, appErr.Status())
	assert.Equal(t, "must be at least 3 characters", appErr.Details["title"])
	assert.Equal(t, "must be one of DRAFT, PUBLISHED", appErr.Details["status"])

	assert.NoError(t, ValidateStruct(&sample{Title: "abc"}))
}

func TestAppErrorStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, NewNotFoundError("x").Status())
	assert.Equal(t, http.StatusConflict, NewConflictError("x").Status())
	assert.Equal(t, http.StatusInternalServerError, NewConfigurationError("x").Status())
	assert.Equal(t, http.StatusUnauthorized, ErrInvalidCredentials.Status())
	assert.True(t, IsKind(NewNotFoundError("x"), KindNotFound))
	assert.True(t, IsURL("https://example.com/a.png"))
	assert.False(t, IsURL("not a url"))
}
