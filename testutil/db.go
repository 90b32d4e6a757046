// Package testutil builds throwaway content stores for package tests.
package testutil

import (
	"testing"
	"time"

	"editorial/database"
	"editorial/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// NewDB returns a migrated in-memory SQLite store private to the test.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	models.BcryptCost = bcrypt.MinCost

	client := database.NewClientWithDialector(sqlite.Open(":memory:"), "silent")
	db, err := client.DB()
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

func CreateAdmin(t *testing.T, db *gorm.DB, email, password string, active bool) *models.Admin {
	t.Helper()

	admin := &models.Admin{Email: email, Name: "Admin", IsActive: active}
	require.NoError(t, admin.SetPassword(password))
	require.NoError(t, db.Create(admin).Error)
	return admin
}

// CreatePost inserts a post directly, bypassing service rules.
func CreatePost(t *testing.T, db *gorm.DB, authorID, slug string, status models.PostStatus, createdAt time.Time) *models.Post {
	t.Helper()

	post := &models.Post{
		Title:     "Post " + slug,
		Slug:      slug,
		Content:   "Body of " + slug,
		Excerpt:   "Excerpt of " + slug,
		Tags:      datatypes.JSONSlice[string]{},
		Status:    status,
		AuthorID:  authorID,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	require.NoError(t, db.Create(post).Error)
	return post
}
