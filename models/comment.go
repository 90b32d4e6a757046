package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CommentStatus string

const (
	CommentStatusPending  CommentStatus = "PENDING"
	CommentStatusApproved CommentStatus = "APPROVED"
)

func ParseCommentStatus(value string) (CommentStatus, bool) {
	status := CommentStatus(strings.ToUpper(strings.TrimSpace(value)))
	return status, status == CommentStatusPending || status == CommentStatusApproved
}

type Comment struct {
	ID        string        `json:"id" gorm:"type:uuid;primaryKey"`
	PostID    string        `json:"postId" gorm:"type:uuid;not null;index:idx_comments_post_status_created,priority:1"`
	Name      string        `json:"name" gorm:"not null"`
	Email     string        `json:"email" gorm:"not null"`
	Message   string        `json:"message" gorm:"type:text;not null"`
	Status    CommentStatus `json:"status" gorm:"type:varchar(16);not null;default:'PENDING';index:idx_comments_post_status_created,priority:2"`
	CreatedAt time.Time     `json:"createdAt" gorm:"index:idx_comments_post_status_created,priority:3,sort:desc"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Status == "" {
		c.Status = CommentStatusPending
	}
	return nil
}

type CreateCommentRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// PublicComment omits the commenter's email.
type PublicComment struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

type AdminComment struct {
	Comment
	PostSlug  string `json:"postSlug,omitempty"`
	PostTitle string `json:"postTitle,omitempty"`
}
