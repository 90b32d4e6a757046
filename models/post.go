package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PostStatus string

const (
	PostStatusDraft     PostStatus = "DRAFT"
	PostStatusPublished PostStatus = "PUBLISHED"
	PostStatusScheduled PostStatus = "SCHEDULED"
)

func (s PostStatus) Valid() bool {
	switch s {
	case PostStatusDraft, PostStatusPublished, PostStatusScheduled:
		return true
	}
	return false
}

// ParsePostStatus accepts any casing and surrounding whitespace.
func ParsePostStatus(value string) (PostStatus, bool) {
	status := PostStatus(strings.ToUpper(strings.TrimSpace(value)))
	return status, status.Valid()
}

type GuestInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Post struct {
	ID         string                      `json:"id" gorm:"type:uuid;primaryKey"`
	Title      string                      `json:"title" gorm:"not null"`
	Slug       string                      `json:"slug" gorm:"uniqueIndex;not null"`
	Content    string                      `json:"content" gorm:"type:text;not null"`
	Excerpt    string                      `json:"excerpt,omitempty"`
	Category   string                      `json:"category,omitempty" gorm:"index"`
	Tags       datatypes.JSONSlice[string] `json:"tags"`
	CoverURL   *string                     `json:"coverUrl"`
	Status     PostStatus                  `json:"status" gorm:"type:varchar(16);not null;default:'DRAFT';index:idx_posts_status_created,priority:1"`
	Views      int                         `json:"views" gorm:"not null;default:0"`
	AuthorID   string                      `json:"authorId" gorm:"type:uuid;not null;index"`
	IsGuest    bool                        `json:"isGuest" gorm:"not null;default:false;index"`
	Guest      *GuestInfo                  `json:"guest,omitempty" gorm:"-"`
	GuestName  string                      `json:"-"`
	GuestEmail string                      `json:"-"`
	CreatedAt  time.Time                   `json:"createdAt" gorm:"index:idx_posts_status_created,priority:2,sort:desc"`
	UpdatedAt  time.Time                   `json:"updatedAt"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Tags == nil {
		p.Tags = datatypes.JSONSlice[string]{}
	}
	return nil
}

func (p *Post) BeforeSave(tx *gorm.DB) error {
	if p.Guest != nil {
		p.GuestName = p.Guest.Name
		p.GuestEmail = p.Guest.Email
	}
	return nil
}

func (p *Post) AfterFind(tx *gorm.DB) error {
	if p.IsGuest && (p.GuestName != "" || p.GuestEmail != "") {
		p.Guest = &GuestInfo{Name: p.GuestName, Email: p.GuestEmail}
	}
	if p.Tags == nil {
		p.Tags = datatypes.JSONSlice[string]{}
	}
	return nil
}

// PostListItem is the public card shape used by home and archive listings.
type PostListItem struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Excerpt   string    `json:"excerpt,omitempty"`
	Category  string    `json:"category,omitempty"`
	CoverURL  *string   `json:"coverUrl"`
	CreatedAt time.Time `json:"createdAt"`
}

type PublicPost struct {
	ID        string                      `json:"id"`
	Title     string                      `json:"title"`
	Slug      string                      `json:"slug"`
	Content   string                      `json:"content"`
	Excerpt   string                      `json:"excerpt,omitempty"`
	Category  string                      `json:"category,omitempty"`
	Tags      datatypes.JSONSlice[string] `json:"tags"`
	CoverURL  *string                     `json:"coverUrl"`
	CreatedAt time.Time                   `json:"createdAt"`
}

type AdminPostListItem struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Slug      string     `json:"slug"`
	Category  string     `json:"category,omitempty"`
	Status    PostStatus `json:"status"`
	Views     int        `json:"views"`
	IsGuest   bool       `json:"isGuest"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

type GuestPostListItem struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Slug       string     `json:"slug"`
	Status     PostStatus `json:"status"`
	Guest      GuestInfo  `json:"guest" gorm:"-"`
	GuestName  string     `json:"-"`
	GuestEmail string     `json:"-"`
	CreatedAt  time.Time  `json:"createdAt"`
}

type CreatePostRequest struct {
	Title    string     `json:"title" binding:"required,min=3"`
	Slug     string     `json:"slug" binding:"omitempty,min=3"`
	Content  string     `json:"content" binding:"required"`
	Excerpt  string     `json:"excerpt"`
	Category string     `json:"category"`
	Tags     []string   `json:"tags"`
	CoverURL string     `json:"coverUrl"`
	Status   PostStatus `json:"status" binding:"omitempty,oneof=DRAFT PUBLISHED SCHEDULED"`
}

// UpdatePostRequest is a partial patch; nil fields are left untouched.
type UpdatePostRequest struct {
	Title    *string     `json:"title" binding:"omitempty,min=3"`
	Slug     *string     `json:"slug" binding:"omitempty,min=3"`
	Content  *string     `json:"content" binding:"omitempty,min=1"`
	Excerpt  *string     `json:"excerpt"`
	Category *string     `json:"category"`
	Tags     *[]string   `json:"tags"`
	CoverURL *string     `json:"coverUrl"`
	Status   *PostStatus `json:"status" binding:"omitempty,oneof=DRAFT PUBLISHED SCHEDULED"`
}

type GuestPostRequest struct {
	FullName string   `json:"fullName"`
	Email    string   `json:"email"`
	Title    string   `json:"title"`
	Slug     string   `json:"slug"`
	Content  string   `json:"content"`
	Excerpt  string   `json:"excerpt"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
	CoverURL string   `json:"coverUrl"`
}

// StatusRequest is the moderation body shared by guest posts and comments.
type StatusRequest struct {
	Status string `json:"status"`
}

type PublicPostQuery struct {
	Query    string
	Category string
	Page     int
	Limit    int
}

type HomeFeed struct {
	Featured *PostListItem  `json:"featured"`
	Latest   []PostListItem `json:"latest"`
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	HasPrev    bool  `json:"hasPrev"`
	HasNext    bool  `json:"hasNext"`
}

type ArchivePage struct {
	Posts      []PostListItem `json:"posts"`
	Pagination Pagination     `json:"pagination"`
}

type DashboardStats struct {
	Posts           map[PostStatus]int64 `json:"posts"`
	GuestDrafts     int64                `json:"guestDrafts"`
	PendingComments int64                `json:"pendingComments"`
	Contacts        int64                `json:"contacts"`
}
