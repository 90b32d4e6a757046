package services

import (
	"context"
	"fmt"
	"strings"

	"editorial/models"
	"editorial/utils"

	"gorm.io/gorm"
)

const (
	moderationDefaultLimit = 50
	moderationMaxLimit     = 200
)

var errGuestPostNotFound = utils.NewNotFoundError("Guest post not found")

// GuestPostService handles public post proposals and their moderation.
// Every moderation query is scoped to is_guest = true.
type GuestPostService struct {
	db       *gorm.DB
	authorID string
	notifier Notifier
}

func NewGuestPostService(db *gorm.DB, authorID string, notifier Notifier) *GuestPostService {
	return &GuestPostService{db: db, authorID: authorID, notifier: notifier}
}

func (s *GuestPostService) Submit(ctx context.Context, req *models.GuestPostRequest) (*models.Post, error) {
	fullName := strings.TrimSpace(req.FullName)
	email := strings.TrimSpace(req.Email)
	title := strings.TrimSpace(req.Title)
	slug := strings.TrimSpace(req.Slug)
	content := strings.TrimSpace(req.Content)

	if fullName == "" || email == "" || title == "" || slug == "" || content == "" {
		return nil, utils.NewValidationError("Full name, email, title, slug, content are required.", nil)
	}

	if s.authorID == "" {
		return nil, utils.NewConfigurationError("ADMIN_AUTHOR_ID is missing in env.")
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Post{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check slug: %w", err)
	}
	if count > 0 {
		return nil, utils.NewConflictError("This slug already exists. Please change the title.")
	}

	post := &models.Post{
		Title:    title,
		Slug:     slug,
		Content:  content,
		Excerpt:  strings.TrimSpace(req.Excerpt),
		Category: strings.TrimSpace(req.Category),
		Tags:     tagsOf(req.Tags),
		CoverURL: coverOf(req.CoverURL),
		Status:   models.PostStatusDraft,
		Views:    0,
		AuthorID: s.authorID,
		IsGuest:  true,
		Guest:    &models.GuestInfo{Name: fullName, Email: email},
	}

	if err := s.db.WithContext(ctx).Create(post).Error; err != nil {
		if isDuplicate(err) {
			return nil, utils.NewConflictError("This slug already exists. Please change the title.")
		}
		return nil, fmt.Errorf("create guest post: %w", err)
	}

	notify(s.notifier, models.EventGuestPostSubmitted, guestPostEvent(post))
	return post, nil
}

// List returns guest submissions with drafts first, newest first within a status.
func (s *GuestPostService) List(ctx context.Context, page, limit int) ([]models.GuestPostListItem, int, int, error) {
	page, limit, offset := paging(page, limit, moderationDefaultLimit, moderationMaxLimit)

	items := []models.GuestPostListItem{}
	err := s.db.WithContext(ctx).Model(&models.Post{}).
		Where("is_guest = ?", true).
		Order("status ASC").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, 0, 0, fmt.Errorf("list guest posts: %w", err)
	}

	for i := range items {
		items[i].Guest = models.GuestInfo{Name: items[i].GuestName, Email: items[i].GuestEmail}
	}
	return items, page, limit, nil
}

// SetStatus is the approval action: PUBLISHED makes the post public.
func (s *GuestPostService) SetStatus(ctx context.Context, id, status string) error {
	target, ok := models.ParsePostStatus(status)
	if !ok {
		return utils.NewValidationError("Invalid status", nil)
	}
	if !isValidID(id) {
		return errGuestPostNotFound
	}

	result := s.db.WithContext(ctx).Model(&models.Post{}).
		Where("id = ? AND is_guest = ?", id, true).
		Update("status", target)
	if result.Error != nil {
		return fmt.Errorf("update guest post: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errGuestPostNotFound
	}
	return nil
}

func (s *GuestPostService) Delete(ctx context.Context, id string) error {
	if !isValidID(id) {
		return errGuestPostNotFound
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND is_guest = ?", id, true).Delete(&models.Post{})
		if result.Error != nil {
			return fmt.Errorf("delete guest post: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return errGuestPostNotFound
		}
		return tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error
	})
}

func guestPostEvent(post *models.Post) map[string]interface{} {
	return map[string]interface{}{
		"id":    post.ID,
		"title": post.Title,
		"slug":  post.Slug,
		"guest": post.Guest,
	}
}
