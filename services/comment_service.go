package services

import (
	"context"
	"fmt"
	"strings"

	"editorial/models"
	"editorial/utils"

	"gorm.io/gorm"
)

var errCommentNotFound = utils.NewNotFoundError("Comment not found")

type CommentService struct {
	db       *gorm.DB
	notifier Notifier
}

func NewCommentService(db *gorm.DB, notifier Notifier) *CommentService {
	return &CommentService{db: db, notifier: notifier}
}

// Submit attaches a PENDING comment to the post with the given slug.
func (s *CommentService) Submit(ctx context.Context, slug string, req *models.CreateCommentRequest) (*models.Comment, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	message := strings.TrimSpace(req.Message)

	if name == "" || email == "" || message == "" {
		return nil, utils.NewValidationError("Name, email, message required.", nil)
	}

	postID, err := s.postIDBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if postID == "" {
		return nil, utils.NewNotFoundError("Post not found")
	}

	comment := &models.Comment{
		PostID:  postID,
		Name:    name,
		Email:   email,
		Message: message,
		Status:  models.CommentStatusPending,
	}
	if err := s.db.WithContext(ctx).Create(comment).Error; err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	notify(s.notifier, models.EventCommentSubmitted, map[string]interface{}{
		"id":       comment.ID,
		"postSlug": slug,
		"name":     comment.Name,
	})
	return comment, nil
}

// ListApproved never returns PENDING comments or commenter emails.
// An unknown slug yields an empty list.
func (s *CommentService) ListApproved(ctx context.Context, slug string) ([]models.PublicComment, error) {
	comments := []models.PublicComment{}

	postID, err := s.postIDBySlug(ctx, slug)
	if err != nil || postID == "" {
		return comments, err
	}

	err = s.db.WithContext(ctx).Model(&models.Comment{}).
		Where("post_id = ? AND status = ?", postID, models.CommentStatusApproved).
		Order("created_at DESC").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("list approved comments: %w", err)
	}
	return comments, nil
}

// ListAll is the moderation queue: every status, newest first, with the
// owning post's title and slug.
func (s *CommentService) ListAll(ctx context.Context, page, limit int) ([]models.AdminComment, int, int, error) {
	page, limit, offset := paging(page, limit, moderationDefaultLimit, moderationMaxLimit)

	var comments []models.Comment
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&comments).Error
	if err != nil {
		return nil, 0, 0, fmt.Errorf("list comments: %w", err)
	}

	postIDs := make([]string, 0, len(comments))
	seen := make(map[string]struct{}, len(comments))
	for _, c := range comments {
		if _, ok := seen[c.PostID]; !ok {
			seen[c.PostID] = struct{}{}
			postIDs = append(postIDs, c.PostID)
		}
	}

	posts := make(map[string]models.AdminPostListItem, len(postIDs))
	if len(postIDs) > 0 {
		var rows []models.AdminPostListItem
		if err := s.db.WithContext(ctx).Model(&models.Post{}).Where("id IN ?", postIDs).Find(&rows).Error; err != nil {
			return nil, 0, 0, fmt.Errorf("load comment posts: %w", err)
		}
		for _, p := range rows {
			posts[p.ID] = p
		}
	}

	items := make([]models.AdminComment, 0, len(comments))
	for _, c := range comments {
		item := models.AdminComment{Comment: c}
		if p, ok := posts[c.PostID]; ok {
			item.PostSlug = p.Slug
			item.PostTitle = p.Title
		}
		items = append(items, item)
	}
	return items, page, limit, nil
}

func (s *CommentService) SetStatus(ctx context.Context, id, status string) error {
	target, ok := models.ParseCommentStatus(status)
	if !ok {
		return utils.NewValidationError("Invalid status", nil)
	}
	if !isValidID(id) {
		return errCommentNotFound
	}

	result := s.db.WithContext(ctx).Model(&models.Comment{}).Where("id = ?", id).Update("status", target)
	if result.Error != nil {
		return fmt.Errorf("update comment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errCommentNotFound
	}
	return nil
}

func (s *CommentService) Delete(ctx context.Context, id string) error {
	if !isValidID(id) {
		return errCommentNotFound
	}

	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Comment{})
	if result.Error != nil {
		return fmt.Errorf("delete comment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errCommentNotFound
	}
	return nil
}

func (s *CommentService) postIDBySlug(ctx context.Context, slug string) (string, error) {
	var ids []string
	err := s.db.WithContext(ctx).Model(&models.Post{}).
		Where("slug = ?", strings.TrimSpace(slug)).
		Limit(1).
		Pluck("id", &ids).Error
	if err != nil {
		return "", fmt.Errorf("find post by slug: %w", err)
	}
	if len(ids) == 0 {
		return "", nil
	}
	return ids[0], nil
}
