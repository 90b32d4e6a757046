package services

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"editorial/models"
	"editorial/utils"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	publicDefaultLimit = 9
	publicMaxLimit     = 50
	homeMaxLatest      = 20
)

const likeEscape = ` LIKE ? ESCAPE '\'`

var (
	errNotFound  = utils.NewNotFoundError("Not found")
	errInvalidID = utils.NewValidationError("Invalid id", nil)
	errSlugTaken = utils.NewConflictError("Slug already exists")
)

type PostService struct {
	db *gorm.DB
}

func NewPostService(db *gorm.DB) *PostService {
	return &PostService{db: db}
}

func (s *PostService) Create(ctx context.Context, authorID string, req *models.CreatePostRequest) (*models.Post, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Slug = strings.TrimSpace(req.Slug)
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, utils.NewValidationError("Validation failed", map[string]string{"content": "is required"})
	}
	if req.CoverURL != "" && !utils.IsURL(req.CoverURL) {
		return nil, utils.NewValidationError("Validation failed", map[string]string{"coverUrl": "must be a valid URL"})
	}

	slug := req.Slug
	if slug == "" {
		var err error
		if slug, err = s.availableSlug(ctx, utils.Slugify(req.Title)); err != nil {
			return nil, err
		}
	} else if taken, err := s.slugTaken(ctx, slug, ""); err != nil {
		return nil, err
	} else if taken {
		return nil, errSlugTaken
	}

	status := req.Status
	if status == "" {
		status = models.PostStatusDraft
	}

	post := &models.Post{
		Title:    req.Title,
		Slug:     slug,
		Content:  req.Content,
		Excerpt:  req.Excerpt,
		Category: req.Category,
		Tags:     tagsOf(req.Tags),
		CoverURL: coverOf(req.CoverURL),
		Status:   status,
		AuthorID: authorID,
	}

	if err := s.db.WithContext(ctx).Create(post).Error; err != nil {
		if isDuplicate(err) {
			return nil, errSlugTaken
		}
		return nil, fmt.Errorf("create post: %w", err)
	}
	return post, nil
}

func (s *PostService) GetByID(ctx context.Context, id string) (*models.Post, error) {
	if !isValidID(id) {
		return nil, errInvalidID
	}

	var post models.Post
	if err := s.db.WithContext(ctx).First(&post, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			return nil, errNotFound
		}
		return nil, fmt.Errorf("get post: %w", err)
	}
	return &post, nil
}

func (s *PostService) Update(ctx context.Context, id string, req *models.UpdatePostRequest) (*models.Post, error) {
	if !isValidID(id) {
		return nil, errInvalidID
	}
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	post, err := s.GetByID(ctx, id)
	if err != nil {
		if utils.IsKind(err, utils.KindNotFound) {
			return nil, errNotFound
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if len([]rune(title)) < 3 {
			return nil, utils.NewValidationError("Validation failed", map[string]string{"title": "must be at least 3 characters"})
		}
		updates["title"] = title
	}
	if req.Slug != nil {
		slug := strings.TrimSpace(*req.Slug)
		if len([]rune(slug)) < 3 {
			return nil, utils.NewValidationError("Validation failed", map[string]string{"slug": "must be at least 3 characters"})
		}
		taken, err := s.slugTaken(ctx, slug, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, errSlugTaken
		}
		updates["slug"] = slug
	}
	if req.Content != nil {
		if strings.TrimSpace(*req.Content) == "" {
			return nil, utils.NewValidationError("Validation failed", map[string]string{"content": "is required"})
		}
		updates["content"] = *req.Content
	}
	if req.Excerpt != nil {
		updates["excerpt"] = *req.Excerpt
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Tags != nil {
		updates["tags"] = tagsOf(*req.Tags)
	}
	if req.CoverURL != nil {
		if *req.CoverURL != "" && !utils.IsURL(*req.CoverURL) {
			return nil, utils.NewValidationError("Validation failed", map[string]string{"coverUrl": "must be a valid URL"})
		}
		updates["cover_url"] = coverOf(*req.CoverURL)
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}

	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(post).Updates(updates).Error; err != nil {
			if isDuplicate(err) {
				return nil, errSlugTaken
			}
			return nil, fmt.Errorf("update post: %w", err)
		}
	}

	return s.GetByID(ctx, id)
}

// Delete removes the post and its comments for good.
func (s *PostService) Delete(ctx context.Context, id string) error {
	if !isValidID(id) {
		return errInvalidID
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ?", id).Delete(&models.Post{})
		if result.Error != nil {
			return fmt.Errorf("delete post: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return errNotFound
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return fmt.Errorf("delete post comments: %w", err)
		}
		return nil
	})
}

// List is the admin search: q matches title or content, status is exact.
func (s *PostService) List(ctx context.Context, q, status string) ([]models.AdminPostListItem, error) {
	query := s.db.WithContext(ctx).Model(&models.Post{})

	if q = strings.TrimSpace(q); q != "" {
		pattern := likePattern(q)
		query = query.Where("LOWER(title)"+likeEscape+" OR LOWER(content)"+likeEscape, pattern, pattern)
	}
	if status = strings.TrimSpace(status); status != "" {
		query = query.Where("status = ?", status)
	}

	posts := []models.AdminPostListItem{}
	if err := query.Order("created_at DESC").Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

func (s *PostService) Home(ctx context.Context, q models.PublicPostQuery) (*models.HomeFeed, error) {
	limit := clamp(q.Limit, publicDefaultLimit, 1, publicMaxLimit)
	if limit > homeMaxLatest {
		limit = homeMaxLatest
	}

	latest := []models.PostListItem{}
	if err := s.publishedQuery(ctx, q).Order("created_at DESC").Limit(limit).Find(&latest).Error; err != nil {
		return nil, fmt.Errorf("list latest posts: %w", err)
	}

	feed := &models.HomeFeed{Latest: latest}
	if len(latest) > 0 {
		featured := latest[0]
		feed.Featured = &featured
	}
	return feed, nil
}

func (s *PostService) Archive(ctx context.Context, q models.PublicPostQuery) (*models.ArchivePage, error) {
	page, limit, offset := paging(q.Page, q.Limit, publicDefaultLimit, publicMaxLimit)

	var total int64
	if err := s.publishedQuery(ctx, q).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count posts: %w", err)
	}

	posts := []models.PostListItem{}
	err := s.publishedQuery(ctx, q).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	if totalPages < 1 {
		totalPages = 1
	}

	return &models.ArchivePage{
		Posts: posts,
		Pagination: models.Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
			HasPrev:    page > 1,
			HasNext:    page < totalPages,
		},
	}, nil
}

// GetPublished resolves key as an id when it is id-shaped and as a slug
// otherwise. Anything not PUBLISHED is reported as missing.
func (s *PostService) GetPublished(ctx context.Context, key string) (*models.PublicPost, error) {
	key = strings.TrimSpace(key)
	query := s.db.WithContext(ctx).Model(&models.Post{}).Where("status = ?", models.PostStatusPublished)
	if isValidID(key) {
		query = query.Where("id = ?", key)
	} else {
		query = query.Where("slug = ?", key)
	}

	var post models.PublicPost
	if err := query.Take(&post).Error; err != nil {
		if isNotFound(err) {
			return nil, errNotFound
		}
		return nil, fmt.Errorf("get published post: %w", err)
	}
	if post.Tags == nil {
		post.Tags = datatypes.JSONSlice[string]{}
	}
	return &post, nil
}

func (s *PostService) Stats(ctx context.Context) (*models.DashboardStats, error) {
	stats := &models.DashboardStats{Posts: map[models.PostStatus]int64{
		models.PostStatusDraft:     0,
		models.PostStatusPublished: 0,
		models.PostStatusScheduled: 0,
	}}

	var rows []struct {
		Status models.PostStatus
		Count  int64
	}
	db := s.db.WithContext(ctx)
	if err := db.Model(&models.Post{}).Select("status, COUNT(*) AS count").Group("status").Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("count posts by status: %w", err)
	}
	for _, row := range rows {
		stats.Posts[row.Status] = row.Count
	}

	if err := db.Model(&models.Post{}).Where("is_guest = ? AND status = ?", true, models.PostStatusDraft).Count(&stats.GuestDrafts).Error; err != nil {
		return nil, fmt.Errorf("count guest drafts: %w", err)
	}
	if err := db.Model(&models.Comment{}).Where("status = ?", models.CommentStatusPending).Count(&stats.PendingComments).Error; err != nil {
		return nil, fmt.Errorf("count pending comments: %w", err)
	}
	if err := db.Model(&models.Contact{}).Count(&stats.Contacts).Error; err != nil {
		return nil, fmt.Errorf("count contacts: %w", err)
	}
	return stats, nil
}

func (s *PostService) publishedQuery(ctx context.Context, q models.PublicPostQuery) *gorm.DB {
	query := s.db.WithContext(ctx).Model(&models.Post{}).Where("status = ?", models.PostStatusPublished)

	if category := strings.TrimSpace(q.Category); category != "" && category != "All" {
		query = query.Where("category = ?", category)
	}
	if text := strings.TrimSpace(q.Query); text != "" {
		pattern := likePattern(text)
		query = query.Where(
			"LOWER(title)"+likeEscape+" OR LOWER(content)"+likeEscape+" OR LOWER(excerpt)"+likeEscape,
			pattern, pattern, pattern,
		)
	}
	return query
}

func (s *PostService) slugTaken(ctx context.Context, slug, excludeID string) (bool, error) {
	query := s.db.WithContext(ctx).Model(&models.Post{}).Where("slug = ?", slug)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("check slug: %w", err)
	}
	return count > 0, nil
}

// availableSlug returns base, or base with the first free numeric suffix.
func (s *PostService) availableSlug(ctx context.Context, base string) (string, error) {
	candidate := base
	for n := 2; ; n++ {
		taken, err := s.slugTaken(ctx, candidate, "")
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = base + "-" + strconv.Itoa(n)
	}
}

func tagsOf(tags []string) datatypes.JSONSlice[string] {
	out := datatypes.JSONSlice[string]{}
	for _, tag := range tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}

func coverOf(url string) *string {
	if url = strings.TrimSpace(url); url == "" {
		return nil
	}
	return &url
}
