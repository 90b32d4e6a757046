package services

import (
	"context"
	"fmt"
	"strings"

	"editorial/models"
	"editorial/utils"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AboutService owns the About page singleton. The row always has
// models.AboutSingletonID as its key, so a second row cannot exist.
type AboutService struct {
	db *gorm.DB
}

func NewAboutService(db *gorm.DB) *AboutService {
	return &AboutService{db: db}
}

// Get returns the About page, creating the default one on first read.
func (s *AboutService) Get(ctx context.Context) (*models.About, error) {
	about := models.DefaultAbout()
	err := s.db.WithContext(ctx).
		Where(models.About{ID: models.AboutSingletonID}).
		FirstOrCreate(&about).Error
	if isDuplicate(err) {
		// lost the race to create the default; read the winner's row
		about = models.About{}
		err = s.db.WithContext(ctx).First(&about, models.AboutSingletonID).Error
	}
	if err != nil {
		return nil, fmt.Errorf("load about: %w", err)
	}
	if about.Paragraphs == nil {
		about.Paragraphs = datatypes.JSONSlice[string]{}
	}
	return &about, nil
}

// Update applies the supplied fields, creating the singleton if needed.
func (s *AboutService) Update(ctx context.Context, req *models.UpdateAboutRequest) (*models.About, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return nil, utils.NewValidationError("Validation failed", map[string]string{"title": "is required"})
	}

	updates := map[string]interface{}{}
	set := func(column string, value *string) {
		if value != nil {
			updates[column] = *value
		}
	}
	set("heading_top", req.HeadingTop)
	set("title", req.Title)
	set("subtitle", req.Subtitle)
	set("hero_image_url", req.HeroImageURL)
	set("lead", req.Lead)
	set("editor_name", req.EditorName)
	set("editor_role", req.EditorRole)
	set("editor_bio", req.EditorBio)
	set("editor_image_url", req.EditorImageURL)
	set("editor_twitter_url", req.EditorTwitterURL)
	if req.Paragraphs != nil {
		paragraphs := datatypes.JSONSlice[string]{}
		for _, p := range *req.Paragraphs {
			if p = strings.TrimSpace(p); p != "" {
				paragraphs = append(paragraphs, p)
			}
		}
		updates["paragraphs"] = paragraphs
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		about := models.DefaultAbout()
		if err := tx.Where(models.About{ID: models.AboutSingletonID}).FirstOrCreate(&about).Error; err != nil {
			return err
		}
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&about).Updates(updates).Error
	})
	if err != nil {
		return nil, fmt.Errorf("update about: %w", err)
	}

	return s.Get(ctx)
}
