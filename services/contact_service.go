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
	contactDefaultLimit = 20
	contactMaxLimit     = 50
)

type ContactService struct {
	db       *gorm.DB
	notifier Notifier
}

func NewContactService(db *gorm.DB, notifier Notifier) *ContactService {
	return &ContactService{db: db, notifier: notifier}
}

func (s *ContactService) Submit(ctx context.Context, req *models.CreateContactRequest, meta models.RequestMeta) (*models.Contact, error) {
	contact := &models.Contact{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Subject:   strings.TrimSpace(req.Subject),
		Message:   strings.TrimSpace(req.Message),
		IP:        meta.IP,
		UserAgent: meta.UserAgent,
		Status:    models.ContactStatusNew,
	}

	if contact.FirstName == "" || contact.LastName == "" || contact.Email == "" || contact.Subject == "" || contact.Message == "" {
		return nil, utils.NewValidationError("All fields are required", nil)
	}

	if err := s.db.WithContext(ctx).Create(contact).Error; err != nil {
		return nil, fmt.Errorf("create contact: %w", err)
	}

	notify(s.notifier, models.EventContactSubmitted, map[string]interface{}{
		"id":      contact.ID,
		"subject": contact.Subject,
		"email":   contact.Email,
	})
	return contact, nil
}

type ContactPage struct {
	Items []models.Contact `json:"items"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}

func (s *ContactService) List(ctx context.Context, page, limit int) (*ContactPage, error) {
	page, limit, offset := paging(page, limit, contactDefaultLimit, contactMaxLimit)

	result := &ContactPage{Items: []models.Contact{}, Page: page, Limit: limit}
	db := s.db.WithContext(ctx)

	if err := db.Model(&models.Contact{}).Count(&result.Total).Error; err != nil {
		return nil, fmt.Errorf("count contacts: %w", err)
	}
	err := db.Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&result.Items).Error
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	return result, nil
}

func (s *ContactService) Delete(ctx context.Context, id string) error {
	if !isValidID(id) {
		return errInvalidID
	}

	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Contact{})
	if result.Error != nil {
		return fmt.Errorf("delete contact: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errNotFound
	}
	return nil
}
