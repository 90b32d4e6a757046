package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ContactStatus string

const (
	ContactStatusNew  ContactStatus = "NEW"
	ContactStatusRead ContactStatus = "READ"
)

type Contact struct {
	ID        string        `json:"id" gorm:"type:uuid;primaryKey"`
	FirstName string        `json:"firstName" gorm:"not null"`
	LastName  string        `json:"lastName" gorm:"not null"`
	Email     string        `json:"email" gorm:"not null"`
	Subject   string        `json:"subject" gorm:"not null"`
	Message   string        `json:"message" gorm:"type:text;not null"`
	IP        string        `json:"ip,omitempty"`
	UserAgent string        `json:"userAgent,omitempty"`
	Status    ContactStatus `json:"status" gorm:"type:varchar(8);not null;default:'NEW'"`
	CreatedAt time.Time     `json:"createdAt" gorm:"index"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

func (c *Contact) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Status == "" {
		c.Status = ContactStatusNew
	}
	return nil
}

type CreateContactRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
}

// RequestMeta is captured from the submitting request, not the body.
type RequestMeta struct {
	IP        string
	UserAgent string
}
