package models

import (
	"time"

	"gorm.io/datatypes"
)

// AboutSingletonID is the only primary key an About row may have.
const AboutSingletonID = 1

type About struct {
	ID               uint                        `json:"-" gorm:"primaryKey;autoIncrement:false"`
	HeadingTop       string                      `json:"headingTop"`
	Title            string                      `json:"title" gorm:"not null"`
	Subtitle         string                      `json:"subtitle"`
	HeroImageURL     string                      `json:"heroImageUrl"`
	Lead             string                      `json:"lead"`
	Paragraphs       datatypes.JSONSlice[string] `json:"paragraphs"`
	EditorName       string                      `json:"editorName"`
	EditorRole       string                      `json:"editorRole"`
	EditorBio        string                      `json:"editorBio"`
	EditorImageURL   string                      `json:"editorImageUrl"`
	EditorTwitterURL string                      `json:"editorTwitterUrl"`
	CreatedAt        time.Time                   `json:"createdAt"`
	UpdatedAt        time.Time                   `json:"updatedAt"`
}

func (About) TableName() string {
	return "about"
}

func DefaultAbout() About {
	return About{
		ID:           AboutSingletonID,
		HeadingTop:   "Our Story",
		Title:        "Curating the Quiet Moments",
		Subtitle:     "Editorial is a digital sanctuary for those who appreciate thoughtful design, slow living, and the art of storytelling.",
		HeroImageURL: "https://images.unsplash.com/photo-1497215728101-856f4ea42174?q=80&w=2070&auto=format&fit=crop",
		Lead:         "We started Editorial in 2024 with a simple mission: to create a space on the internet that feels like a deep breath.",
		Paragraphs: datatypes.JSONSlice[string]{
			"In a world of infinite scrolling and bite-sized content, we wanted to bring back the feeling of sitting down with a beautiful magazine on a Sunday morning.",
			"Our team consists of writers, designers, and photographers who believe that quality matters more than quantity.",
		},
		EditorName:     "Eleanor P.",
		EditorRole:     "Founder & Editor-in-Chief",
		EditorBio:      "Eleanor is a writer and designer based in Kyoto. She has spent the last decade exploring the intersection of minimalism, traditional craftsmanship, and modern technology.",
		EditorImageURL: "/assets/author-portrait.jpg",
	}
}

type UpdateAboutRequest struct {
	HeadingTop       *string   `json:"headingTop"`
	Title            *string   `json:"title" binding:"omitempty,min=1"`
	Subtitle         *string   `json:"subtitle"`
	HeroImageURL     *string   `json:"heroImageUrl"`
	Lead             *string   `json:"lead"`
	Paragraphs       *[]string `json:"paragraphs"`
	EditorName       *string   `json:"editorName"`
	EditorRole       *string   `json:"editorRole"`
	EditorBio        *string   `json:"editorBio"`
	EditorImageURL   *string   `json:"editorImageUrl"`
	EditorTwitterURL *string   `json:"editorTwitterUrl"`
}
