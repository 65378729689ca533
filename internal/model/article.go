package model

import (
	"time"

	"gorm.io/gorm"
)

// Article is a short text post owned by a single user. Confirmed and DeletedAt are
// independent: trashing an article leaves its confirmed flag as it was.
type Article struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Title     string         `gorm:"size:255;not null" json:"title"`
	Content   string         `gorm:"type:text;not null" json:"content"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	Confirmed bool           `gorm:"not null;default:false;index" json:"confirmed"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at"`
}

// NewArticle builds an unconfirmed article owned by owner.
func NewArticle(owner Actor, title, content string) Article {
	return Article{
		Title:   title,
		Content: content,
		UserID:  owner.ID,
	}
}

// Revise replaces the editable fields.
func (a *Article) Revise(title, content string) {
	a.Title = title
	a.Content = content
}

// Trashed reports whether the article is soft-deleted.
func (a *Article) Trashed() bool {
	return a.DeletedAt.Valid
}

// OwnedBy reports whether actor is the article's author. Guests own nothing.
func (a *Article) OwnedBy(actor Actor) bool {
	return !actor.Guest() && a.UserID == actor.ID
}
