package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func trashed(a Article) Article {
	a.DeletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	return a
}

func TestArticle_State(t *testing.T) {
	owner := Actor{ID: 7}
	draft := NewArticle(owner, "Hi", "Hello world")
	published := draft
	published.Confirmed = true

	assert.Equal(t, StateUnconfirmed, draft.State())
	assert.Equal(t, StateConfirmed, published.State())

	trashedPublished := trashed(published)
	assert.Equal(t, StateTrashed, trashedPublished.State())
	assert.True(t, trashedPublished.Confirmed, "trashing leaves the confirmed flag alone")
	assert.False(t, trashedPublished.Published())
	assert.True(t, published.Published())
}

func TestArticle_Permits(t *testing.T) {
	draft := NewArticle(Actor{ID: 1}, "Hi", "Hello")
	published := draft
	published.Confirmed = true
	trashedDraft := trashed(draft)

	tests := []struct {
		name    string
		article Article
		action  Action
		want    bool
	}{
		{"confirm draft", draft, ActionConfirm, true},
		{"confirm published is idempotent", published, ActionConfirm, true},
		{"confirm trashed", trashedDraft, ActionConfirm, false},
		{"edit draft", draft, ActionEdit, true},
		{"edit published", published, ActionEdit, true},
		{"edit trashed", trashedDraft, ActionEdit, false},
		{"trash draft", draft, ActionSoftDelete, true},
		{"trash trashed", trashedDraft, ActionSoftDelete, false},
		{"restore active", published, ActionRestore, false},
		{"restore trashed", trashedDraft, ActionRestore, true},
		{"force delete active", draft, ActionForceDelete, false},
		{"force delete trashed", trashedDraft, ActionForceDelete, true},
		{"unknown action", draft, Action("publish"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.article.Permits(tt.action))
		})
	}
}

func TestArticle_OwnedBy(t *testing.T) {
	a := NewArticle(Actor{ID: 3}, "Hi", "Hello")

	assert.True(t, a.OwnedBy(Actor{ID: 3}))
	assert.False(t, a.OwnedBy(Actor{ID: 4}))
	assert.False(t, a.OwnedBy(Actor{ID: 4, Admin: true}), "admins have no override")
	assert.False(t, (&Article{}).OwnedBy(Actor{}), "guests never own anything")
}

func TestArticle_Revise(t *testing.T) {
	a := NewArticle(Actor{ID: 3}, "Hi", "Hello")
	a.Confirmed = true
	a.Revise("Bye", "Goodbye")

	assert.Equal(t, "Bye", a.Title)
	assert.Equal(t, "Goodbye", a.Content)
	assert.Equal(t, uint(3), a.UserID)
	assert.True(t, a.Confirmed)
}
