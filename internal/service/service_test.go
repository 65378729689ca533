package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"go-articles/internal/model"
)

var (
	owner    = model.Actor{ID: 1}
	stranger = model.Actor{ID: 2}
	admin    = model.Actor{ID: 3, Admin: true}
	guest    = model.Actor{}
)

// newTestDB opens a migrated sqlite database in a per-test directory.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Article{}))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func newTestArticleService(t *testing.T) (*ArticleService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewArticleService(db, zap.NewNop()), db
}

// seedPublished creates and confirms an article for actor.
func seedPublished(t *testing.T, svc *ArticleService, actor model.Actor, title string) *model.Article {
	t.Helper()
	ctx := context.Background()

	article, err := svc.CreateDraft(ctx, actor, DraftInput{Title: title, Content: "body of " + title})
	require.NoError(t, err)
	article, err = svc.Confirm(ctx, actor, article.ID)
	require.NoError(t, err)
	return article
}

func ids(articles []model.Article) []uint {
	out := make([]uint, 0, len(articles))
	for _, a := range articles {
		out = append(out, a.ID)
	}
	return out
}
