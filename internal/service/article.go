package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-articles/internal/model"
)

// ArticleService applies the article lifecycle on behalf of an explicit actor.
type ArticleService struct {
	db       *gorm.DB
	logger   *zap.Logger
	validate *validator.Validate
}

func NewArticleService(db *gorm.DB, logger *zap.Logger) *ArticleService {
	return &ArticleService{
		db:       db,
		logger:   logger,
		validate: newValidator(),
	}
}

// find loads an article whether or not it is in the trash.
func (s *ArticleService) find(ctx context.Context, id uint) (*model.Article, error) {
	var article model.Article
	if err := s.db.WithContext(ctx).Unscoped().First(&article, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load article %d: %w", id, err)
	}
	return &article, nil
}

// authorize loads the article an owner-only action targets. Ownership is checked before
// the lifecycle state: non-owners are denied in any state.
func (s *ArticleService) authorize(ctx context.Context, actor model.Actor, id uint, action model.Action) (*model.Article, error) {
	article, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if !CanMutate(actor, article) {
		s.logger.Info("Mutation denied",
			zap.Uint("article_id", id),
			zap.Uint("actor_id", actor.ID),
			zap.String("action", string(action)))
		return nil, ErrPermissionDenied
	}

	if !article.Permits(action) {
		return nil, ErrNotFound
	}
	return article, nil
}

// CreateDraft stores a new unconfirmed article owned by actor.
func (s *ArticleService) CreateDraft(ctx context.Context, actor model.Actor, in DraftInput) (*model.Article, error) {
	if actor.Guest() {
		return nil, ErrPermissionDenied
	}

	in.normalize()
	if err := validateInput(s.validate, &in); err != nil {
		return nil, err
	}

	article := model.NewArticle(actor, in.Title, in.Content)
	if err := s.db.WithContext(ctx).Create(&article).Error; err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}

	s.logger.Info("Draft created", zap.Uint("article_id", article.ID), zap.Uint("actor_id", actor.ID))
	return &article, nil
}

// Confirm publishes a draft. Confirming an already published article is a no-op.
func (s *ArticleService) Confirm(ctx context.Context, actor model.Actor, id uint) (*model.Article, error) {
	article, err := s.authorize(ctx, actor, id, model.ActionConfirm)
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(article).Update("confirmed", true).Error; err != nil {
		return nil, fmt.Errorf("confirm article %d: %w", id, err)
	}
	article.Confirmed = true

	s.logger.Info("Article published", zap.Uint("article_id", id))
	return article, nil
}

// Editable returns an active article for its owner, for the edit form and the trash
// confirmation step.
func (s *ArticleService) Editable(ctx context.Context, actor model.Actor, id uint) (*model.Article, error) {
	return s.authorize(ctx, actor, id, model.ActionEdit)
}

// Update replaces title and content. Ownership is checked before the input is validated.
func (s *ArticleService) Update(ctx context.Context, actor model.Actor, id uint, in UpdateInput) (*model.Article, error) {
	article, err := s.authorize(ctx, actor, id, model.ActionEdit)
	if err != nil {
		return nil, err
	}

	in.normalize()
	if err := validateInput(s.validate, &in); err != nil {
		return nil, err
	}

	article.Revise(in.Title, in.Content)
	err = s.db.WithContext(ctx).Model(article).
		Select("title", "content").
		Updates(article).Error
	if err != nil {
		return nil, fmt.Errorf("update article %d: %w", id, err)
	}
	return article, nil
}

// SoftDelete moves an article to its owner's trash.
func (s *ArticleService) SoftDelete(ctx context.Context, actor model.Actor, id uint) error {
	article, err := s.authorize(ctx, actor, id, model.ActionSoftDelete)
	if err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Delete(article).Error; err != nil {
		return fmt.Errorf("trash article %d: %w", id, err)
	}

	s.logger.Info("Article trashed", zap.Uint("article_id", id))
	return nil
}

// Trashed returns a trashed article for its owner, for the force delete confirmation step.
func (s *ArticleService) Trashed(ctx context.Context, actor model.Actor, id uint) (*model.Article, error) {
	return s.authorize(ctx, actor, id, model.ActionForceDelete)
}

// Restore takes an article out of the trash. Its confirmed flag is untouched.
func (s *ArticleService) Restore(ctx context.Context, actor model.Actor, id uint) error {
	article, err := s.authorize(ctx, actor, id, model.ActionRestore)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Unscoped().Model(article).Update("deleted_at", nil).Error
	if err != nil {
		return fmt.Errorf("restore article %d: %w", id, err)
	}

	s.logger.Info("Article restored", zap.Uint("article_id", id))
	return nil
}

// ForceDelete erases a trashed article.
func (s *ArticleService) ForceDelete(ctx context.Context, actor model.Actor, id uint) error {
	article, err := s.authorize(ctx, actor, id, model.ActionForceDelete)
	if err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Unscoped().Delete(article).Error; err != nil {
		return fmt.Errorf("force delete article %d: %w", id, err)
	}

	s.logger.Info("Article erased", zap.Uint("article_id", id))
	return nil
}

// Show returns the article if actor may read it.
func (s *ArticleService) Show(ctx context.Context, actor model.Actor, id uint) (*model.Article, error) {
	article, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if !CanRead(actor, article) {
		return nil, ErrNotFound
	}
	return article, nil
}

// ListPublished returns confirmed articles that are not in the trash.
func (s *ArticleService) ListPublished(ctx context.Context) ([]model.Article, error) {
	var articles []model.Article
	err := s.db.WithContext(ctx).
		Where("confirmed = ?", true).
		Order("id DESC").
		Find(&articles).Error
	if err != nil {
		return nil, fmt.Errorf("list published: %w", err)
	}
	return articles, nil
}

// ListOwned returns actor's articles outside the trash, drafts included.
func (s *ArticleService) ListOwned(ctx context.Context, actor model.Actor) ([]model.Article, error) {
	var articles []model.Article
	err := s.db.WithContext(ctx).
		Where("user_id = ?", actor.ID).
		Order("id DESC").
		Find(&articles).Error
	if err != nil {
		return nil, fmt.Errorf("list owned: %w", err)
	}
	return articles, nil
}

// ListTrashed returns actor's trash.
func (s *ArticleService) ListTrashed(ctx context.Context, actor model.Actor) ([]model.Article, error) {
	var articles []model.Article
	err := s.db.WithContext(ctx).Unscoped().
		Where("user_id = ? AND deleted_at IS NOT NULL", actor.ID).
		Order("id DESC").
		Find(&articles).Error
	if err != nil {
		return nil, fmt.Errorf("list trashed: %w", err)
	}
	return articles, nil
}
