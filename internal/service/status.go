package service

import (
	"context"
	"time"

	"go-articles/internal/model"
	"gorm.io/gorm"
)

type StatusService struct {
	db *gorm.DB
}

type SystemStatus struct {
	// article counts
	TotalArticles       int64 `json:"total_articles"`
	PublishedArticles   int64 `json:"published_articles"`
	UnconfirmedArticles int64 `json:"unconfirmed_articles"`
	TrashedArticles     int64 `json:"trashed_articles"`

	Authors int64 `json:"authors"`

	NextReportTime time.Time `json:"next_report_time"`
}

func NewStatusService(db *gorm.DB) *StatusService {
	return &StatusService{db: db}
}

// GetSystemStatus counts articles by lifecycle state.
func (s *StatusService) GetSystemStatus(ctx context.Context) (*SystemStatus, error) {
	status := &SystemStatus{}
	db := s.db.WithContext(ctx)

	counts := []struct {
		query *gorm.DB
		dest  *int64
	}{
		{db.Unscoped().Model(&model.Article{}), &status.TotalArticles},
		{db.Model(&model.Article{}).Where("confirmed = ?", true), &status.PublishedArticles},
		{db.Model(&model.Article{}).Where("confirmed = ?", false), &status.UnconfirmedArticles},
		{db.Unscoped().Model(&model.Article{}).Where("deleted_at IS NOT NULL"), &status.TrashedArticles},
		{db.Unscoped().Model(&model.Article{}).Distinct("user_id"), &status.Authors},
	}

	for _, c := range counts {
		if err := c.query.Count(c.dest).Error; err != nil {
			return nil, err
		}
	}

	return status, nil
}
