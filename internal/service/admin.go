package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-articles/internal/model"
)

// CSVHeader is the column order of the admin export.
var CSVHeader = []string{"id", "title", "created_at", "updated_at", "user_id", "confirmed", "deleted_at"}

const csvTimeLayout = "2006-01-02 15:04:05"

// AdminService serves the read-only admin views. Its filter is confirmed = true only,
// so trashed articles that were published stay listed.
type AdminService struct {
	db       *gorm.DB
	logger   *zap.Logger
	pageSize int
}

func NewAdminService(db *gorm.DB, logger *zap.Logger, pageSize int) *AdminService {
	if pageSize <= 0 {
		pageSize = 15
	}
	return &AdminService{db: db, logger: logger, pageSize: pageSize}
}

// Page is one slice of the admin listing.
type Page struct {
	Articles []model.Article
	Total    int64
	Page     int
	PageSize int
	LastPage int
}

func (p Page) HasPrev() bool { return p.Page > 1 }
func (p Page) HasNext() bool { return p.Page < p.LastPage }
func (p Page) Prev() int     { return p.Page - 1 }
func (p Page) Next() int     { return p.Page + 1 }

func (s *AdminService) confirmed(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Unscoped().Model(&model.Article{}).Where("confirmed = ?", true)
}

// ListConfirmed returns the given page of confirmed articles. Pages start at 1.
func (s *AdminService) ListConfirmed(ctx context.Context, page int) (Page, error) {
	if page < 1 {
		page = 1
	}

	result := Page{Page: page, PageSize: s.pageSize}
	if err := s.confirmed(ctx).Count(&result.Total).Error; err != nil {
		return Page{}, fmt.Errorf("count confirmed: %w", err)
	}

	result.LastPage = int((result.Total + int64(s.pageSize) - 1) / int64(s.pageSize))
	if result.LastPage < 1 {
		result.LastPage = 1
	}

	err := s.confirmed(ctx).
		Order("id DESC").
		Offset((page - 1) * s.pageSize).
		Limit(s.pageSize).
		Find(&result.Articles).Error
	if err != nil {
		return Page{}, fmt.Errorf("list confirmed: %w", err)
	}
	return result, nil
}

// Get returns any article, trashed or not.
func (s *AdminService) Get(ctx context.Context, id uint) (*model.Article, error) {
	var article model.Article
	if err := s.db.WithContext(ctx).Unscoped().First(&article, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load article %d: %w", id, err)
	}
	return &article, nil
}

// ExportCSV writes every confirmed article to w and returns the number of data rows.
func (s *AdminService) ExportCSV(ctx context.Context, w io.Writer) (int, error) {
	rows, err := s.confirmed(ctx).Order("id ASC").Rows()
	if err != nil {
		return 0, fmt.Errorf("query export: %w", err)
	}
	defer rows.Close()

	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return 0, err
	}

	var n int
	for rows.Next() {
		var article model.Article
		if err := s.db.ScanRows(rows, &article); err != nil {
			return n, fmt.Errorf("scan export row: %w", err)
		}
		if err := cw.Write(csvRecord(&article)); err != nil {
			return n, err
		}
		n++
	}
	if err := rows.Err(); err != nil {
		return n, fmt.Errorf("iterate export: %w", err)
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return n, err
	}

	s.logger.Info("CSV export written", zap.Int("rows", n))
	return n, nil
}

func csvRecord(a *model.Article) []string {
	confirmed := "0"
	if a.Confirmed {
		confirmed = "1"
	}

	var deletedAt string
	if a.DeletedAt.Valid {
		deletedAt = formatTime(a.DeletedAt.Time)
	}

	return []string{
		strconv.FormatUint(uint64(a.ID), 10),
		a.Title,
		formatTime(a.CreatedAt),
		formatTime(a.UpdatedAt),
		strconv.FormatUint(uint64(a.UserID), 10),
		confirmed,
		deletedAt,
	}
}

func formatTime(t time.Time) string {
	return t.Format(csvTimeLayout)
}
