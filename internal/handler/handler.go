package handler

import (
	"embed"
	"errors"
	"html/template"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-articles/config"
	"go-articles/internal/service"
)

//go:embed templates/*.html
var templateFS embed.FS

type Handler struct {
	articles  *service.ArticleService
	admin     *service.AdminService
	status    *service.StatusService
	auth      config.AuthConfig
	logger    *zap.Logger
	scheduler interface {
		NextReportTime() time.Time
	}
}

func NewHandler(db *gorm.DB, cfg *config.Config, logger *zap.Logger) *Handler {
	return &Handler{
		articles: service.NewArticleService(db, logger),
		admin:    service.NewAdminService(db, logger, cfg.Admin.PageSize),
		status:   service.NewStatusService(db),
		auth:     cfg.Auth,
		logger:   logger,
	}
}

// SetScheduler lets the status endpoint report the next scheduled run.
func (h *Handler) SetScheduler(scheduler interface {
	NextReportTime() time.Time
}) {
	h.scheduler = scheduler
}

// NewEngine builds a gin engine with recovery, zap request logging and the embedded templates.
func NewEngine(logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(recovery(logger), requestLogger(logger))
	r.SetHTMLTemplate(parseTemplates())
	return r
}

func parseTemplates() *template.Template {
	funcs := template.FuncMap{
		"date": func(t time.Time) string {
			return t.Format("2006-01-02 15:04")
		},
	}
	return template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html"))
}

// recovery turns a panic into a 500 and reports it through zap instead of gin's stderr writer.
func recovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		logger.Error("Panic recovered",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Any("panic", recovered),
			zap.Stack("stack"))
		c.AbortWithStatus(http.StatusInternalServerError)
	})
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("Request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.Use(h.identify)

	r.GET("/", h.IndexPage)
	r.GET("/dashboard", h.Dashboard)

	// public
	r.GET("/articles", h.ListPublished)
	r.GET("/articles/:id", h.Show)

	// signed in
	user := r.Group("/articles", h.requireUser)
	{
		user.GET("/mypage", h.MyPage)
		user.GET("/trash", h.Trash)

		user.GET("/create", h.CreateForm)
		user.POST("/create/confirm", h.CreateConfirm)
		user.POST("/:id/store", h.Store)

		user.GET("/:id/edit", h.EditForm)
		user.POST("/:id", h.Update)
		user.PUT("/:id", h.Update)

		user.GET("/:id/delete", h.DestroyConfirm)
		user.POST("/:id/delete", h.Destroy)
		user.DELETE("/:id/delete", h.Destroy)

		user.POST("/:id/restore", h.Restore)

		user.GET("/:id/force-delete", h.ForceDeleteConfirm)
		user.POST("/:id/force-delete", h.ForceDelete)
		user.DELETE("/:id/force-delete", h.ForceDelete)
	}

	admin := r.Group("/admin", h.requireAdmin)
	{
		admin.GET("/articles", h.AdminList)
		admin.GET("/articles/download", h.AdminDownload)
		admin.GET("/articles/:id", h.AdminShow)
		admin.GET("/status", h.GetStatus)
	}
}

// render adds the current actor to the template data.
func (h *Handler) render(c *gin.Context, code int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Actor"] = actorFrom(c)
	c.HTML(code, name, data)
}

func (h *Handler) renderError(c *gin.Context, code int, message string) {
	h.render(c, code, "error.html", gin.H{
		"Title":   http.StatusText(code),
		"Status":  code,
		"Message": message,
	})
	c.Abort()
}

// fail maps service errors onto responses. Permission failures are deliberately quiet:
// the actor lands on the dashboard without an error message.
func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPermissionDenied):
		c.Redirect(http.StatusFound, "/dashboard")
	case errors.Is(err, service.ErrNotFound):
		h.renderError(c, http.StatusNotFound, "The article could not be found.")
	default:
		h.logger.Error("Request failed",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err))
		h.renderError(c, http.StatusInternalServerError, "Something went wrong.")
	}
}

// articleID parses the :id path parameter. Malformed ids are reported as not found.
func articleID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, strconv.IntSize)
	if err != nil || id == 0 {
		return 0, service.ErrNotFound
	}
	return uint(id), nil
}

func (h *Handler) IndexPage(c *gin.Context) {
	c.Redirect(http.StatusFound, "/articles")
}

func (h *Handler) Dashboard(c *gin.Context) {
	h.render(c, http.StatusOK, "dashboard.html", gin.H{"Title": "Dashboard"})
}

func (h *Handler) GetStatus(c *gin.Context) {
	status, err := h.status.GetSystemStatus(c.Request.Context())
	if err != nil {
		h.logger.Error("Status query failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if h.scheduler != nil {
		status.NextReportTime = h.scheduler.NextReportTime()
	}

	c.JSON(http.StatusOK, status)
}
