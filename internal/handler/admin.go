package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (h *Handler) AdminList(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	result, err := h.admin.ListConfirmed(c.Request.Context(), page)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, "admin_index.html", gin.H{"Title": "Admin", "Page": result})
}

// AdminShow displays any article without visibility checks.
func (h *Handler) AdminShow(c *gin.Context) {
	id, err := articleID(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	article, err := h.admin.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, "admin_show.html", gin.H{"Title": article.Title, "Article": article})
}

// AdminDownload streams the confirmed articles as a CSV attachment. Failures before the
// first byte reaches the client turn into an error page instead of an empty file.
func (h *Handler) AdminDownload(c *gin.Context) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="articles.csv"`)

	if _, err := h.admin.ExportCSV(c.Request.Context(), c.Writer); err != nil {
		if !c.Writer.Written() {
			c.Writer.Header().Del("Content-Type")
			c.Writer.Header().Del("Content-Disposition")
			h.fail(c, err)
			return
		}
		h.logger.Error("CSV export failed mid-stream", zap.Error(err))
		c.Abort()
	}
}
