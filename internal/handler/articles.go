package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-articles/internal/service"
)

func (h *Handler) ListPublished(c *gin.Context) {
	articles, err := h.articles.ListPublished(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, "index.html", gin.H{"Title": "Articles", "Articles": articles})
}

func (h *Handler) MyPage(c *gin.Context) {
	articles, err := h.articles.ListOwned(c.Request.Context(), actorFrom(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, "index.html", gin.H{"Title": "My page", "Articles": articles, "Owned": true})
}

func (h *Handler) Trash(c *gin.Context) {
	articles, err := h.articles.ListTrashed(c.Request.Context(), actorFrom(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, "index.html", gin.H{"Title": "Trash", "Articles": articles, "Trash": true})
}

func (h *Handler) Show(c *gin.Context) {
	id, err := articleID(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	actor := actorFrom(c)
	article, err := h.articles.Show(c.Request.Context(), actor, id)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.render(c, http.StatusOK, "show.html", gin.H{
		"Title":   article.Title,
		"Article": article,
		"Owner":   service.CanMutate(actor, article),
	})
}

func (h *Handler) CreateForm(c *gin.Context) {
	h.render(c, http.StatusOK, "create.html", gin.H{"Title": "New article", "Input": service.DraftInput{}})
}

// CreateConfirm stores the submission as an unconfirmed draft and asks the author to publish it.
func (h *Handler) CreateConfirm(c *gin.Context) {
	var in service.DraftInput
	if err := c.ShouldBind(&in); err != nil {
		h.logger.Debug("Form binding failed", zap.Error(err))
	}

	article, err := h.articles.CreateDraft(c.Request.Context(), actorFrom(c), in)
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		h.render(c, http.StatusUnprocessableEntity, "create.html", gin.H{
			"Title":  "New article",
			"Input":  in,
			"Errors": verr.Fields,
		})
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}

	h.render(c, http.StatusOK, "create_confirm.html", gin.H{"Title": "Confirm", "Article": article})
}

// Store publishes a draft.
func (h *Handler) Store(c *gin.Context) {
	id, err := articleID(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	if _, err := h.articles.Confirm(c.Request.Context(), actorFrom(c), id); err != nil {
		h.fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/dashboard")
}

func (h *Handler) EditForm(c *gin.Context) {
	id, err := articleID(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	article, err := h.articles.Editable(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.render(c, http.StatusOK, "edit.html", gin.H{
		"Title": "Edit article",
		"ID":    article.ID,
		"Input": service.UpdateInput{Title: article.Title, Content: article.Content},
	})
}

func (h *Handler) Update(c *gin.Context) {
	id, err := articleID(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	var in service.UpdateInput
	if err := c.ShouldBind(&in); err != nil {
		h.logger.Debug("Form binding failed", zap.Error(err))
	}

	_, err = h.articles.Update(c.Request.Context(), actorFrom(c), id, in)
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		h.render(c, http.StatusUnprocessableEntity, "edit.html", gin.H{
			"Title":  "Edit article",
			"ID":     id,
			"Input":  in,
			"Errors": verr.Fields,
		})
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/dashboard")
}

func (h *Handler) DestroyConfirm(c *gin.Context) {
	id, err := articleID(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	article, err := h.articles.Editable(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, "destroy_confirm.html", gin.H{"Title": "Delete", "Article": article})
}

func (h *Handler) Destroy(c *gin.Context) {
	id, err := articleID(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	if err := h.articles.SoftDelete(c.Request.Context(), actorFrom(c), id); err != nil {
		h.fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/articles/mypage")
}

func (h *Handler) Restore(c *gin.Context) {
	id, err := articleID(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	if err := h.articles.Restore(c.Request.Context(), actorFrom(c), id); err != nil {
		h.fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/articles/mypage")
}

func (h *Handler) ForceDeleteConfirm(c *gin.Context) {
	id, err := articleID(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	article, err := h.articles.Trashed(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, "force_delete_confirm.html", gin.H{"Title": "Delete permanently", "Article": article})
}

func (h *Handler) ForceDelete(c *gin.Context) {
	id, err := articleID(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	if err := h.articles.ForceDelete(c.Request.Context(), actorFrom(c), id); err != nil {
		h.fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/articles/mypage")
}
