package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"go-articles/internal/model"
)

const actorKey = "actor"

// identify reads the identity headers set by the authenticating proxy. Requests without
// a valid user id run as a guest.
func (h *Handler) identify(c *gin.Context) {
	var actor model.Actor

	id, err := strconv.ParseUint(c.GetHeader(h.auth.UserHeader), 10, strconv.IntSize)
	if err == nil && id > 0 {
		actor.ID = uint(id)
		actor.Admin = h.auth.AdminRole != "" && c.GetHeader(h.auth.RoleHeader) == h.auth.AdminRole
	}

	c.Set(actorKey, actor)
	c.Next()
}

func actorFrom(c *gin.Context) model.Actor {
	if v, ok := c.Get(actorKey); ok {
		if actor, ok := v.(model.Actor); ok {
			return actor
		}
	}
	return model.Actor{}
}

func (h *Handler) requireUser(c *gin.Context) {
	if actorFrom(c).Guest() {
		h.renderError(c, http.StatusUnauthorized, "Please sign in.")
		return
	}
	c.Next()
}

func (h *Handler) requireAdmin(c *gin.Context) {
	actor := actorFrom(c)
	if actor.Guest() {
		h.renderError(c, http.StatusUnauthorized, "Please sign in.")
		return
	}
	if !actor.Admin {
		h.renderError(c, http.StatusForbidden, "Administrators only.")
		return
	}
	c.Next()
}
