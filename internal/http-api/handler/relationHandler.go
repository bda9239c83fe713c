package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"moviehub/internal/http-api/dto"
	"moviehub/internal/http-api/middleware"
	"moviehub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type RelationHandler struct {
	svc service.RelationService
}

func NewRelationHandler(svc service.RelationService) *RelationHandler {
	return &RelationHandler{svc: svc}
}

func (h *RelationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.PATCH("/:movie_id", middleware.RequireAuthenticated(), h.Patch)
}

// Patch handles PATCH /api/relations/:movie_id, a partial update of the
// caller's own relation to that movie. The actor is always the request
// identity; any user/movie fields in the body are simply ignored.
func (h *RelationHandler) Patch(c *gin.Context) {
	movieID, err := strconv.ParseInt(c.Param("movie_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid movie ID"})
		return
	}

	userID := middleware.CurrentUserID(c)
	if userID == "" {
		c.JSON(http.StatusForbidden, gin.H{"detail": middleware.MsgNotAuthenticated})
		return
	}

	var patch dto.RelationPatchDTO
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	rel, err := h.svc.ApplyPatch(ctx, userID, movieID, patch)
	if err != nil {
		var verr *service.ValidationError
		switch {
		case errors.As(err, &verr):
			c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message, "field": verr.Field})
		case errors.Is(err, service.ErrMovieNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "movie not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, dto.FromModelToRelationResponse(rel))
}
