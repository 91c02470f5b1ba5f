package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio-backend/internal/repository"
	"portfolio-backend/internal/transport/http/response"
)

type ActivityHandler struct {
	activityRepo *repository.ActivityRepository
}

func NewActivityHandler(activityRepo *repository.ActivityRepository) *ActivityHandler {
	return &ActivityHandler{activityRepo: activityRepo}
}

// List handles GET /api/activity?limit=N, newest first.
func (h *ActivityHandler) List(c *gin.Context) {
	limit := parseUintQuery(c, "limit")

	events, err := h.activityRepo.ListRecent(int(limit))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	response.OK(c, gin.H{"events": events})
}
