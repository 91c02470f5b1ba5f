package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"portfolio-backend/internal/app"
	"portfolio-backend/internal/transport/http/response"
)

type WorksHandler struct {
	portfolioService *app.PortfolioService
}

type workActionRequest struct {
	Action      string `json:"action"`
	UserID      uint   `json:"user_id"`
	WorkID      uint   `json:"work_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

func NewWorksHandler(portfolioService *app.PortfolioService) *WorksHandler {
	return &WorksHandler{portfolioService: portfolioService}
}

// List handles GET /api/works. A favorites request without a viewer falls
// back to the full listing, matching what the frontend has always relied on.
func (h *WorksHandler) List(c *gin.Context) {
	viewerID := parseUintQuery(c, "user_id")
	mode := c.DefaultQuery("action", app.ListModeAll)
	if mode == app.ListModeFavorites && viewerID == 0 {
		mode = app.ListModeAll
	}

	works, err := h.portfolioService.ListWorks(viewerID, mode)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	response.OK(c, gin.H{"works": works})
}

// Handle dispatches POST /api/works on the action discriminator in the body.
func (h *WorksHandler) Handle(c *gin.Context) {
	var req workActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	switch req.Action {
	case "add_work":
		h.addWork(c, req)
	case "toggle_favorite":
		h.toggleFavorite(c, req)
	default:
		response.MethodNotAllowed(c)
	}
}

func (h *WorksHandler) addWork(c *gin.Context, req workActionRequest) {
	work, err := h.portfolioService.CreateWork(app.CreateWorkInput{
		UserID:      req.UserID,
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		if errors.Is(err, app.ErrInvalidInput) {
			response.Error(c, http.StatusBadRequest, "Image URL required")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	response.OK(c, gin.H{"success": true, "work": work})
}

func (h *WorksHandler) toggleFavorite(c *gin.Context, req workActionRequest) {
	isFavorite, err := h.portfolioService.ToggleFavorite(req.UserID, req.WorkID)
	if err != nil {
		if errors.Is(err, app.ErrInvalidInput) {
			response.Error(c, http.StatusBadRequest, "User ID and work ID required")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	response.OK(c, gin.H{"success": true, "is_favorite": isFavorite})
}

// Delete handles DELETE /api/works?work_id=N.
func (h *WorksHandler) Delete(c *gin.Context) {
	workID := parseUintQuery(c, "work_id")
	if workID == 0 {
		response.Error(c, http.StatusBadRequest, "Work ID required")
		return
	}

	if err := h.portfolioService.DeleteWork(workID); err != nil {
		response.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	response.OK(c, gin.H{"success": true})
}

func parseUintQuery(c *gin.Context, key string) uint {
	raw := c.Query(key)
	if raw == "" {
		return 0
	}
	parsed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0
	}
	return uint(parsed)
}
