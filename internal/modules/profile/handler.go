package profile

import (
	"errors"
	"net/http"

	"researchhub/internal/middleware"
	"researchhub/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/profile", h.Get)
	rg.PATCH("/profile", h.Update)
	rg.GET("/profile/submissions", h.Submissions)
}

func writeServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Account is not approved for this action")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Account not found")
	case errors.Is(err, ErrConflict):
		response.Error(c, http.StatusConflict, "CONFLICT", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}

func (h *Handler) Get(c *gin.Context) {
	actor, ok := middleware.AccountFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	account, caps, err := h.service.Get(c.Request.Context(), actor)
	if err != nil {
		writeServiceError(c, err, "Failed to load profile")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"account":      account.Sanitized(),
		"capabilities": caps.List(),
	})
}

func (h *Handler) Update(c *gin.Context) {
	actor, ok := middleware.AccountFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	account, err := h.service.Update(c.Request.Context(), actor, req)
	if err != nil {
		writeServiceError(c, err, "Failed to update profile")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"account": account.Sanitized()})
}

func (h *Handler) Submissions(c *gin.Context) {
	actor, ok := middleware.AccountFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	submissions, err := h.service.Submissions(c.Request.Context(), actor)
	if err != nil {
		writeServiceError(c, err, "Failed to load submissions")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"submissions": submissions})
}
