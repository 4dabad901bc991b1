package moderation

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"researchhub/internal/domain"
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

func (h *Handler) RegisterRoutes(admin *gin.RouterGroup) {
	admin.GET("/registrations", h.ListRegistrations)
	admin.GET("/registrations/export", h.ExportRegistrations)
	admin.DELETE("/registrations/:id", h.DeleteRegistration)
	admin.PATCH("/accounts/:id/moderate", h.ModerateAccount)
	admin.GET("/stats", h.GetStatistics)
}

func (h *Handler) ModerateAccount(c *gin.Context) {
	actor, ok := middleware.AccountFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	targetID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid account ID")
		return
	}

	var req ModerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	account, err := h.service.ApplyModeration(c.Request.Context(), actor, targetID, req.Action)
	if err != nil {
		var ite *domain.InvalidTransitionError
		switch {
		case errors.Is(err, ErrForbidden):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Admin access required")
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Account not found")
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		case errors.As(err, &ite):
			response.ErrorWithDetails(c, http.StatusConflict, "INVALID_TRANSITION", ite.Error(), gin.H{
				"current_status": ite.From,
				"action":         ite.Action,
			})
		case errors.Is(err, ErrConflict):
			response.Error(c, http.StatusConflict, "CONFLICT", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to moderate account")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"account": account})
}

func (h *Handler) ListRegistrations(c *gin.Context) {
	actor, ok := middleware.AccountFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	status := domain.AccountStatus(c.Query("status"))

	entries, pagination, err := h.service.ListRegistrations(c.Request.Context(), actor, page, limit, status)
	if err != nil {
		if errors.Is(err, ErrForbidden) {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Admin access required")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list registrations")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"registrations": entries,
		"pagination":    pagination,
	})
}

func (h *Handler) DeleteRegistration(c *gin.Context) {
	actor, ok := middleware.AccountFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	accountID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid account ID")
		return
	}

	if err := h.service.DeleteRegistration(c.Request.Context(), actor, accountID); err != nil {
		switch {
		case errors.Is(err, ErrForbidden):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Admin access required")
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Account not found")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete registration")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": accountID})
}

func (h *Handler) ExportRegistrations(c *gin.Context) {
	actor, ok := middleware.AccountFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	status := domain.AccountStatus(c.Query("status"))
	records, err := h.service.ExportRegistrations(c.Request.Context(), actor, status)
	if err != nil {
		if errors.Is(err, ErrForbidden) {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Admin access required")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to export registrations")
		return
	}

	filename := fmt.Sprintf("registrations_%s.csv", time.Now().Format("20060102"))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Status(http.StatusOK)

	if err := WriteRegistrationsCSV(c.Writer, records); err != nil {
		_ = c.Error(err)
	}
}

func (h *Handler) GetStatistics(c *gin.Context) {
	actor, ok := middleware.AccountFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	stats, err := h.service.GetStatistics(c.Request.Context(), actor)
	if err != nil {
		if errors.Is(err, ErrForbidden) {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Admin access required")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load statistics")
		return
	}

	response.Success(c, http.StatusOK, stats)
}
