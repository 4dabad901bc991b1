package content

import (
	"errors"
	"net/http"
	"strconv"

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

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/content/:kind", h.ListPublished)
	rg.GET("/content/:kind/:id", h.GetPublished)
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/content/:kind", h.Submit)
	rg.PATCH("/content/:kind/:id", h.Edit)
}

func (h *Handler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	admin.GET("/content/:kind", h.ListAll)
	admin.DELETE("/content/:kind/:id", h.Delete)
}

func kindParam(c *gin.Context) (domain.ContentKind, bool) {
	kind := domain.ContentKind(c.Param("kind"))
	if !domain.ValidContentKind(kind) {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Content kind must be research or project")
		return "", false
	}
	return kind, true
}

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid content ID")
		return 0, false
	}
	return id, true
}

func writeServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", err.Error())
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Content item not found")
	case errors.Is(err, ErrConflict):
		response.Error(c, http.StatusConflict, "CONFLICT", err.Error())
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}

func (h *Handler) ListPublished(c *gin.Context) {
	kind, ok := kindParam(c)
	if !ok {
		return
	}

	q := ListQuery{
		Category: c.Query("category"),
		Search:   c.Query("search"),
	}
	if v := c.Query("featured"); v != "" {
		featured := v == "true"
		q.Featured = &featured
	}

	items, err := h.service.ListPublished(c.Request.Context(), kind, q)
	if err != nil {
		writeServiceError(c, err, "Failed to list content")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"items": items})
}

func (h *Handler) GetPublished(c *gin.Context) {
	kind, ok := kindParam(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	item, err := h.service.GetPublished(c.Request.Context(), kind, id)
	if err != nil {
		writeServiceError(c, err, "Failed to load content")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"item": item})
}

func (h *Handler) Submit(c *gin.Context) {
	actor, ok := middleware.AccountFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	kind, ok := kindParam(c)
	if !ok {
		return
	}

	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	item, err := h.service.Submit(c.Request.Context(), actor, kind, req)
	if err != nil {
		writeServiceError(c, err, "Failed to submit content")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"item": item})
}

func (h *Handler) Edit(c *gin.Context) {
	actor, ok := middleware.AccountFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	kind, ok := kindParam(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req EditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	item, err := h.service.Edit(c.Request.Context(), actor, kind, id, req)
	if err != nil {
		writeServiceError(c, err, "Failed to edit content")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"item": item})
}

func (h *Handler) Delete(c *gin.Context) {
	actor, ok := middleware.AccountFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	kind, ok := kindParam(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), actor, kind, id); err != nil {
		writeServiceError(c, err, "Failed to delete content")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": id})
}

func (h *Handler) ListAll(c *gin.Context) {
	actor, ok := middleware.AccountFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	kind, ok := kindParam(c)
	if !ok {
		return
	}

	q := ListQuery{
		Category: c.Query("category"),
		Search:   c.Query("search"),
	}
	if v := c.Query("author_id"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			q.AuthorID = &id
		}
	}
	if v := c.Query("published"); v != "" {
		published := v == "true"
		q.Published = &published
	}
	if v := c.Query("featured"); v != "" {
		featured := v == "true"
		q.Featured = &featured
	}

	items, err := h.service.ListAll(c.Request.Context(), actor, kind, q)
	if err != nil {
		writeServiceError(c, err, "Failed to list content")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"items": items})
}
