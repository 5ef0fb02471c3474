package handlers

import (
	"net/http"

	"autoserve.backend/internal/domain/entities"
	domainerrors "autoserve.backend/internal/domain/errors"
	"autoserve.backend/internal/interfaces/http/middleware"
	"autoserve.backend/internal/interfaces/http/response"
	"autoserve.backend/internal/usecases"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ApiKeyHandler handles API key management endpoints
type ApiKeyHandler struct {
	apiKeyUsecase *usecases.ApiKeyUsecase
}

// NewApiKeyHandler creates a new API key handler
func NewApiKeyHandler(apiKeyUsecase *usecases.ApiKeyUsecase) *ApiKeyHandler {
	return &ApiKeyHandler{apiKeyUsecase: apiKeyUsecase}
}

// CreateApiKey provisions a new key; the raw key is shown exactly once
// POST /api/v1/api-keys
func (h *ApiKeyHandler) CreateApiKey(c *gin.Context) {
	var input entities.CreateApiKeyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	principal, ok := middleware.GetPrincipal(c)
	if !ok || principal.Kind != entities.PrincipalUser {
		response.Error(c, domainerrors.Unauthorized("staff session required"))
		return
	}

	resp, err := h.apiKeyUsecase.CreateApiKey(c.Request.Context(), principal.UserID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

// ListApiKeys lists keys with masked secrets
// GET /api/v1/api-keys
func (h *ApiKeyHandler) ListApiKeys(c *gin.Context) {
	keys, err := h.apiKeyUsecase.ListApiKeys(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, keys)
}

// RevokeApiKey deactivates a key; history survives revocation
// DELETE /api/v1/api-keys/:id
func (h *ApiKeyHandler) RevokeApiKey(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid api key id"))
		return
	}

	if err := h.apiKeyUsecase.RevokeApiKey(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "api key revoked"})
}
