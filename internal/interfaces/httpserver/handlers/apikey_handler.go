package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"decksnap/slides-api/internal/domain/apikey"
	"decksnap/slides-api/internal/interfaces/httpserver/dto"
)

// APIKeyHandler manages API key issuance and lifecycle.
type APIKeyHandler struct {
	keys *apikey.Service
	log  zerolog.Logger
}

// NewAPIKeyHandler constructs the handler.
func NewAPIKeyHandler(keys *apikey.Service, log zerolog.Logger) *APIKeyHandler {
	return &APIKeyHandler{
		keys: keys,
		log:  log.With().Str("handler", "apikeys").Logger(),
	}
}

// Create handles POST /v1/api-keys. The response carries the raw secret;
// it cannot be retrieved again.
func (h *APIKeyHandler) Create(c *gin.Context) {
	var req dto.CreateAPIKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	key, raw, err := h.keys.Create(c.Request.Context(), apikey.CreateParams{
		Name:      req.Name,
		Scopes:    req.Scopes,
		ExpiresAt: req.ExpiresAt,
		IsTest:    req.IsTest,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, dto.CreatedAPIKeyPayload{
		APIKeyPayload: dto.FromKey(key),
		Key:           raw,
	})
}

// List handles GET /v1/api-keys.
func (h *APIKeyHandler) List(c *gin.Context) {
	keys, total, err := h.keys.List(c.Request.Context(), queryInt(c, "skip", 0), queryInt(c, "limit", 50))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	payload := dto.APIKeyListPayload{
		Data:  make([]dto.APIKeyPayload, 0, len(keys)),
		Total: total,
	}
	for i := range keys {
		payload.Data = append(payload.Data, dto.FromKey(&keys[i]))
	}
	c.JSON(http.StatusOK, payload)
}

// Get handles GET /v1/api-keys/:key_id.
func (h *APIKeyHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "key_id")
	if !ok {
		return
	}
	key, err := h.keys.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromKey(key))
}

// Update handles PATCH /v1/api-keys/:key_id.
func (h *APIKeyHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "key_id")
	if !ok {
		return
	}
	var req dto.UpdateAPIKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	key, err := h.keys.Update(c.Request.Context(), id, apikey.UpdateParams{
		Name:     req.Name,
		Scopes:   req.Scopes,
		IsActive: req.IsActive,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromKey(key))
}

// Revoke handles POST /v1/api-keys/:key_id/revoke. The key record is kept
// for auditing; it just stops validating.
func (h *APIKeyHandler) Revoke(c *gin.Context) {
	id, ok := pathID(c, "key_id")
	if !ok {
		return
	}
	if err := h.keys.Revoke(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "revoked"})
}

// Delete handles DELETE /v1/api-keys/:key_id.
func (h *APIKeyHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "key_id")
	if !ok {
		return
	}
	if err := h.keys.Delete(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *APIKeyHandler) writeError(c *gin.Context, err error) {
	if errors.Is(err, apikey.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "api key not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
