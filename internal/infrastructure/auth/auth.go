// Package auth implements API-key authentication for the public API.
// Callers present keys either as a bearer token or an X-API-Key header.
package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"decksnap/slides-api/internal/config"
	"decksnap/slides-api/internal/domain/apikey"
)

const identityKey = "api_key_identity"

// Validator checks API keys against the key store.
type Validator struct {
	cfg  *config.Config
	keys *apikey.Service
	log  zerolog.Logger
}

// NewValidator constructs the validator.
func NewValidator(cfg *config.Config, keys *apikey.Service, log zerolog.Logger) *Validator {
	return &Validator{
		cfg:  cfg,
		keys: keys,
		log:  log.With().Str("component", "auth").Logger(),
	}
}

// Middleware enforces API-key auth when enabled.
func (v *Validator) Middleware() gin.HandlerFunc {
	if v == nil || !v.cfg.AuthEnabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		raw := rawKey(c)
		if raw == "" {
			abortUnauthorized(c, "missing api key")
			return
		}

		identity, err := v.keys.Validate(c.Request.Context(), raw)
		if err != nil {
			if !errors.Is(err, apikey.ErrNotFound) {
				v.log.Error().Err(err).Msg("api key validation failed")
			}
			abortUnauthorized(c, "invalid api key")
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// RequireScope aborts requests whose key does not grant the named scope.
// It must run after Middleware; unauthenticated requests (auth disabled)
// pass through.
func (v *Validator) RequireScope(scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := IdentityFrom(c)
		if identity == nil {
			c.Next()
			return
		}
		for _, s := range identity.Scopes {
			if s == apikey.ScopeAll || s == scope {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error": "insufficient scope",
		})
	}
}

// IdentityFrom returns the authenticated key identity, or nil when the
// request was not authenticated.
func IdentityFrom(c *gin.Context) *apikey.Identity {
	value, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	identity, _ := value.(*apikey.Identity)
	return identity
}

func rawKey(c *gin.Context) string {
	if header := c.GetHeader("X-API-Key"); header != "" {
		return strings.TrimSpace(header)
	}
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": message,
	})
}
