package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"decksnap/slides-api/internal/domain/apikey"
	"decksnap/slides-api/internal/interfaces/httpserver/handlers"
)

// memKeyStore is an in-memory apikey.Repository for handler tests.
type memKeyStore struct {
	keys   map[uint]*apikey.Key
	nextID uint
}

func newMemKeyStore() *memKeyStore {
	return &memKeyStore{keys: map[uint]*apikey.Key{}, nextID: 1}
}

func (s *memKeyStore) Create(ctx context.Context, k *apikey.Key) error {
	k.ID = s.nextID
	s.nextID++
	k.CreatedAt = time.Now()
	k.UpdatedAt = k.CreatedAt
	copied := *k
	s.keys[k.ID] = &copied
	return nil
}

func (s *memKeyStore) FindByHash(ctx context.Context, hash string) (*apikey.Key, error) {
	for _, k := range s.keys {
		if k.KeyHash == hash {
			copied := *k
			return &copied, nil
		}
	}
	return nil, apikey.ErrNotFound
}

func (s *memKeyStore) FindByID(ctx context.Context, id uint) (*apikey.Key, error) {
	k, ok := s.keys[id]
	if !ok {
		return nil, apikey.ErrNotFound
	}
	copied := *k
	return &copied, nil
}

func (s *memKeyStore) List(ctx context.Context, offset, limit int) ([]apikey.Key, int64, error) {
	out := make([]apikey.Key, 0, len(s.keys))
	for _, k := range s.keys {
		out = append(out, *k)
	}
	return out, int64(len(out)), nil
}

func (s *memKeyStore) Update(ctx context.Context, k *apikey.Key) error {
	if _, ok := s.keys[k.ID]; !ok {
		return apikey.ErrNotFound
	}
	copied := *k
	s.keys[k.ID] = &copied
	return nil
}

func (s *memKeyStore) TouchLastUsed(ctx context.Context, id uint, at time.Time) error {
	if k, ok := s.keys[id]; ok {
		k.LastUsedAt = &at
	}
	return nil
}

func (s *memKeyStore) Delete(ctx context.Context, id uint) error {
	if _, ok := s.keys[id]; !ok {
		return apikey.ErrNotFound
	}
	delete(s.keys, id)
	return nil
}

func newAPIKeyRouter(store *memKeyStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	service := apikey.NewService(store, zerolog.Nop())
	handler := handlers.NewAPIKeyHandler(service, zerolog.Nop())
	engine := gin.New()
	engine.POST("/v1/api-keys", handler.Create)
	engine.GET("/v1/api-keys", handler.List)
	engine.GET("/v1/api-keys/:key_id", handler.Get)
	engine.PATCH("/v1/api-keys/:key_id", handler.Update)
	engine.POST("/v1/api-keys/:key_id/revoke", handler.Revoke)
	engine.DELETE("/v1/api-keys/:key_id", handler.Delete)
	return engine
}

func TestAPIKeyCreateReturnsSecretOnce(t *testing.T) {
	store := newMemKeyStore()
	router := newAPIKeyRouter(store)

	req := httptest.NewRequest(http.MethodPost, "/v1/api-keys", strings.NewReader(`{"name": "ci", "scopes": "generate"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body %s", rec.Code, rec.Body.String())
	}

	var payload struct {
		ID        uint   `json:"id"`
		Key       string `json:"key"`
		KeyPrefix string `json:"key_prefix"`
		Scopes    string `json:"scopes"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if !strings.HasPrefix(payload.Key, "dk_live_") {
		t.Errorf("key = %q, want dk_live_ prefix", payload.Key)
	}
	if !strings.HasSuffix(payload.KeyPrefix, "...") {
		t.Errorf("key prefix = %q", payload.KeyPrefix)
	}
	if payload.Scopes != "generate" {
		t.Errorf("scopes = %q", payload.Scopes)
	}

	// The secret must not reappear on subsequent reads.
	getReq := httptest.NewRequest(http.MethodGet, "/v1/api-keys/1", nil)
	getRec := httptest.NewRecorder()
	router.ServeHTTP(getRec, getReq)
	if getRec.Code != http.StatusOK {
		t.Fatalf("get status = %d", getRec.Code)
	}
	if strings.Contains(getRec.Body.String(), payload.Key) {
		t.Error("raw secret leaked from get endpoint")
	}
}

func TestAPIKeyRevoke(t *testing.T) {
	store := newMemKeyStore()
	router := newAPIKeyRouter(store)

	req := httptest.NewRequest(http.MethodPost, "/v1/api-keys", strings.NewReader(`{"name": "temp"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d", rec.Code)
	}

	revokeReq := httptest.NewRequest(http.MethodPost, "/v1/api-keys/1/revoke", nil)
	revokeRec := httptest.NewRecorder()
	router.ServeHTTP(revokeRec, revokeReq)
	if revokeRec.Code != http.StatusOK {
		t.Fatalf("revoke status = %d", revokeRec.Code)
	}

	stored, err := store.FindByID(context.Background(), 1)
	if err != nil {
		t.Fatalf("find key: %v", err)
	}
	if stored.IsActive {
		t.Error("key still active after revoke")
	}
}

func TestAPIKeyGetMissing(t *testing.T) {
	router := newAPIKeyRouter(newMemKeyStore())

	req := httptest.NewRequest(http.MethodGet, "/v1/api-keys/42", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}
