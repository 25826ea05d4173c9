package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"decksnap/slides-api/internal/domain/deck"
	"decksnap/slides-api/internal/domain/template"
	"decksnap/slides-api/internal/interfaces/httpserver/handlers"
)

// memTemplateStore is an in-memory template.Repository for handler tests.
type memTemplateStore struct {
	templates map[uint]*template.Template
	nextID    uint
}

func newMemTemplateStore() *memTemplateStore {
	return &memTemplateStore{templates: map[uint]*template.Template{}, nextID: 1}
}

func (s *memTemplateStore) Create(ctx context.Context, t *template.Template) error {
	t.ID = s.nextID
	s.nextID++
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt
	copied := *t
	s.templates[t.ID] = &copied
	return nil
}

func (s *memTemplateStore) Update(ctx context.Context, t *template.Template) error {
	if _, ok := s.templates[t.ID]; !ok {
		return template.ErrNotFound
	}
	copied := *t
	s.templates[t.ID] = &copied
	return nil
}

func (s *memTemplateStore) Delete(ctx context.Context, id uint) error {
	if _, ok := s.templates[id]; !ok {
		return template.ErrNotFound
	}
	delete(s.templates, id)
	return nil
}

func (s *memTemplateStore) FindByID(ctx context.Context, id uint) (*template.Template, error) {
	t, ok := s.templates[id]
	if !ok {
		return nil, template.ErrNotFound
	}
	copied := *t
	return &copied, nil
}

func (s *memTemplateStore) List(ctx context.Context, filter template.ListFilter) ([]template.Template, error) {
	out := make([]template.Template, 0, len(s.templates))
	for _, t := range s.templates {
		out = append(out, *t)
	}
	return out, nil
}

func (s *memTemplateStore) Categories(ctx context.Context) ([]template.CategoryCount, error) {
	counts := map[string]int64{}
	for _, t := range s.templates {
		counts[t.Category]++
	}
	out := make([]template.CategoryCount, 0, len(counts))
	for category, count := range counts {
		out = append(out, template.CategoryCount{Category: category, Count: count})
	}
	return out, nil
}

func (s *memTemplateStore) Popular(ctx context.Context, limit int) ([]template.Template, error) {
	return s.List(ctx, template.ListFilter{Limit: limit})
}

func (s *memTemplateStore) IncrementUsage(ctx context.Context, id uint) error {
	if t, ok := s.templates[id]; ok {
		t.UsageCount++
	}
	return nil
}

func newTemplateRouter(store *memTemplateStore, decks deck.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	service := template.NewService(store, zerolog.Nop())
	handler := handlers.NewTemplateHandler(service, decks, zerolog.Nop())
	engine := gin.New()
	engine.GET("/v1/templates", handler.List)
	engine.GET("/v1/templates/categories", handler.Categories)
	engine.GET("/v1/templates/:template_id", handler.Get)
	engine.POST("/v1/templates", handler.Create)
	engine.PATCH("/v1/templates/:template_id", handler.Update)
	engine.DELETE("/v1/templates/:template_id", handler.Delete)
	engine.POST("/v1/templates/:template_id/generate", handler.Generate)
	return engine
}

func seedTemplate(t *testing.T, store *memTemplateStore, isSystem bool) uint {
	t.Helper()
	body := "Lead with the problem"
	tpl := &template.Template{
		Name:     "Investor Pitch",
		Category: "startup",
		Theme:    "neobrutalism",
		IsSystem: isSystem,
		IsPublic: true,
		Slides: []template.TemplateSlide{
			{Order: 0, SlideType: "title", Layout: "center", IsRequired: true},
			{Order: 1, SlideType: "bullets", Layout: "left", PlaceholderBody: &body},
			{Order: 2, SlideType: "big_number", Layout: "center"},
		},
	}
	if err := store.Create(context.Background(), tpl); err != nil {
		t.Fatalf("seed template: %v", err)
	}
	return tpl.ID
}

func TestTemplateCreate(t *testing.T) {
	store := newMemTemplateStore()
	router := newTemplateRouter(store, &MockDeckService{})

	body := `{
		"name": "Product Launch",
		"category": "marketing",
		"theme": "dark",
		"slides": [
			{"order": 0, "slide_type": "title", "is_required": true},
			{"order": 1, "slide_type": "content"}
		]
	}`
	req := httptest.NewRequest(http.MethodPost, "/v1/templates", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body %s", rec.Code, rec.Body.String())
	}

	var payload struct {
		ID       uint   `json:"id"`
		IsSystem bool   `json:"is_system"`
		Theme    string `json:"theme"`
		Slides   []struct {
			Layout string `json:"layout"`
		} `json:"slides"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if payload.IsSystem {
		t.Error("user-created template flagged as system")
	}
	if payload.Theme != "dark" {
		t.Errorf("theme = %q", payload.Theme)
	}
	if len(payload.Slides) != 2 || payload.Slides[1].Layout != "left" {
		t.Errorf("slides = %+v", payload.Slides)
	}
}

func TestTemplateUpdateSystemForbidden(t *testing.T) {
	store := newMemTemplateStore()
	id := seedTemplate(t, store, true)
	router := newTemplateRouter(store, &MockDeckService{})

	req := httptest.NewRequest(http.MethodPatch, "/v1/templates/"+itoa(id), strings.NewReader(`{"name": "Hijacked"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestTemplateDeleteSystemForbidden(t *testing.T) {
	store := newMemTemplateStore()
	id := seedTemplate(t, store, true)
	router := newTemplateRouter(store, &MockDeckService{})

	req := httptest.NewRequest(http.MethodDelete, "/v1/templates/"+itoa(id), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestTemplateGenerate(t *testing.T) {
	store := newMemTemplateStore()
	id := seedTemplate(t, store, false)

	var captured deck.GenerateParams
	decks := &MockDeckService{
		GenerateFunc: func(ctx context.Context, params deck.GenerateParams) (*deck.Document, error) {
			captured = params
			return sampleDocument(), nil
		},
	}
	router := newTemplateRouter(store, decks)

	body := `{"user_content": "We build solar microgrids.", "excluded_slides": [2]}`
	req := httptest.NewRequest(http.MethodPost, "/v1/templates/"+itoa(id)+"/generate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body.String())
	}
	if captured.SlideCount != 2 {
		t.Errorf("slide count = %d, want 2 after exclusion", captured.SlideCount)
	}
	if captured.Theme != "neobrutalism" {
		t.Errorf("theme = %q", captured.Theme)
	}
	if !strings.Contains(captured.TemplateGuidance, "Investor Pitch") {
		t.Errorf("guidance missing template name:\n%s", captured.TemplateGuidance)
	}

	stored, err := store.FindByID(context.Background(), id)
	if err != nil {
		t.Fatalf("find template: %v", err)
	}
	if stored.UsageCount != 1 {
		t.Errorf("usage count = %d, want 1", stored.UsageCount)
	}
}

func TestTemplateGenerateMissing(t *testing.T) {
	router := newTemplateRouter(newMemTemplateStore(), &MockDeckService{})

	req := httptest.NewRequest(http.MethodPost, "/v1/templates/99/generate", strings.NewReader(`{"user_content": "x"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
