package slide_test

import (
	"reflect"
	"testing"

	"decksnap/slides-api/internal/domain/slide"
)

func TestFromArgs_BulletsNormalizationIsIdempotent(t *testing.T) {
	// bullets: [], bullets: null, and omitted bullets must all store the
	// same absent marker.
	variants := []struct {
		name string
		args map[string]interface{}
	}{
		{"empty list", map[string]interface{}{"slide_type": "bullets", "title": "Points", "bullets": []interface{}{}}},
		{"explicit null", map[string]interface{}{"slide_type": "bullets", "title": "Points", "bullets": nil}},
		{"omitted", map[string]interface{}{"slide_type": "bullets", "title": "Points"}},
		{"placeholder noise", map[string]interface{}{"slide_type": "bullets", "title": "Points", "bullets": []interface{}{"", "  ", "null"}}},
	}

	var first *slide.Slide
	for _, tt := range variants {
		t.Run(tt.name, func(t *testing.T) {
			s, err := slide.FromArgs(tt.args)
			if err != nil {
				t.Fatalf("FromArgs() error = %v", err)
			}
			if s.Bullets != nil {
				t.Errorf("bullets = %v, want absent (nil)", s.Bullets)
			}
			if first == nil {
				first = s
			} else if !reflect.DeepEqual(first, s) {
				t.Errorf("normalized slide differs between variants: %+v vs %+v", first, s)
			}
		})
	}
}

func TestFromArgs_StringNoiseBecomesAbsent(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  bool // true when subtitle should survive
	}{
		{"real value", "A subtitle", true},
		{"empty string", "", false},
		{"whitespace", "   ", false},
		{"literal null", "null", false},
		{"literal NULL", "NULL", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := slide.FromArgs(map[string]interface{}{
				"slide_type": "title",
				"title":      "Opening",
				"subtitle":   tt.value,
			})
			if err != nil {
				t.Fatalf("FromArgs() error = %v", err)
			}
			if got := s.Subtitle != nil; got != tt.want {
				t.Errorf("subtitle present = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFromArgs_MissingSlideTypeIsRejected(t *testing.T) {
	_, err := slide.FromArgs(map[string]interface{}{"title": "No type"})
	if err != slide.ErrMissingType {
		t.Errorf("FromArgs() error = %v, want ErrMissingType", err)
	}
}

func TestFromArgs_UnknownSlideTypeStoredVerbatim(t *testing.T) {
	s, err := slide.FromArgs(map[string]interface{}{
		"slide_type": "hologram",
		"title":      "Future",
	})
	if err != nil {
		t.Fatalf("FromArgs() error = %v", err)
	}
	if s.Type != slide.Type("hologram") {
		t.Errorf("type = %q, want hologram stored verbatim", s.Type)
	}
}

func TestFromArgs_AgentSuppliedOrderIsIgnored(t *testing.T) {
	s, err := slide.FromArgs(map[string]interface{}{
		"slide_type": "content",
		"title":      "Body",
		"order":      7,
	})
	if err != nil {
		t.Fatalf("FromArgs() error = %v", err)
	}
	if s.Order != 0 {
		t.Errorf("order = %d, want 0 (loop-assigned only)", s.Order)
	}
}

func TestFromArgs_LayoutDefaultsToCenter(t *testing.T) {
	tests := []struct {
		name   string
		layout interface{}
		want   slide.Layout
	}{
		{"valid left", "left", slide.LayoutLeft},
		{"valid split", "split", slide.LayoutSplit},
		{"unknown", "diagonal", slide.LayoutCenter},
		{"missing", nil, slide.LayoutCenter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := map[string]interface{}{"slide_type": "content", "title": "T"}
			if tt.layout != nil {
				args["layout"] = tt.layout
			}
			s, err := slide.FromArgs(args)
			if err != nil {
				t.Fatalf("FromArgs() error = %v", err)
			}
			if s.Layout != tt.want {
				t.Errorf("layout = %q, want %q", s.Layout, tt.want)
			}
		})
	}
}

func TestFromArgs_ChartSlide(t *testing.T) {
	s, err := slide.FromArgs(map[string]interface{}{
		"slide_type": "chart",
		"title":      "Revenue",
		"chart_type": "bar",
		"chart_data": []interface{}{
			map[string]interface{}{"label": "Q1", "value": 120.5},
			map[string]interface{}{"label": "Q2", "value": 180, "color": "#ff90e8"},
		},
	})
	if err != nil {
		t.Fatalf("FromArgs() error = %v", err)
	}
	if s.ChartType == nil || *s.ChartType != "bar" {
		t.Errorf("chart_type = %v, want bar", s.ChartType)
	}
	if len(s.ChartData) != 2 {
		t.Fatalf("chart_data length = %d, want 2", len(s.ChartData))
	}
	if s.ChartData[0].Label != "Q1" || s.ChartData[0].Value != 120.5 {
		t.Errorf("first point = %+v, want Q1/120.5", s.ChartData[0])
	}
	if s.ChartData[1].Color == nil || *s.ChartData[1].Color != "#ff90e8" {
		t.Errorf("second point color = %v, want #ff90e8", s.ChartData[1].Color)
	}
}

func TestFromArgs_BigNumberFlatFields(t *testing.T) {
	s, err := slide.FromArgs(map[string]interface{}{
		"slide_type":         "big_number",
		"title":              "Growth",
		"big_number_value":   "340%",
		"big_number_label":   "YoY growth",
		"big_number_context": "",
	})
	if err != nil {
		t.Fatalf("FromArgs() error = %v", err)
	}
	if s.BigNumber == nil {
		t.Fatal("big_number absent, want populated")
	}
	if s.BigNumber.Value != "340%" || s.BigNumber.Label != "YoY growth" {
		t.Errorf("big_number = %+v", *s.BigNumber)
	}
	if s.BigNumber.Context != nil {
		t.Errorf("empty context should be absent, got %v", *s.BigNumber.Context)
	}
}

func TestFromArgs_TimelineFiltersEmptyItems(t *testing.T) {
	s, err := slide.FromArgs(map[string]interface{}{
		"slide_type": "timeline",
		"title":      "Roadmap",
		"timeline_items": []interface{}{
			map[string]interface{}{"title": "Launch", "date": "2026-01"},
			map[string]interface{}{"title": "", "description": ""},
		},
	})
	if err != nil {
		t.Fatalf("FromArgs() error = %v", err)
	}
	if len(s.TimelineItems) != 1 {
		t.Fatalf("timeline_items length = %d, want 1", len(s.TimelineItems))
	}
	if s.TimelineItems[0].Title != "Launch" {
		t.Errorf("timeline item = %+v", s.TimelineItems[0])
	}
}

func TestFromArgs_ImageQueryPreserved(t *testing.T) {
	s, err := slide.FromArgs(map[string]interface{}{
		"slide_type":  "content",
		"title":       "Oceans",
		"image_query": "coral reef",
	})
	if err != nil {
		t.Fatalf("FromArgs() error = %v", err)
	}
	if s.ImageQuery == nil || *s.ImageQuery != "coral reef" {
		t.Errorf("image_query = %v, want coral reef", s.ImageQuery)
	}
	if s.Image != nil {
		t.Error("image must not be set by argument parsing")
	}
}
