// Package tool declares the slide-construction tool catalog offered to the
// LLM and the parsing of the calls it returns.
package tool

import "decksnap/slides-api/internal/domain/llm"

// Tool names in the catalog.
const (
	NameAddSlide           = "add_slide"
	NameFinishPresentation = "finish_presentation"
)

// Catalog returns the OpenAI-compatible tool definitions for one
// generation run. The catalog is static; the schemas mirror the slide
// variants the accumulator can store.
func Catalog() []llm.ToolDefinition {
	return []llm.ToolDefinition{
		{
			Type: "function",
			Function: llm.ToolFunctionSchema{
				Name:        NameAddSlide,
				Description: "Add a slide to the presentation. Call this for each slide you want to create.",
				Parameters: map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"slide_type": map[string]interface{}{
							"type":        "string",
							"enum":        []string{"title", "content", "bullets", "quote", "section", "chart", "stats", "big_number", "comparison", "timeline"},
							"description": "Type of slide: title (opening), content (paragraph), bullets (list), quote, section (divider), chart (data visualization), stats (metric grid), big_number (single headline figure), comparison (two columns), timeline (ordered steps)",
						},
						"title": map[string]interface{}{
							"type":        "string",
							"description": "Slide title (required for all slides)",
						},
						"subtitle": map[string]interface{}{
							"type":        "string",
							"description": "Subtitle (for title slides only)",
						},
						"body": map[string]interface{}{
							"type":        "string",
							"description": "Body paragraph text (for content slides)",
						},
						"bullets": map[string]interface{}{
							"type":        "array",
							"items":       map[string]interface{}{"type": "string"},
							"description": "List of bullet points (for bullets slides, max 6 items)",
						},
						"quote": map[string]interface{}{
							"type":        "string",
							"description": "Quote text (for quote slides)",
						},
						"attribution": map[string]interface{}{
							"type":        "string",
							"description": "Quote attribution/author (for quote slides)",
						},
						"layout": map[string]interface{}{
							"type":        "string",
							"enum":        []string{"left", "center", "right", "split"},
							"description": "Text alignment (default: center)",
						},
						"chart_type": map[string]interface{}{
							"type":        "string",
							"enum":        []string{"bar", "line", "pie", "donut", "area", "horizontal_bar"},
							"description": "Chart style (for chart slides)",
						},
						"chart_data": map[string]interface{}{
							"type": "array",
							"items": map[string]interface{}{
								"type": "object",
								"properties": map[string]interface{}{
									"label": map[string]interface{}{"type": "string"},
									"value": map[string]interface{}{"type": "number"},
									"color": map[string]interface{}{"type": "string"},
								},
								"required": []string{"label", "value"},
							},
							"description": "Ordered data points (for chart slides)",
						},
						"stats": map[string]interface{}{
							"type": "array",
							"items": map[string]interface{}{
								"type": "object",
								"properties": map[string]interface{}{
									"value":       map[string]interface{}{"type": "string"},
									"label":       map[string]interface{}{"type": "string"},
									"description": map[string]interface{}{"type": "string"},
								},
								"required": []string{"value", "label"},
							},
							"description": "2-4 headline metrics (for stats slides)",
						},
						"big_number_value": map[string]interface{}{
							"type":        "string",
							"description": "The headline figure, e.g. \"340%\" (for big_number slides)",
						},
						"big_number_label": map[string]interface{}{
							"type":        "string",
							"description": "What the figure measures (for big_number slides)",
						},
						"big_number_context": map[string]interface{}{
							"type":        "string",
							"description": "One sentence of context (for big_number slides)",
						},
						"comparison_columns": map[string]interface{}{
							"type": "array",
							"items": map[string]interface{}{
								"type": "object",
								"properties": map[string]interface{}{
									"title":  map[string]interface{}{"type": "string"},
									"points": map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string"}},
								},
								"required": []string{"title"},
							},
							"description": "Exactly two columns to compare (for comparison slides)",
						},
						"timeline_items": map[string]interface{}{
							"type": "array",
							"items": map[string]interface{}{
								"type": "object",
								"properties": map[string]interface{}{
									"title":       map[string]interface{}{"type": "string"},
									"description": map[string]interface{}{"type": "string"},
									"date":        map[string]interface{}{"type": "string"},
								},
								"required": []string{"title"},
							},
							"description": "3-6 ordered steps (for timeline slides)",
						},
						"image_query": map[string]interface{}{
							"type":        "string",
							"description": "Short keyword query for a supporting stock photo (optional)",
						},
					},
					"required": []string{"slide_type", "title"},
				},
			},
		},
		{
			Type: "function",
			Function: llm.ToolFunctionSchema{
				Name:        NameFinishPresentation,
				Description: "Call this when all slides have been added to complete the presentation.",
				Parameters: map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"title": map[string]interface{}{
							"type":        "string",
							"description": "The presentation title",
						},
					},
					"required": []string{"title"},
				},
			},
		},
	}
}
