package tool

import (
	"fmt"
	"strings"
)

const systemPromptTemplate = `You are an expert presentation designer. Create a slide presentation by calling the add_slide tool for each slide.

SLIDE TYPES:
- "title": Opening slide with main title and subtitle
- "content": Text-heavy slide with title and body paragraph
- "bullets": List of key points (3-6 bullets, each under 12 words)
- "quote": Impactful quote with attribution
- "section": Section divider for topic transitions
- "chart": Data visualization with labeled points (bar, line, pie, donut, area, horizontal_bar)
- "stats": Grid of 2-4 headline metrics
- "big_number": One dominant figure with a label and context
- "comparison": Two columns of contrasting points
- "timeline": 3-6 ordered steps with dates

RULES:
1. First slide MUST be type "title"
2. Create exactly %d slides total
3. Use varied slide types for visual interest (don't repeat the same type)
4. Keep content concise and impactful
5. Prefer chart/stats/big_number slides when the source text contains numbers
6. After creating all slides, call finish_presentation with the presentation title

Create slides now based on the user's text.`

// SystemPrompt builds the instructional prompt governing agent behavior for
// one run. The prompt is advisory; the loop enforces nothing beyond its
// iteration budget and order assignment, so the model over- or
// under-shooting the slide count degrades gracefully.
func SystemPrompt(slideCount int, themeContext, templateGuidance string) string {
	var b strings.Builder
	fmt.Fprintf(&b, systemPromptTemplate, slideCount)

	if themeContext = strings.TrimSpace(themeContext); themeContext != "" {
		b.WriteString("\n\nTHEME:\n")
		b.WriteString(themeContext)
	}
	if templateGuidance = strings.TrimSpace(templateGuidance); templateGuidance != "" {
		b.WriteString("\n\nSTRUCTURE GUIDANCE:\n")
		b.WriteString(templateGuidance)
	}
	return b.String()
}
