package slide

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrMissingType is returned when an add_slide call omits slide_type.
var ErrMissingType = errors.New("add_slide call missing slide_type")

// AddArgs is the typed payload of an add_slide tool call. Raw arguments are
// parsed into this shape at the boundary; anything the model passes for
// order is ignored since order is always loop-assigned.
type AddArgs struct {
	SlideType string  `json:"slide_type"`
	Title     string  `json:"title"`
	Layout    string  `json:"layout"`
	Subtitle  *string `json:"subtitle"`
	Body      *string `json:"body"`
	Bullets   []string `json:"bullets"`
	Quote       *string `json:"quote"`
	Attribution *string `json:"attribution"`

	ChartType   *string      `json:"chart_type"`
	ChartData   []ChartPoint `json:"chart_data"`
	ChartConfig *ChartConfig `json:"chart_config"`

	Stats            []Stat  `json:"stats"`
	BigNumberValue   *string `json:"big_number_value"`
	BigNumberLabel   *string `json:"big_number_label"`
	BigNumberContext *string `json:"big_number_context"`

	ComparisonColumns []ComparisonColumn `json:"comparison_columns"`
	TimelineItems     []TimelineItem     `json:"timeline_items"`

	ImageQuery *string `json:"image_query"`
}

// FromArgs converts raw tool-call arguments into a normalized Slide.
// Agents frequently emit empty strings, empty collections, or the literal
// string "null" as placeholder noise; those are normalized to the absent
// marker here so stored slides are canonical.
func FromArgs(raw map[string]interface{}) (*Slide, error) {
	payload, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("reserialize add_slide arguments: %w", err)
	}

	var args AddArgs
	if err := json.Unmarshal(payload, &args); err != nil {
		return nil, fmt.Errorf("parse add_slide arguments: %w", err)
	}

	if strings.TrimSpace(args.SlideType) == "" {
		return nil, ErrMissingType
	}

	s := &Slide{
		// Unrecognized slide types are stored verbatim; the renderer owns
		// enum validation.
		Type:        Type(strings.TrimSpace(args.SlideType)),
		Title:       strings.TrimSpace(args.Title),
		Layout:      normalizeLayout(args.Layout),
		Subtitle:    normalizeString(args.Subtitle),
		Body:        normalizeString(args.Body),
		Bullets:     normalizeStrings(args.Bullets),
		Quote:       normalizeString(args.Quote),
		Attribution: normalizeString(args.Attribution),
		ChartType:   normalizeString(args.ChartType),
		ChartConfig: args.ChartConfig,
		ImageQuery:  normalizeString(args.ImageQuery),
	}

	if len(args.ChartData) > 0 {
		s.ChartData = args.ChartData
	}
	if len(args.Stats) > 0 {
		s.Stats = normalizeStats(args.Stats)
	}
	if big := normalizeBigNumber(args); big != nil {
		s.BigNumber = big
	}
	if cols := normalizeComparison(args.ComparisonColumns); len(cols) > 0 {
		s.ComparisonColumns = cols
	}
	if items := normalizeTimeline(args.TimelineItems); len(items) > 0 {
		s.TimelineItems = items
	}

	return s, nil
}

func normalizeLayout(raw string) Layout {
	switch Layout(strings.TrimSpace(raw)) {
	case LayoutLeft:
		return LayoutLeft
	case LayoutRight:
		return LayoutRight
	case LayoutSplit:
		return LayoutSplit
	default:
		return LayoutCenter
	}
}

// normalizeString maps empty, whitespace-only, and the literal "null" to absent.
func normalizeString(raw *string) *string {
	if raw == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*raw)
	if trimmed == "" || strings.EqualFold(trimmed, "null") {
		return nil
	}
	return &trimmed
}

func normalizeStrings(raw []string) []string {
	var out []string
	for _, item := range raw {
		if v := normalizeString(&item); v != nil {
			out = append(out, *v)
		}
	}
	return out
}

func normalizeStats(raw []Stat) []Stat {
	out := make([]Stat, 0, len(raw))
	for _, stat := range raw {
		stat.Value = strings.TrimSpace(stat.Value)
		stat.Label = strings.TrimSpace(stat.Label)
		stat.Description = normalizeString(stat.Description)
		if stat.Value == "" && stat.Label == "" {
			continue
		}
		out = append(out, stat)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func normalizeBigNumber(args AddArgs) *BigNumber {
	value := normalizeString(args.BigNumberValue)
	label := normalizeString(args.BigNumberLabel)
	if value == nil && label == nil {
		return nil
	}
	big := &BigNumber{Context: normalizeString(args.BigNumberContext)}
	if value != nil {
		big.Value = *value
	}
	if label != nil {
		big.Label = *label
	}
	return big
}

func normalizeComparison(raw []ComparisonColumn) []ComparisonColumn {
	var out []ComparisonColumn
	for _, col := range raw {
		col.Title = strings.TrimSpace(col.Title)
		col.Points = normalizeStrings(col.Points)
		if col.Title == "" && len(col.Points) == 0 {
			continue
		}
		out = append(out, col)
	}
	return out
}

func normalizeTimeline(raw []TimelineItem) []TimelineItem {
	var out []TimelineItem
	for _, item := range raw {
		item.Title = strings.TrimSpace(item.Title)
		item.Description = normalizeString(item.Description)
		item.Date = normalizeString(item.Date)
		if item.Title == "" && item.Description == nil {
			continue
		}
		out = append(out, item)
	}
	return out
}
