// Package slide defines the tagged-variant slide model built by the
// generation loop and persisted with each presentation.
package slide

// Type enumerates the known slide content shapes. Unrecognized values are
// stored verbatim; rendering collaborators own enum validation.
type Type string

const (
	TypeTitle      Type = "title"
	TypeContent    Type = "content"
	TypeBullets    Type = "bullets"
	TypeQuote      Type = "quote"
	TypeSection    Type = "section"
	TypeChart      Type = "chart"
	TypeStats      Type = "stats"
	TypeBigNumber  Type = "big_number"
	TypeComparison Type = "comparison"
	TypeTimeline   Type = "timeline"
)

// Layout is the text alignment hint for a slide.
type Layout string

const (
	LayoutLeft   Layout = "left"
	LayoutCenter Layout = "center"
	LayoutRight  Layout = "right"
	LayoutSplit  Layout = "split"
)

// ChartPoint is one data point on a chart slide.
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Color *string `json:"color,omitempty"`
}

// ChartConfig holds chart display options.
type ChartConfig struct {
	ShowLegend bool    `json:"show_legend"`
	ShowValues bool    `json:"show_values"`
	XAxisLabel *string `json:"x_axis_label,omitempty"`
	YAxisLabel *string `json:"y_axis_label,omitempty"`
}

// Stat is one entry on a stats slide.
type Stat struct {
	Value       string  `json:"value"`
	Label       string  `json:"label"`
	Description *string `json:"description,omitempty"`
}

// BigNumber is the headline figure of a big_number slide.
type BigNumber struct {
	Value   string  `json:"value"`
	Label   string  `json:"label"`
	Context *string `json:"context,omitempty"`
}

// ComparisonColumn is one side of a comparison slide.
type ComparisonColumn struct {
	Title  string   `json:"title"`
	Points []string `json:"points,omitempty"`
}

// TimelineItem is one step on a timeline slide.
type TimelineItem struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Date        *string `json:"date,omitempty"`
}

// Image references an external image baked into a slide by the image
// resolver. Populated only when the lookup succeeded.
type Image struct {
	URL    string `json:"url"`
	Alt    string `json:"alt,omitempty"`
	Credit string `json:"credit,omitempty"`
}

// Slide is a single slide in a presentation. Optional fields use pointers
// and nil slices as the explicit absent marker; downstream renderers must
// be able to distinguish "no data" from an empty collection. A slide is
// immutable once appended to a document.
type Slide struct {
	Type   Type   `json:"type"`
	Title  string `json:"title,omitempty"`
	Layout Layout `json:"layout"`
	Order  int    `json:"order"`

	Subtitle    *string `json:"subtitle,omitempty"`
	Body        *string `json:"body,omitempty"`
	Bullets     []string `json:"bullets,omitempty"`
	Quote       *string `json:"quote,omitempty"`
	Attribution *string `json:"attribution,omitempty"`

	ChartType   *string      `json:"chart_type,omitempty"`
	ChartData   []ChartPoint `json:"chart_data,omitempty"`
	ChartConfig *ChartConfig `json:"chart_config,omitempty"`

	Stats             []Stat             `json:"stats,omitempty"`
	BigNumber         *BigNumber         `json:"big_number,omitempty"`
	ComparisonColumns []ComparisonColumn `json:"comparison_columns,omitempty"`
	TimelineItems     []TimelineItem     `json:"timeline_items,omitempty"`

	ImageQuery *string `json:"image_query,omitempty"`
	Image      *Image  `json:"image,omitempty"`
}
