package presentation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"decksnap/slides-api/internal/domain/slide"
)

func strPtr(s string) *string { return &s }

func TestSlideEntityRoundTrip(t *testing.T) {
	original := slide.Slide{
		Type:      slide.TypeChart,
		Title:     "Revenue by Quarter",
		Layout:    slide.LayoutSplit,
		Order:     3,
		Body:      strPtr("Steady growth across all segments."),
		Bullets:   []string{"Q1 up 12%", "Q2 up 18%"},
		ChartType: strPtr("bar"),
		ChartData: []slide.ChartPoint{
			{Label: "Q1", Value: 1.2},
			{Label: "Q2", Value: 1.8, Color: strPtr("#ff90e8")},
		},
		ChartConfig: &slide.ChartConfig{ShowLegend: true, ShowValues: true, XAxisLabel: strPtr("Quarter")},
		BigNumber:   &slide.BigNumber{Value: "42%", Label: "YoY growth", Context: strPtr("vs prior year")},
		ImageQuery:  strPtr("city skyline at dusk"),
		Image:       &slide.Image{URL: "https://images.example/sky.jpg", Alt: "skyline", Credit: "A. Adams"},
	}

	entity, err := slideToEntity(7, original)
	require.NoError(t, err)
	assert.Equal(t, uint(7), entity.PresentationID)
	assert.Equal(t, 3, entity.Order)
	assert.Equal(t, "chart", entity.SlideType)

	restored, err := slideFromEntity(entity)
	require.NoError(t, err)
	assert.Equal(t, original, restored)
}

func TestSlideEntityRoundTripKeepsAbsentCollectionsAbsent(t *testing.T) {
	original := slide.Slide{
		Type:   slide.TypeContent,
		Title:  "Overview",
		Layout: slide.LayoutLeft,
		Order:  0,
		Body:   strPtr("Plain content slide."),
	}

	entity, err := slideToEntity(1, original)
	require.NoError(t, err)
	assert.Nil(t, entity.Bullets)
	assert.Nil(t, entity.ChartData)
	assert.Nil(t, entity.ChartConfig)
	assert.Nil(t, entity.Stats)

	restored, err := slideFromEntity(entity)
	require.NoError(t, err)
	assert.Nil(t, restored.Bullets)
	assert.Nil(t, restored.ChartData)
	assert.Nil(t, restored.ChartConfig)
	assert.Equal(t, original, restored)
}

func TestSlideEntityImageWithoutCredit(t *testing.T) {
	original := slide.Slide{
		Type:   slide.TypeTitle,
		Title:  "Launch",
		Layout: slide.LayoutCenter,
		Image:  &slide.Image{URL: "https://images.example/rocket.jpg"},
	}

	entity, err := slideToEntity(1, original)
	require.NoError(t, err)
	assert.Nil(t, entity.ImageAlt)
	assert.Nil(t, entity.ImageCredit)

	restored, err := slideFromEntity(entity)
	require.NoError(t, err)
	assert.Equal(t, original, restored)
}
