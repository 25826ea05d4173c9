package presentation

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"decksnap/slides-api/internal/domain/deck"
	"decksnap/slides-api/internal/domain/llm"
	"decksnap/slides-api/internal/domain/slide"
	"decksnap/slides-api/internal/domain/status"
	"decksnap/slides-api/internal/infrastructure/database/entities"
)

func mapFromEntity(entity *entities.Presentation) (*deck.Document, error) {
	doc := &deck.Document{
		ID:          entity.ID,
		PublicID:    entity.PublicID,
		Title:       entity.Title,
		Theme:       entity.Theme,
		SourceText:  entity.SourceText,
		Status:      status.Status(entity.Status),
		OwnerKeyID:  entity.APIKeyID,
		CreatedAt:   entity.CreatedAt,
		UpdatedAt:   entity.UpdatedAt,
		CompletedAt: entity.CompletedAt,
		FailedAt:    entity.FailedAt,
	}

	if len(entity.Usage) > 0 {
		var usage llm.Usage
		if err := json.Unmarshal(entity.Usage, &usage); err == nil {
			doc.Usage = &usage
		}
	}
	if len(entity.Error) > 0 {
		var details deck.ErrorDetails
		if err := json.Unmarshal(entity.Error, &details); err == nil && details.Code != "" {
			doc.Error = &details
		}
	}

	doc.Slides = make([]slide.Slide, 0, len(entity.Slides))
	for i := range entity.Slides {
		s, err := slideFromEntity(&entity.Slides[i])
		if err != nil {
			return nil, err
		}
		doc.Slides = append(doc.Slides, s)
	}
	return doc, nil
}

func slideToEntity(documentID uint, s slide.Slide) (*entities.PresentationSlide, error) {
	bullets, err := marshalJSONSlice(s.Bullets)
	if err != nil {
		return nil, fmt.Errorf("marshal bullets: %w", err)
	}
	chartData, err := marshalJSONSlice(s.ChartData)
	if err != nil {
		return nil, fmt.Errorf("marshal chart data: %w", err)
	}
	chartConfig, err := marshalJSONPtr(s.ChartConfig)
	if err != nil {
		return nil, fmt.Errorf("marshal chart config: %w", err)
	}
	stats, err := marshalJSONSlice(s.Stats)
	if err != nil {
		return nil, fmt.Errorf("marshal stats: %w", err)
	}
	comparison, err := marshalJSONSlice(s.ComparisonColumns)
	if err != nil {
		return nil, fmt.Errorf("marshal comparison columns: %w", err)
	}
	timeline, err := marshalJSONSlice(s.TimelineItems)
	if err != nil {
		return nil, fmt.Errorf("marshal timeline items: %w", err)
	}

	entity := &entities.PresentationSlide{
		PresentationID:    documentID,
		Order:             s.Order,
		SlideType:         string(s.Type),
		Title:             s.Title,
		Layout:            string(s.Layout),
		Subtitle:          s.Subtitle,
		Body:              s.Body,
		Bullets:           bullets,
		Quote:             s.Quote,
		Attribution:       s.Attribution,
		ChartType:         s.ChartType,
		ChartData:         chartData,
		ChartConfig:       chartConfig,
		Stats:             stats,
		ComparisonColumns: comparison,
		TimelineItems:     timeline,
		ImageQuery:        s.ImageQuery,
	}

	if s.BigNumber != nil {
		entity.BigNumberValue = &s.BigNumber.Value
		entity.BigNumberLabel = &s.BigNumber.Label
		entity.BigNumberContext = s.BigNumber.Context
	}
	if s.Image != nil {
		entity.ImageURL = &s.Image.URL
		if s.Image.Alt != "" {
			entity.ImageAlt = &s.Image.Alt
		}
		if s.Image.Credit != "" {
			entity.ImageCredit = &s.Image.Credit
		}
	}
	return entity, nil
}

func slideFromEntity(entity *entities.PresentationSlide) (slide.Slide, error) {
	s := slide.Slide{
		Type:        slide.Type(entity.SlideType),
		Title:       entity.Title,
		Layout:      slide.Layout(entity.Layout),
		Order:       entity.Order,
		Subtitle:    entity.Subtitle,
		Body:        entity.Body,
		Quote:       entity.Quote,
		Attribution: entity.Attribution,
		ChartType:   entity.ChartType,
		ImageQuery:  entity.ImageQuery,
	}

	if err := unmarshalJSON(entity.Bullets, &s.Bullets); err != nil {
		return s, fmt.Errorf("unmarshal bullets: %w", err)
	}
	if err := unmarshalJSON(entity.ChartData, &s.ChartData); err != nil {
		return s, fmt.Errorf("unmarshal chart data: %w", err)
	}
	if len(entity.ChartConfig) > 0 {
		var cfg slide.ChartConfig
		if err := json.Unmarshal(entity.ChartConfig, &cfg); err != nil {
			return s, fmt.Errorf("unmarshal chart config: %w", err)
		}
		s.ChartConfig = &cfg
	}
	if err := unmarshalJSON(entity.Stats, &s.Stats); err != nil {
		return s, fmt.Errorf("unmarshal stats: %w", err)
	}
	if err := unmarshalJSON(entity.ComparisonColumns, &s.ComparisonColumns); err != nil {
		return s, fmt.Errorf("unmarshal comparison columns: %w", err)
	}
	if err := unmarshalJSON(entity.TimelineItems, &s.TimelineItems); err != nil {
		return s, fmt.Errorf("unmarshal timeline items: %w", err)
	}

	if entity.BigNumberValue != nil && entity.BigNumberLabel != nil {
		s.BigNumber = &slide.BigNumber{
			Value:   *entity.BigNumberValue,
			Label:   *entity.BigNumberLabel,
			Context: entity.BigNumberContext,
		}
	}
	if entity.ImageURL != nil {
		img := &slide.Image{URL: *entity.ImageURL}
		if entity.ImageAlt != nil {
			img.Alt = *entity.ImageAlt
		}
		if entity.ImageCredit != nil {
			img.Credit = *entity.ImageCredit
		}
		s.Image = img
	}
	return s, nil
}

// marshalJSONPtr keeps nil pointers as NULL rather than the JSON null literal.
func marshalJSONPtr[T any](value *T) (datatypes.JSON, error) {
	if value == nil {
		return nil, nil
	}
	bytes, err := json.Marshal(value)
	return datatypes.JSON(bytes), err
}

// marshalJSONSlice keeps nil slices as NULL so absent collections round-trip
// as absent rather than empty.
func marshalJSONSlice[T any](items []T) (datatypes.JSON, error) {
	if items == nil {
		return nil, nil
	}
	bytes, err := json.Marshal(items)
	return datatypes.JSON(bytes), err
}

func unmarshalJSON(raw datatypes.JSON, target interface{}) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return json.Unmarshal(raw, target)
}
