package deck

import "decksnap/slides-api/internal/domain/slide"

// builder accumulates slides during a run. The loop owns the order counter:
// each appended slide receives the current counter value before the counter
// advances, regardless of what the agent supplied.
type builder struct {
	slides []slide.Slide
	next   int
}

func newBuilder() *builder {
	return &builder{slides: make([]slide.Slide, 0, DefaultSlideCount)}
}

// append stamps the slide with the next order value and stores it.
// The returned copy is the canonical form that gets persisted and emitted.
func (b *builder) append(s slide.Slide) slide.Slide {
	s.Order = b.next
	b.next++
	b.slides = append(b.slides, s)
	return s
}

func (b *builder) count() int {
	return b.next
}
