package deck

import (
	"testing"

	"decksnap/slides-api/internal/domain/slide"
)

func mustSlide(typ string) slide.Slide {
	return slide.Slide{Type: slide.Type(typ), Title: "t", Layout: slide.LayoutCenter}
}

func TestEmitterDropsEventsAfterTerminal(t *testing.T) {
	var got []EventType
	e := NewEmitter(func(ev Event) { got = append(got, ev.Type) })

	e.Thinking(1, "planning")
	e.Complete(&Document{PublicID: "pres_x"})
	e.Error(ErrorDetails{Code: "generation_failed", Message: "late"})
	e.Thinking(2, "should be dropped")
	e.Complete(&Document{PublicID: "pres_x"})

	want := []EventType{EventThinking, EventComplete}
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestEmitterNilSink(t *testing.T) {
	e := NewEmitter(nil)
	e.Thinking(1, "quiet")
	e.Complete(&Document{})
	e.Error(ErrorDetails{})
}

func TestBuilderAssignsSequentialOrder(t *testing.T) {
	b := newBuilder()
	first := b.append(mustSlide("title"))
	second := b.append(mustSlide("content"))

	if first.Order != 0 || second.Order != 1 {
		t.Errorf("orders = %d, %d, want 0, 1", first.Order, second.Order)
	}
	if b.count() != 2 {
		t.Errorf("count = %d, want 2", b.count())
	}
}
