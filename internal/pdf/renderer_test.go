package pdf

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/tourgether/tourgether/internal/itinerary"
)

func sampleItinerary() itinerary.Itinerary {
	return itinerary.Itinerary{
		Text: "### Day 1\nMorning at the **castle**.\n- Guided tour\n- Lunch nearby\n\n### Day 2\nBeach day.",
		Attractions: []itinerary.Featured{
			{Name: "Old Castle", PictureURL: "https://img.example/castle.jpg"},
			{Name: "City Beach", PictureURL: "https://img.example/beach.jpg"},
		},
		Metadata: itinerary.Metadata{
			Destination: "Lisbon",
			Days:        2,
			Budget:      "EUR 1,000 - 3,000",
			TripType:    "historical_places",
			Region:      "europe",
			GeneratedAt: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
		},
	}
}

func TestRender(t *testing.T) {
	r := NewRenderer()

	data, err := r.Render(sampleItinerary())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("empty PDF output")
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("output does not start with PDF header: %q", data[:8])
	}
}

func TestRenderMinimal(t *testing.T) {
	r := NewRenderer()

	data, err := r.Render(itinerary.Itinerary{
		Text: "A quiet day in town.",
		Metadata: itinerary.Metadata{
			Destination: "Porto",
			Days:        1,
			GeneratedAt: time.Now().UTC(),
		},
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("output does not start with PDF header")
	}
}

func TestStripMarkdown(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"**bold** text", "bold text"},
		{"__also__ bold", "also bold"},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		if got := stripMarkdown(tt.in); got != tt.want {
			t.Errorf("stripMarkdown(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDisplayTripType(t *testing.T) {
	if got := displayTripType("historical_places"); got != "historical places" {
		t.Errorf("got %q", got)
	}
	if got := displayTripType("nature"); got != "nature" {
		t.Errorf("got %q", got)
	}
	if strings.Contains(displayTripType("a_b_c"), "_") {
		t.Error("underscores not removed")
	}
}
