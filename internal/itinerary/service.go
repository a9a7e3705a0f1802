// Package itinerary turns a trip request into a narrative itinerary:
// it builds the retrieval query, gathers hybrid-retrieval context from
// the attraction and restaurant domains, and hands the flattened
// context to the language model.
package itinerary

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tourgether/tourgether/internal/domain"
	"github.com/tourgether/tourgether/internal/region"
	"github.com/tourgether/tourgether/internal/retrieval"
)

// Final top-k per domain. The retrieval candidate pool is larger so
// fusion has overlap to work with; these are the display counts.
const (
	AttractionTopK = 5
	RestaurantTopK = 3
)

// MaxFeaturedAttractions caps how many pictured attractions are
// surfaced alongside the itinerary text.
const MaxFeaturedAttractions = 6

// MaxDays bounds the trip length accepted from clients.
const MaxDays = 30

// Retriever is the hybrid retrieval contract the service consumes.
type Retriever interface {
	Retrieve(ctx context.Context, query string, d domain.Domain, topK int) ([]retrieval.Document, error)
}

// TextGenerator is the language-model contract: prompt in, narrative out.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Request describes one trip to plan.
type Request struct {
	Destination string
	Days        int
	BudgetMin   int
	BudgetMax   int
	Currency    string
	TripType    string
	Pace        string
	Dining      string
	Region      string // optional detected region key
}

// Featured is an attraction surfaced with the itinerary for display.
type Featured struct {
	Name       string `json:"name"`
	PictureURL string `json:"picture_url"`
}

// Metadata describes the trip an itinerary was generated for.
type Metadata struct {
	Destination string    `json:"destination"`
	Days        int       `json:"days"`
	Budget      string    `json:"budget"`
	TripType    string    `json:"trip_type"`
	Region      string    `json:"region,omitempty"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Itinerary is the generation result.
type Itinerary struct {
	ID          string     `json:"id"`
	Text        string     `json:"itinerary"`
	Attractions []Featured `json:"attractions"`
	Metadata    Metadata   `json:"metadata"`
}

// Service orchestrates retrieval and generation for trip requests.
type Service struct {
	retriever Retriever
	generator TextGenerator
}

// New creates an itinerary service.
func New(retriever Retriever, generator TextGenerator) *Service {
	return &Service{retriever: retriever, generator: generator}
}

// Plan retrieves context for the request and generates the itinerary.
func (s *Service) Plan(ctx context.Context, req Request) (Itinerary, error) {
	if err := validate(req); err != nil {
		return Itinerary{}, err
	}
	applyDefaults(&req)

	query := BuildQuery(req)

	attractions, err := s.retriever.Retrieve(ctx, query, domain.DomainAttraction, AttractionTopK)
	if err != nil {
		return Itinerary{}, fmt.Errorf("retrieve attractions: %w", err)
	}
	restaurants, err := s.retriever.Retrieve(ctx, query, domain.DomainRestaurant, RestaurantTopK)
	if err != nil {
		return Itinerary{}, fmt.Errorf("retrieve restaurants: %w", err)
	}

	docs := append(attractions, restaurants...)

	text, err := s.generator.Generate(ctx, BuildPrompt(query, docs))
	if err != nil {
		return Itinerary{}, fmt.Errorf("generate itinerary: %w", err)
	}

	budget := FormatBudget(req.Currency, req.BudgetMin, req.BudgetMax)
	return Itinerary{
		ID:          uuid.NewString(),
		Text:        text,
		Attractions: featured(docs),
		Metadata: Metadata{
			Destination: req.Destination,
			Days:        req.Days,
			Budget:      budget,
			TripType:    req.TripType,
			Region:      req.Region,
			GeneratedAt: time.Now().UTC(),
		},
	}, nil
}

// BuildQuery assembles the retrieval/generation query from the request.
func BuildQuery(req Request) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d day trip to %s focusing on %s", req.Days, req.Destination, req.TripType)
	fmt.Fprintf(&b, " with budget %s.", FormatBudget(req.Currency, req.BudgetMin, req.BudgetMax))
	fmt.Fprintf(&b, " Pace: %s. Dining: %s.", req.Pace, req.Dining)
	if req.Region != "" {
		fmt.Fprintf(&b, " (Traveler interested in %s destinations)", region.DisplayName(req.Region))
	}
	return b.String()
}

// BuildPrompt flattens the retrieved documents into the generation
// prompt: record texts joined with newlines in ranked order.
func BuildPrompt(query string, docs []retrieval.Document) string {
	texts := make([]string, len(docs))
	for i, d := range docs {
		texts[i] = d.Text
	}
	return fmt.Sprintf(
		"You are a professional travel planner. Create a narrative itinerary for %s.\n"+
			"Context:\n%s\n"+
			"Output the itinerary with clear Day sections using ### Day X.",
		query, strings.Join(texts, "\n"),
	)
}

// FormatBudget renders a budget range like "USD 2,000 - 6,000".
func FormatBudget(currency string, low, high int) string {
	return fmt.Sprintf("%s %s - %s", currency, groupDigits(low), groupDigits(high))
}

func validate(req Request) error {
	if req.Destination == "" {
		return fmt.Errorf("%w: destination is required", domain.ErrInvalidRequest)
	}
	if req.Days < 1 || req.Days > MaxDays {
		return fmt.Errorf("%w: days must be between 1 and %d, got %d",
			domain.ErrInvalidRequest, MaxDays, req.Days)
	}
	if req.BudgetMin < 0 || req.BudgetMax < req.BudgetMin {
		return fmt.Errorf("%w: budget range %d - %d",
			domain.ErrInvalidRequest, req.BudgetMin, req.BudgetMax)
	}
	return nil
}

func applyDefaults(req *Request) {
	if req.Currency == "" {
		req.Currency = "USD"
	}
	if req.TripType == "" {
		req.TripType = region.DefaultTripType
	}
	if req.Pace == "" {
		req.Pace = "Moderate"
	}
	if req.Dining == "" {
		req.Dining = "Mix of local & international"
	}
}

// featured picks the pictured documents in ranked order, capped at
// MaxFeaturedAttractions.
func featured(docs []retrieval.Document) []Featured {
	out := make([]Featured, 0, MaxFeaturedAttractions)
	for _, d := range docs {
		if d.PictureURL == "" {
			continue
		}
		out = append(out, Featured{Name: d.Name, PictureURL: d.PictureURL})
		if len(out) == MaxFeaturedAttractions {
			break
		}
	}
	return out
}

// groupDigits inserts thousands separators into a non-negative integer.
func groupDigits(n int) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
