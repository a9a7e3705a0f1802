// Package region maps classifier-detected regions to trip preferences
// and destination suggestions. The table is static; region filtering
// happens at the retrieval layer, not in the LLM prompt, and budget
// adjustment is a suggestion the client may ignore.
package region

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tourgether/tourgether/internal/domain"
)

// LowConfidenceThreshold is the classifier confidence below which the
// client should warn the user. The primary trip type is still returned
// below the threshold; only the presentation differs.
const LowConfidenceThreshold = 0.6

// DefaultTripType is used when the region is unknown.
const DefaultTripType = "landmarks"

// Preferences holds the trip defaults for one region.
type Preferences struct {
	PrimaryType    string
	SecondaryTypes []string
	Destinations   []string
	BudgetModifier float64
	CurrencyHint   string
	Seasons        []string
}

var preferences = map[string]Preferences{
	"north_america": {
		PrimaryType:    "landmarks",
		SecondaryTypes: []string{"entertainment", "nature"},
		Destinations: []string{
			"New York", "Los Angeles", "San Francisco", "Chicago",
			"Las Vegas", "Miami", "Seattle", "Boston",
			"Toronto", "Vancouver", "Montreal", "Mexico City",
		},
		BudgetModifier: 1.3,
		CurrencyHint:   "USD",
		Seasons:        []string{"Spring (Apr-Jun)", "Fall (Sep-Nov)"},
	},
	"europe": {
		PrimaryType:    "historical_places",
		SecondaryTypes: []string{"landmarks", "nature"},
		Destinations: []string{
			"Paris", "Rome", "London", "Barcelona",
			"Amsterdam", "Prague", "Vienna", "Athens",
			"Lisbon", "Berlin", "Venice", "Dublin",
		},
		BudgetModifier: 1.2,
		CurrencyHint:   "EUR",
		Seasons:        []string{"Spring (Apr-Jun)", "Summer (Jul-Aug)"},
	},
	"east_asia": {
		PrimaryType:    "landmarks",
		SecondaryTypes: []string{"historical_places", "entertainment"},
		Destinations: []string{
			"Tokyo", "Kyoto", "Osaka", "Seoul",
			"Beijing", "Shanghai", "Hong Kong", "Taipei",
			"Busan", "Nara", "Yokohama", "Jeju Island",
		},
		BudgetModifier: 1.1,
		CurrencyHint:   "JPY",
		Seasons:        []string{"Spring (Mar-May)", "Fall (Sep-Nov)"},
	},
	"south_southeast_asia": {
		PrimaryType:    "nature",
		SecondaryTypes: []string{"historical_places", "entertainment"},
		Destinations: []string{
			"Bangkok", "Singapore", "Bali", "Kuala Lumpur",
			"Phuket", "Hanoi", "Ho Chi Minh City", "Siem Reap",
			"Manila", "Penang", "Chiang Mai", "Yangon",
			"Jakarta", "Boracay", "Luang Prabang", "Ubud",
		},
		BudgetModifier: 0.8,
		CurrencyHint:   "MYR",
		Seasons:        []string{"Nov-Feb (Dry)", "Year-round (varies)"},
	},
	"oceania": {
		PrimaryType:    "nature",
		SecondaryTypes: []string{"entertainment", "landmarks"},
		Destinations: []string{
			"Sydney", "Melbourne", "Auckland", "Brisbane",
			"Gold Coast", "Wellington", "Perth", "Queenstown",
			"Cairns", "Christchurch", "Hobart", "Fiji",
		},
		BudgetModifier: 1.4,
		CurrencyHint:   "AUD",
		Seasons:        []string{"Summer (Dec-Feb)", "Spring (Sep-Nov)"},
	},
	"middle_east": {
		PrimaryType:    "historical_places",
		SecondaryTypes: []string{"landmarks", "entertainment"},
		Destinations: []string{
			"Dubai", "Abu Dhabi", "Istanbul", "Jerusalem",
			"Petra", "Doha", "Muscat", "Riyadh",
			"Cairo", "Amman", "Tel Aviv", "Beirut",
		},
		BudgetModifier: 1.2,
		CurrencyHint:   "USD",
		Seasons:        []string{"Oct-Apr (Mild)", "Avoid Jun-Aug"},
	},
	"africa": {
		PrimaryType:    "nature",
		SecondaryTypes: []string{"historical_places", "landmarks"},
		Destinations: []string{
			"Cape Town", "Marrakech", "Cairo", "Nairobi",
			"Johannesburg", "Zanzibar", "Victoria Falls", "Serengeti",
			"Casablanca", "Luxor", "Durban", "Mauritius",
			"Tunis", "Addis Ababa", "Kruger Park", "Fez",
		},
		BudgetModifier: 0.9,
		CurrencyHint:   "USD",
		Seasons:        []string{"May-Oct (Dry)", "Jun-Aug (Safari)"},
	},
	"caribbean_central_america": {
		PrimaryType:    "nature",
		SecondaryTypes: []string{"entertainment", "historical_places"},
		Destinations: []string{
			"Cancun", "Havana", "San Juan", "Panama City",
			"Costa Rica", "Aruba", "Bahamas", "Jamaica",
			"Barbados", "Antigua", "Cartagena", "Belize City",
			"Punta Cana", "Turks & Caicos", "Guatemala City", "San Jose",
		},
		BudgetModifier: 1.0,
		CurrencyHint:   "USD",
		Seasons:        []string{"Dec-Apr (Dry)", "Avoid Sep-Nov (Hurricane)"},
	},
	"south_america": {
		PrimaryType:    "nature",
		SecondaryTypes: []string{"historical_places", "landmarks"},
		Destinations: []string{
			"Rio de Janeiro", "Buenos Aires", "Lima", "Cusco",
			"Santiago", "Bogota", "Cartagena", "Quito",
			"Sao Paulo", "Machu Picchu", "Iguazu Falls", "Montevideo",
			"Galapagos", "Patagonia", "Medellin", "La Paz",
		},
		BudgetModifier: 0.9,
		CurrencyHint:   "USD",
		Seasons:        []string{"Dec-Mar (Summer)", "Jun-Aug (Winter)"},
	},
}

// Known returns every region name in sorted order.
func Known() []string {
	out := make([]string, 0, len(preferences))
	for name := range preferences {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Info returns the preferences for a region, or ErrRegionNotFound.
func Info(name string) (Preferences, error) {
	p, ok := preferences[name]
	if !ok {
		return Preferences{}, fmt.Errorf("%w: %q", domain.ErrRegionNotFound, name)
	}
	return p, nil
}

// TripType returns the primary trip type for a detected region. The
// confidence does not change the answer: low-confidence detections keep
// the primary type and rely on the client to surface the uncertainty.
// Unknown regions fall back to DefaultTripType.
func TripType(name string, confidence float64) string {
	p, ok := preferences[name]
	if !ok {
		return DefaultTripType
	}
	_ = confidence
	return p.PrimaryType
}

// Suggestions returns up to limit destination suggestions for a region.
// Unknown regions yield nil.
func Suggestions(name string, limit int) []string {
	p, ok := preferences[name]
	if !ok {
		return nil
	}
	if limit > len(p.Destinations) {
		limit = len(p.Destinations)
	}
	return p.Destinations[:limit]
}

// Destinations returns every destination for a region. Unknown regions
// yield nil.
func Destinations(name string) []string {
	p, ok := preferences[name]
	if !ok {
		return nil
	}
	return p.Destinations
}

// AdjustBudget scales a budget range by the region's cost-of-living
// modifier. Unknown regions return the range unchanged.
func AdjustBudget(name string, low, high int) (int, int) {
	p, ok := preferences[name]
	if !ok {
		return low, high
	}
	return int(float64(low) * p.BudgetModifier), int(float64(high) * p.BudgetModifier)
}

// QueryContext returns additional retrieval-query context for a region,
// empty for unknown regions.
func QueryContext(name string) string {
	p, ok := preferences[name]
	if !ok {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Region: %s. ", DisplayName(name))
	fmt.Fprintf(&b, "Focus on %s ", strings.ReplaceAll(p.PrimaryType, "_", " "))
	fmt.Fprintf(&b, "and consider %s.", strings.Join(p.SecondaryTypes, ", "))
	return b.String()
}

// DisplayName converts a region key like "east_asia" to "East Asia".
func DisplayName(name string) string {
	words := strings.Split(name, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
