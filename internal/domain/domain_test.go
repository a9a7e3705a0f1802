package domain

import (
	"math"
	"testing"
)

func TestParseDomain(t *testing.T) {
	tests := []struct {
		in      string
		want    Domain
		wantErr bool
	}{
		{"attraction", DomainAttraction, false},
		{"restaurant", DomainRestaurant, false},
		{"hotel", "", true},
		{"", "", true},
		{"Attraction", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDomain(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseDomain(%q) succeeded, want error", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDomain(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseDomain(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeVector(t *testing.T) {
	t.Run("scales to unit length", func(t *testing.T) {
		v := NormalizeVector([]float32{3, 4})
		var sum float64
		for _, x := range v {
			sum += float64(x) * float64(x)
		}
		if math.Abs(sum-1.0) > 1e-6 {
			t.Errorf("squared norm = %v, want 1.0", sum)
		}
		if math.Abs(float64(v[0])-0.6) > 1e-6 || math.Abs(float64(v[1])-0.8) > 1e-6 {
			t.Errorf("v = %v, want [0.6 0.8]", v)
		}
	})

	t.Run("zero vector unchanged", func(t *testing.T) {
		v := NormalizeVector([]float32{0, 0, 0})
		for i, x := range v {
			if x != 0 {
				t.Errorf("component %d = %v, want 0", i, x)
			}
		}
	})
}
