package geo_test

import (
	"math"
	"testing"

	"cadence/shared/geo"
)

func TestHaversine(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lng1, lat2, lng2 float64
		wantKm                 float64
		toleranceKm            float64
	}{
		{
			name: "same point",
			lat1: 48.8566, lng1: 2.3522,
			lat2: 48.8566, lng2: 2.3522,
			wantKm:      0,
			toleranceKm: 0.001,
		},
		{
			name: "paris to london",
			lat1: 48.8566, lng1: 2.3522,
			lat2: 51.5074, lng2: -0.1278,
			wantKm:      343.5,
			toleranceKm: 2,
		},
		{
			name: "paris to marseille",
			lat1: 48.8566, lng1: 2.3522,
			lat2: 43.2965, lng2: 5.3698,
			wantKm:      660.5,
			toleranceKm: 3,
		},
		{
			name: "across the antimeridian",
			lat1: 0, lng1: 179.5,
			lat2: 0, lng2: -179.5,
			wantKm:      111.2,
			toleranceKm: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := geo.Haversine(tt.lat1, tt.lng1, tt.lat2, tt.lng2)

			if math.Abs(got-tt.wantKm) > tt.toleranceKm {
				t.Errorf("expected ~%.1f km, got %.1f km", tt.wantKm, got)
			}
		})
	}
}

func TestHaversine_Symmetry(t *testing.T) {
	d1 := geo.Haversine(48.8566, 2.3522, 43.2965, 5.3698)
	d2 := geo.Haversine(43.2965, 5.3698, 48.8566, 2.3522)

	if math.Abs(d1-d2) > 1e-9 {
		t.Errorf("expected symmetric distance, got %f and %f", d1, d2)
	}
}
