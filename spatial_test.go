package countries

import (
	"errors"
	"math"
	"math/rand"
	"strings"
	"testing"
	"testing/fstest"
)

// TestNearest_Centroids verifies every centroid maps back to its own country.
func TestNearest_Centroids(t *testing.T) {
	p := NewProvider()
	for _, c := range p.GetAll().Countries {
		got, found := p.Nearest(c.Latitude, c.Longitude).First()
		if !found {
			t.Errorf("Nearest(%v, %v) found nothing, want %q", c.Latitude, c.Longitude, c.Name)
			continue
		}
		if got.Name != c.Name {
			t.Errorf("Nearest(%v, %v) = %q, want %q", c.Latitude, c.Longitude, got.Name, c.Name)
		}
	}
}

func TestNearest_KnownCoords(t *testing.T) {
	p := NewProvider()
	for _, tc := range knownCoords {
		t.Run(tc.wantName, func(t *testing.T) {
			got, found := p.Nearest(tc.lat, tc.lng).First()
			if !found || got.Name != tc.wantName {
				t.Errorf("Nearest(%v, %v) = %q, want %q", tc.lat, tc.lng, got.Name, tc.wantName)
			}
		})
	}
}

// TestNearest_RemotePoint exercises the full-scan fallback: the middle of the
// South Pacific has no centroid in its neighbouring cells.
func TestNearest_RemotePoint(t *testing.T) {
	p := NewProvider()
	r := p.Nearest(-48.8767, -123.3933) // Point Nemo
	if !r.Success {
		t.Fatalf("Nearest(Point Nemo) failed: %s", r.ErrorMessage)
	}
	if len(r.Countries) != 1 {
		t.Fatalf("Nearest(Point Nemo) returned %d countries, want 1", len(r.Countries))
	}
}

// TestNearest_MatchesFullScan compares Nearest against a brute-force minimum
// over Distance for random points, including points far from any centroid.
func TestNearest_MatchesFullScan(t *testing.T) {
	p := NewProvider()
	all := p.GetAll().Countries
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 5000; i++ {
		query := Country{
			Latitude:  rng.Float64()*180 - 90,
			Longitude: rng.Float64()*360 - 180,
		}
		want := math.Inf(1)
		for _, c := range all {
			want = math.Min(want, Distance(query, c))
		}

		got, found := p.Nearest(query.Latitude, query.Longitude).First()
		if !found {
			t.Fatalf("Nearest(%v, %v) found nothing", query.Latitude, query.Longitude)
		}
		if d := Distance(query, got); d-want > 1e-6 {
			t.Errorf("Nearest(%.2f, %.2f) = %s (%.0f km), closest is %.0f km away",
				query.Latitude, query.Longitude, got.Name, d, want)
		}
	}

	// Greenland is in a neighbouring cell, the closer US centroid is not.
	got, _ := p.Nearest(45.14, -74.16).First()
	if got.Name != "United States" {
		t.Errorf("Nearest(45.14, -74.16) = %q, want %q", got.Name, "United States")
	}
}

func TestNearest_InvalidCoordinates(t *testing.T) {
	p := NewProvider()
	tests := []struct {
		name     string
		lat, lng float64
	}{
		{"NaN latitude", math.NaN(), 0},
		{"NaN longitude", 0, math.NaN()},
		{"+Inf latitude", math.Inf(1), 0},
		{"-Inf longitude", 0, math.Inf(-1)},
		{"latitude above 90", 90.5, 0},
		{"latitude below -90", -91, 0},
		{"longitude above 180", 0, 180.1},
		{"longitude below -180", 0, -200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := p.Nearest(tt.lat, tt.lng)
			if r.Success {
				t.Fatalf("Nearest(%v, %v) succeeded, want failure", tt.lat, tt.lng)
			}
			if !errors.Is(r.Err, ErrInvalidArgument) {
				t.Errorf("err = %v, want ErrInvalidArgument", r.Err)
			}
		})
	}
}

func TestNearest_EmptyDataset(t *testing.T) {
	p := NewProvider(WithDataFS(fstest.MapFS{"countries.json": {Data: []byte("[]")}}))
	r := p.Nearest(0, 0)
	if r.Success || !errors.Is(r.Err, ErrNotFound) {
		t.Errorf("Nearest on empty dataset = %+v, want ErrNotFound", r)
	}
}

func TestDistance(t *testing.T) {
	p := NewProvider()
	get := func(code string) Country {
		c, found := p.GetByAlpha2(code).First()
		if !found {
			t.Fatalf("country %s not found", code)
		}
		return c
	}
	france, germany := get("FR"), get("DE")
	india, japan := get("IN"), get("JP")

	tests := []struct {
		name string
		a, b Country
		want float64
	}{
		{"same country", india, india, 0},
		{"France-Germany", france, germany, 815.83},
		{"India-Japan", india, japan, 5959.31},
		{"symmetric", japan, india, 5959.31},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Distance(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1 {
				t.Errorf("Distance(%s, %s) = %.2f km, want %.2f km", tt.a.Name, tt.b.Name, got, tt.want)
			}
		})
	}
}

func TestGeohash(t *testing.T) {
	tests := []struct {
		code      string
		precision int
		want      string
	}{
		{"IN", 12, "tg8jhugnbkyy"},
		{"FR", 12, "u01wfrkp806c"},
		{"US", 12, "9yegjbpfrcze"},
		{"JP", 5, "xn6mf"},
		{"JP", 0, "x"},
		{"JP", 40, "xn6mfnbsqs7g"},
	}

	p := NewProvider()
	for _, tt := range tests {
		c, found := p.GetByAlpha2(tt.code).First()
		if !found {
			t.Fatalf("country %s not found", tt.code)
		}
		if got := c.Geohash(tt.precision); got != tt.want {
			t.Errorf("%s.Geohash(%d) = %q, want %q", tt.code, tt.precision, got, tt.want)
		}
	}
}

func TestSearchByGeohash(t *testing.T) {
	p := NewProvider()

	r := p.SearchByGeohash("TG8")
	if !r.Success {
		t.Fatalf("SearchByGeohash failed: %s", r.ErrorMessage)
	}
	if got := names(r); strings.Join(got, "|") != "India" {
		t.Errorf("SearchByGeohash(%q) = %v, want [India]", "TG8", got)
	}

	// Every record is found by a prefix of its own geohash, and every match
	// really has that prefix.
	for _, c := range p.GetAll().Countries {
		prefix := c.Geohash(2)
		r := p.SearchByGeohash(prefix)
		found := false
		for _, m := range r.Countries {
			if !strings.HasPrefix(m.Geohash(12), prefix) {
				t.Errorf("SearchByGeohash(%q) returned %s with geohash %s", prefix, m.Name, m.Geohash(12))
			}
			if m.Name == c.Name {
				found = true
			}
		}
		if !found {
			t.Errorf("SearchByGeohash(%q) does not include %s", prefix, c.Name)
		}
	}

	r = p.SearchByGeohash("zzzzzzzzzzzzz")
	if !r.Success || len(r.Countries) != 0 {
		t.Errorf("SearchByGeohash(no match) = %+v, want empty success", r)
	}
}
