package geo

import (
	"math"
	"testing"
)

var (
	toronto = Hub{ID: "Toronto", Lat: 43.6532, Lng: -79.3832, Role: "HQ / North America", Status: "Operational"}
	london  = Hub{ID: "London", Lat: 51.5074, Lng: -0.1278, Role: "EMEA Hub", Status: "Active"}
)

func TestProjectCenterMapsToTranslate(t *testing.T) {
	p := Fit(800, 600)
	pt := p.Project(DefaultCenterLat, DefaultCenterLng)
	if math.Abs(pt.X-400) > 1e-9 || math.Abs(pt.Y-300) > 1e-9 {
		t.Errorf("center projected to %v, want (400, 300)", pt)
	}
}

func TestProjectTorontoLondon(t *testing.T) {
	p := Fit(800, 600)
	tor := p.ProjectHub(toronto)
	lon := p.ProjectHub(london)

	if lon.X <= tor.X {
		t.Errorf("London.X = %v, want > Toronto.X = %v", lon.X, tor.X)
	}
	// London is further north, so it sits higher on screen.
	if lon.Y >= tor.Y {
		t.Errorf("London.Y = %v, want < Toronto.Y = %v", lon.Y, tor.Y)
	}
	// Both are west of the 10°E center.
	if tor.X >= 400 || lon.X >= 400 {
		t.Errorf("expected both hubs left of center, got %v and %v", tor, lon)
	}
}

func TestProjectScaleFollowsWidth(t *testing.T) {
	small := Fit(400, 600)
	large := Fit(800, 600)
	if large.Scale != 2*small.Scale {
		t.Errorf("Scale = %v, want %v", large.Scale, 2*small.Scale)
	}

	// Offsets from the translate point scale linearly with width.
	ps := small.ProjectHub(london)
	pl := large.ProjectHub(london)
	ds := ps.X - small.TranslateX
	dl := pl.X - large.TranslateX
	if math.Abs(dl-2*ds) > 1e-9 {
		t.Errorf("x offset = %v, want %v", dl, 2*ds)
	}
}

func TestProjectResizeRoundTrip(t *testing.T) {
	hubs := []Hub{toronto, london}
	before := Fit(800, 600).ProjectAll(hubs)
	_ = Fit(1280, 720).ProjectAll(hubs)
	after := Fit(800, 600).ProjectAll(hubs)

	for id, pt := range before {
		if after[id] != pt {
			t.Errorf("%s: after resize-back = %v, want %v", id, after[id], pt)
		}
	}
}

func TestProjectPolesStayFinite(t *testing.T) {
	p := Fit(800, 600)
	for _, lat := range []float64{90, -90} {
		pt := p.Project(lat, 0)
		if math.IsInf(pt.Y, 0) || math.IsNaN(pt.Y) {
			t.Errorf("Project(%v, 0).Y = %v, want finite", lat, pt.Y)
		}
	}
}

func TestFitOptions(t *testing.T) {
	p := Fit(900, 600, WithCenter(0, 0), WithScaleDivisor(3))
	if p.CenterLng != 0 || p.CenterLat != 0 {
		t.Errorf("center = (%v, %v), want (0, 0)", p.CenterLng, p.CenterLat)
	}
	if p.Scale != 300 {
		t.Errorf("Scale = %v, want 300", p.Scale)
	}

	ignored := Fit(900, 600, WithScaleDivisor(0))
	if ignored.Scale != 900/DefaultScaleDivisor {
		t.Errorf("Scale = %v, want default", ignored.Scale)
	}
}

func TestHubValidate(t *testing.T) {
	tests := []struct {
		name    string
		hub     Hub
		wantErr bool
	}{
		{"valid", toronto, false},
		{"empty id", Hub{Lat: 1, Lng: 1}, true},
		{"bad lat", Hub{ID: "x", Lat: 91}, true},
		{"bad lng", Hub{ID: "x", Lng: 181}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.hub.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestIndexLookup(t *testing.T) {
	idx := NewIndex([]Hub{toronto, london})
	if h, err := idx.Lookup("London"); err != nil || h.Role != "EMEA Hub" {
		t.Errorf("Lookup(London) = %v, %v", h, err)
	}
	if _, err := idx.Lookup("Paris"); err == nil {
		t.Error("Lookup(Paris) error = nil, want UNKNOWN_HUB")
	}
}
