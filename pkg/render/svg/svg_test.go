package svg

import (
	"encoding/json"
	"encoding/xml"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/bensonglobal/meridian/pkg/dataset"
	"github.com/bensonglobal/meridian/pkg/diagram"
)

var quiet = log.New(io.Discard)

func orbitalFrame(t *testing.T) diagram.OrbitalFrame {
	t.Helper()
	f, err := diagram.OrbitalAt(dataset.Default().Orbital(), diagram.Options{Logger: quiet}, 800, 600, 2*time.Second)
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func networkFrame(t *testing.T, hovered string) diagram.NetworkFrame {
	t.Helper()
	f, err := diagram.NetworkAt(dataset.Default().Network(), diagram.Options{Seed: 7, Logger: quiet}, 800, 600, 3*time.Second, hovered)
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func wellFormed(t *testing.T, doc []byte) {
	t.Helper()
	d := xml.NewDecoder(strings.NewReader(string(doc)))
	for {
		_, err := d.Token()
		if err == io.EOF {
			return
		}
		if err != nil {
			t.Fatalf("malformed SVG: %v\n%s", err, doc)
		}
	}
}

func TestOrbital(t *testing.T) {
	f := orbitalFrame(t)
	doc := Orbital(f, WithBackground(MatteBlack))
	wellFormed(t, doc)
	s := string(doc)

	if !strings.HasPrefix(s, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 800 600"`) {
		t.Errorf("unexpected header: %.80s", s)
	}
	if got := strings.Count(s, `class="node"`); got != len(f.Items) {
		t.Errorf("nodes = %d, want %d", got, len(f.Items))
	}
	if got := strings.Count(s, `stroke-dasharray="2 4"`); got != len(f.Rings) {
		t.Errorf("tracks = %d, want %d", got, len(f.Rings))
	}
	for _, want := range []string{">BGWM</text>", "centerGradient", ">Family Offices</text>", `fill="` + MatteBlack + `"`} {
		if !strings.Contains(s, want) {
			t.Errorf("missing %q", want)
		}
	}
	if strings.Contains(s, "<animate") {
		t.Error("static render contains animations")
	}
	// Labels are never rotated with their node.
	if strings.Contains(s, `<text text-anchor="middle" transform`) {
		t.Error("label carries a transform")
	}
}

func TestOrbitalAnimate(t *testing.T) {
	s := string(Orbital(orbitalFrame(t), WithAnimate()))
	for _, want := range []string{`<animate attributeName="opacity"`, `<animateTransform attributeName="transform" type="rotate"`} {
		if !strings.Contains(s, want) {
			t.Errorf("missing %q", want)
		}
	}
}

func TestNetwork(t *testing.T) {
	f := networkFrame(t, "")
	doc := Network(f)
	wellFormed(t, doc)
	s := string(doc)

	if got := strings.Count(s, `class="hub-node"`); got != len(f.Hubs) {
		t.Errorf("hubs = %d, want %d", got, len(f.Hubs))
	}
	if got := strings.Count(s, `data-source=`); got != len(f.Lanes) {
		t.Errorf("lanes = %d, want %d", got, len(f.Lanes))
	}
	// 800/40 vertical plus 600/40 horizontal grid lines.
	if got := strings.Count(s, "<line "); got != 20+15 {
		t.Errorf("grid lines = %d, want 35", got)
	}
	for _, want := range []string{">JOHANNESBURG</text>", "radar-grad", `class="radar"`} {
		if !strings.Contains(s, want) {
			t.Errorf("missing %q", want)
		}
	}
	if strings.Contains(s, `class="tooltip"`) {
		t.Error("tooltip drawn without hover")
	}
}

func TestNetworkHovered(t *testing.T) {
	f := networkFrame(t, "Doha")
	s := string(Network(f))
	wellFormed(t, []byte(s))

	for _, want := range []string{`class="tooltip"`, ">DOHA</text>", ">Middle East / TG4</text>", ">High Activity</text>"} {
		if !strings.Contains(s, want) {
			t.Errorf("missing %q", want)
		}
	}
	if got := strings.Count(s, `class="core" r="4" fill="`+Gold+`"`); got != 1 {
		t.Errorf("highlighted cores = %d, want 1", got)
	}
}

func TestEscapesLabels(t *testing.T) {
	f := orbitalFrame(t)
	f.Label = `<A&B>`
	s := string(Orbital(f))
	if !strings.Contains(s, "&lt;A&amp;B&gt;") {
		t.Error("label not escaped")
	}
	wellFormed(t, []byte(s))
}

func TestJSON(t *testing.T) {
	data, err := JSON(networkFrame(t, "London"))
	if err != nil {
		t.Fatal(err)
	}
	var out struct {
		Diagram string `json:"diagram"`
		Hubs    []struct {
			ID string `json:"id"`
		} `json:"hubs"`
		Panel struct {
			Active bool   `json:"active"`
			Title  string `json:"title"`
		} `json:"panel"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if out.Diagram != "network" || len(out.Hubs) != 7 || !out.Panel.Active || out.Panel.Title != "LONDON" {
		t.Errorf("unexpected JSON: %+v", out)
	}
}

func TestPulse(t *testing.T) {
	tests := []struct {
		at   time.Duration
		want float64
	}{
		{0, 0},
		{750 * time.Millisecond, 0.5},
		{1500 * time.Millisecond, 1},
		{3 * time.Second, 0},
	}
	for _, tt := range tests {
		if got := pulse(tt.at, 3*time.Second); got < tt.want-1e-9 || got > tt.want+1e-9 {
			t.Errorf("pulse(%v) = %v, want %v", tt.at, got, tt.want)
		}
	}
}
