package aliasgraph

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/iconfinder/pkg/convert"
	"github.com/matzehuels/iconfinder/pkg/iconify"
	"github.com/matzehuels/iconfinder/pkg/iconset"
)

const fixture = `{
	"prefix": "demo",
	"info": {"name": "Demo"},
	"icons": {
		"home": {"body": "<g/>"},
		"arrow-left": {"body": "<g/>"},
		"secret": {"body": "<g/>", "hidden": true}
	},
	"aliases": {
		"house": {"parent": "home"},
		"arrow-right": {"parent": "arrow-left", "hFlip": true},
		"arrow-right-alt": {"parent": "arrow-right"},
		"arrow-down": {"parent": "arrow-right", "rotate": 1}
	}
}`

func demoSet(t *testing.T) *iconset.IconSet {
	t.Helper()
	raw, err := iconify.ParseIconSet([]byte(fixture))
	if err != nil {
		t.Fatal(err)
	}
	set := convert.RawIconSet("", raw)
	if set == nil {
		t.Fatal("RawIconSet returned nil")
	}
	return set
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(demoSet(t), Options{})

	for _, want := range []string{
		`digraph "demo" {`,
		`"house" -> "home";`,
		`"arrow-right" -> "arrow-left" [label="hflip", style=dashed];`,
		`"arrow-right-alt" -> "arrow-right";`,
		`"arrow-down" -> "arrow-right" [label="90deg", style=dashed];`,
		`renders arrow-left (hflip)`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
	if strings.Contains(dot, `"secret"`) {
		t.Error("hidden icon should be omitted")
	}
	if !strings.Contains(ToDOT(demoSet(t), Options{Hidden: true}), `"secret"`) {
		t.Error("hidden icon should be included with Hidden")
	}
}

func TestToDOTNames(t *testing.T) {
	dot := ToDOT(demoSet(t), Options{Names: []string{"arrow-down"}})
	if strings.Contains(dot, `"home"`) {
		t.Errorf("unrelated cluster included:\n%s", dot)
	}
	for _, want := range []string{`"arrow-down"`, `"arrow-right"`, `"arrow-left"`} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %s:\n%s", want, dot)
		}
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="20pt" viewBox="0.00 0.00 10.00 20.00"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10.00 20.00" width="10" height="20"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox() = %s, want %s", got, want)
	}
}

func TestRender(t *testing.T) {
	ctx := context.Background()
	dot := ToDOT(demoSet(t), Options{})

	got, err := Render(ctx, dot, "dot")
	if err != nil || string(got) != dot {
		t.Errorf("Render(dot) = %q, %v", got, err)
	}
	if _, err := Render(ctx, dot, "gif"); err == nil {
		t.Error("Render(gif) should fail")
	}

	svg, err := Render(ctx, dot, "svg")
	if err != nil {
		t.Fatalf("Render(svg) error = %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Errorf("Render(svg) did not produce SVG")
	}
}
