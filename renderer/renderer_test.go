package renderer

import (
	"embed"
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"text/template"

	"github.com/google/go-cmp/cmp"
)

//go:embed testdata
var testdata embed.FS

var fixPartials = flag.Bool("fix-partials", false, "if true, update failing golden .md files with the received output")

func TestFixPartialsIsOff(t *testing.T) {
	if *fixPartials {
		t.Fatal("-fix-partials is enabled. This flag should only be used for updating test fixtures and must be disabled for regular tests.")
	}
}

// loadAsset reads the report used by every asset golden test.
func loadAsset(t *testing.T) *Asset {
	t.Helper()
	data, err := testdata.ReadFile("testdata/asset.json")
	if err != nil {
		t.Fatalf("failed to read asset.json: %v", err)
	}
	var a Asset
	if err := json.Unmarshal(data, &a); err != nil {
		t.Fatalf("failed to unmarshal asset.json: %v", err)
	}
	return &a
}

// golden compares got with testdata/name.md, or rewrites it with -fix-partials.
func golden(t *testing.T, name, got string) {
	t.Helper()
	path := "testdata/" + name + ".md"
	want, err := testdata.ReadFile(path)
	if err != nil && !*fixPartials {
		t.Fatalf("failed to read golden file %q: %v", path, err)
	}
	if got == string(want) {
		return
	}
	if !*fixPartials {
		t.Errorf("%s mismatch (-want +got):\n%s", name, cmp.Diff(string(want), got))
		return
	}
	if err := os.WriteFile(filepath.FromSlash(path), []byte(got), 0o644); err != nil {
		t.Fatalf("failed to write golden file %q: %v", path, err)
	}
	t.Logf("updated golden file %s", path)
}

// partials lists the templates included by another one, e.g. asset_title.md
// is a partial of asset.md.
func partials(t *testing.T) []string {
	t.Helper()
	entries, err := templates.ReadDir(".")
	if err != nil {
		t.Fatalf("failed to read embedded templates: %v", err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".md"))
	}
	var list []string
	for _, name := range names {
		for _, other := range names {
			if strings.HasPrefix(name, other+"_") {
				list = append(list, name)
				break
			}
		}
	}
	return list
}

func TestTemplatePartials(t *testing.T) {
	a := loadAsset(t)
	for _, name := range partials(t) {
		t.Run(name, func(t *testing.T) {
			content, err := templates.ReadFile(name + ".md")
			if err != nil {
				t.Fatalf("failed to read template %q: %v", name, err)
			}
			tmpl, err := template.New(name).Parse(string(content))
			if err != nil {
				t.Fatalf("failed to parse template %q: %v", name, err)
			}
			var b strings.Builder
			if err := tmpl.Execute(&b, a); err != nil {
				t.Fatalf("failed to execute template %q: %v", name, err)
			}
			golden(t, name, b.String())
		})
	}
}

func TestRenderAsset(t *testing.T) {
	a := loadAsset(t)
	golden(t, "asset_assembly", RenderAsset(a, AssetRenderOptions{}))

	got := RenderAsset(a, AssetRenderOptions{SkipHolders: true, SkipApprovals: true})
	for _, skipped := range []string{"## Holders", "## Approvals"} {
		if strings.Contains(got, skipped) {
			t.Errorf("RenderAsset() with skips contains %q", skipped)
		}
	}
	if !strings.HasPrefix(got, "# ") {
		t.Errorf("RenderAsset() = %q, want a title first", got)
	}
}

func TestGoldenFilesHaveTemplates(t *testing.T) {
	entries, err := testdata.ReadDir("testdata")
	if err != nil {
		t.Fatalf("failed to read testdata: %v", err)
	}
	known := map[string]bool{"asset.json": true, "asset_assembly.md": true}
	for _, name := range partials(t) {
		known[name+".md"] = true
	}
	for _, e := range entries {
		if !known[e.Name()] {
			t.Errorf("orphan testdata file %s: no template renders it", e.Name())
		}
	}
}
