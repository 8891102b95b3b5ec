package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"
)

//go:embed *.md
var templates embed.FS

// AssetRenderOptions holds configuration for rendering an asset report.
type AssetRenderOptions struct {
	SkipHolders   bool // Do not render the holders table.
	SkipApprovals bool // Do not render the approvals table.
}

// RenderAsset renders the Asset report to a markdown string.
func RenderAsset(a *Asset, opts AssetRenderOptions) string {
	partials := map[string]string{
		"asset_title":     "asset_title.md",
		"asset_team":      "asset_team.md",
		"asset_holders":   "asset_holders.md",
		"asset_approvals": "asset_approvals.md",
	}
	// An empty file name results in an empty template.
	if opts.SkipHolders {
		partials["asset_holders"] = ""
	}
	if opts.SkipApprovals {
		partials["asset_approvals"] = ""
	}
	return renderTemplate("asset", "asset.md", partials, a)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		var content []byte
		if file != "" {
			var readErr error
			content, readErr = fs.ReadFile(templates, file)
			if readErr != nil {
				return fmt.Sprintf("error reading partial template %q: %v", file, readErr)
			}
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
