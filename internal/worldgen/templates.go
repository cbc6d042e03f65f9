package worldgen

import (
	"embed"

	"voxelgen/pkg/structfile"
)

//go:embed templates/*.json
var templateFS embed.FS

// loadEmbeddedTemplates compiles the structure templates shipped with the
// generator.
func loadEmbeddedTemplates() (*TemplateSet, error) {
	files, err := structfile.LoadDir(templateFS, "templates")
	if err != nil {
		return nil, err
	}
	return CompileTemplates(files)
}
