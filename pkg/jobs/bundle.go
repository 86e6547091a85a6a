package jobs

import (
	"embed"
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"
)

const bundleManifest = "bundle/module.yaml"

//go:embed bundle/module.yaml
var bundleFS embed.FS

// Bundle holds the module's static assets. Resolve it once with LoadBundle
// and hand the same value to every consumer.
type Bundle struct {
	Identifier string `yaml:"identifier"`
	Version    string `yaml:"version"`
	// EmploymentTypes maps an employment type to labels keyed by language
	EmploymentTypes map[string]map[string]string `yaml:"employment_types"`
}

// LoadBundle resolves the bundle compiled into the binary
func LoadBundle() (*Bundle, error) {
	return LoadBundleFS(bundleFS, bundleManifest)
}

// LoadBundleFS resolves a bundle manifest from fsys
func LoadBundleFS(fsys fs.FS, name string) (*Bundle, error) {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("jobs: module bundle not found: %w", err)
	}

	var b Bundle
	if err := yaml.Unmarshal(raw, &b); err != nil {
		return nil, fmt.Errorf("jobs: decode module bundle: %w", err)
	}
	if b.Identifier == "" || b.Version == "" {
		return nil, fmt.Errorf("jobs: module bundle %s lacks identifier or version", name)
	}

	return &b, nil
}
