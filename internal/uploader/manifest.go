package uploader

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Shopify/js-uploader/pkg/xos"
)

// Manifest records where each artifact of a deploy was written
type Manifest struct {
	Version     string          `yaml:"version,omitempty"`
	Destination string          `yaml:"destination"`
	Files       []ManifestEntry `yaml:"files"`
}

// ManifestEntry maps one source file to its destination keys
type ManifestEntry struct {
	Source      string   `yaml:"source"`
	ContentType string   `yaml:"contentType"`
	Keys        []string `yaml:"keys"`
}

// Manifest describes the keys DeployAll writes.
func (d *Deployer) Manifest() Manifest {
	m := Manifest{
		Version:     d.cfg.Version,
		Destination: d.cfg.Destination,
		Files:       make([]ManifestEntry, 0, len(d.filePaths)),
	}
	for _, filePath := range d.filePaths {
		m.Files = append(m.Files, ManifestEntry{
			Source:      filePath,
			ContentType: ContentType(filePath),
			Keys:        d.Keys(filePath),
		})
	}
	return m
}

// Uploads returns the number of writes the manifest describes.
func (m Manifest) Uploads() int {
	n := 0
	for _, f := range m.Files {
		n += len(f.Keys)
	}
	return n
}

// Write stores the manifest as YAML, replacing path atomically.
func (m Manifest) Write(path string) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	if err := xos.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	return nil
}

// ReadManifest loads a manifest written by Write.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return &m, nil
}
