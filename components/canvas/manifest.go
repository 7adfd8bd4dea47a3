package canvas

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	manifestVersionV1 = "1"
	// ManifestVersion exposes the current manifest format version for tooling.
	ManifestVersion = manifestVersionV1
)

// TemplateManifestDocument models a YAML/JSON manifest describing canvas
// templates shipped outside the built-in set.
type TemplateManifestDocument struct {
	Version   string             `json:"version" yaml:"version"`
	Name      string             `json:"name,omitempty" yaml:"name,omitempty"`
	Homepage  string             `json:"homepage,omitempty" yaml:"homepage,omitempty"`
	Templates []ManifestTemplate `json:"templates" yaml:"templates"`
	Source    string             `json:"-" yaml:"-"`
}

// ManifestTemplate describes a single template entry within a manifest.
// Component properties arrive as loose maps and are validated/decoded
// against the per-type schema during registration.
type ManifestTemplate struct {
	Key         string              `json:"key" yaml:"key"`
	Name        string              `json:"name" yaml:"name"`
	Description string              `json:"description,omitempty" yaml:"description,omitempty"`
	Category    string              `json:"category,omitempty" yaml:"category,omitempty"`
	Components  []ManifestComponent `json:"components" yaml:"components"`
	Maintainers []string            `json:"maintainers,omitempty" yaml:"maintainers,omitempty"`
	Tags        []string            `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// ManifestComponent is the raw form of a compact component.
type ManifestComponent struct {
	Type       string         `json:"type" yaml:"type"`
	Properties map[string]any `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// LoadManifestFile reads a manifest from disk, registers it, and returns
// the document.
func (r *Registry) LoadManifestFile(path string) (*TemplateManifestDocument, error) {
	doc, err := ReadManifest(path)
	if err != nil {
		return nil, err
	}
	if err := r.LoadManifestDocument(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// LoadManifestDocument validates and registers every template from a
// decoded manifest.
func (r *Registry) LoadManifestDocument(doc *TemplateManifestDocument) error {
	if doc == nil {
		return fmt.Errorf("canvas: manifest document is nil")
	}
	for _, entry := range doc.Templates {
		tpl, err := r.buildTemplate(entry)
		if err != nil {
			return fmt.Errorf("canvas: template %s from %s: %w", entry.Key, doc.Source, err)
		}
		if err := r.Register(tpl); err != nil {
			return fmt.Errorf("canvas: register template %s from %s: %w", entry.Key, doc.Source, err)
		}
	}
	return nil
}

func (r *Registry) buildTemplate(entry ManifestTemplate) (Template, error) {
	tpl := Template{
		Key:         entry.Key,
		Name:        entry.Name,
		Description: entry.Description,
		Category:    entry.Category,
	}
	for i, mc := range entry.Components {
		kind := ComponentType(mc.Type)
		if r.validator != nil {
			if err := r.validator.Validate(kind, mc.Properties); err != nil {
				return Template{}, fmt.Errorf("component %d: %w", i, err)
			}
		}
		props, err := DecodeProperties(kind, normalizeManifestMap(mc.Properties))
		if err != nil {
			return Template{}, fmt.Errorf("component %d: %w", i, err)
		}
		tpl.Components = append(tpl.Components, CompactComponent{
			Type:       kind,
			Properties: props,
		})
	}
	return tpl, nil
}

func normalizeManifestMap(raw map[string]any) map[string]any {
	if raw == nil {
		return map[string]any{}
	}
	return raw
}

// ReadManifest loads a manifest file from disk without registering it.
func ReadManifest(path string) (*TemplateManifestDocument, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("canvas: open manifest %s: %w", path, err)
	}
	defer f.Close()
	doc, err := DecodeManifest(f)
	if err != nil {
		return nil, fmt.Errorf("canvas: decode manifest %s: %w", path, err)
	}
	doc.Source = path
	return doc, nil
}

// DecodeManifest reads a manifest from any reader.
func DecodeManifest(r io.Reader) (*TemplateManifestDocument, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	var doc TemplateManifestDocument
	if err := decoder.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("canvas: manifest is empty")
		}
		return nil, fmt.Errorf("canvas: parse manifest: %w", err)
	}
	doc.applyDefaults()
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (doc *TemplateManifestDocument) applyDefaults() {
	if doc.Version == "" {
		doc.Version = manifestVersionV1
	}
}

// Validate performs structural checks on the manifest document.
func (doc *TemplateManifestDocument) Validate() error {
	if doc.Version != manifestVersionV1 {
		return fmt.Errorf("canvas: unsupported manifest version %q", doc.Version)
	}
	seen := map[string]struct{}{}
	for i, entry := range doc.Templates {
		if entry.Key == "" {
			return fmt.Errorf("canvas: manifest template %d is missing a key", i)
		}
		if _, dup := seen[entry.Key]; dup {
			return fmt.Errorf("canvas: manifest defines template %s more than once", entry.Key)
		}
		seen[entry.Key] = struct{}{}
		if len(entry.Components) == 0 {
			return fmt.Errorf("canvas: manifest template %s has no components", entry.Key)
		}
		for j, mc := range entry.Components {
			if mc.Type == "" {
				return fmt.Errorf("canvas: template %s component %d is missing a type", entry.Key, j)
			}
		}
	}
	return nil
}

// WriteManifest persists a manifest document as YAML.
func WriteManifest(path string, doc *TemplateManifestDocument) error {
	if doc == nil {
		return fmt.Errorf("canvas: manifest document is nil")
	}
	doc.applyDefaults()
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("canvas: marshal manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("canvas: write manifest %s: %w", path, err)
	}
	return nil
}
