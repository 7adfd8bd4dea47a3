package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/ettle/strcase"
	"gopkg.in/yaml.v3"

	canvas "github.com/goliatone/go-mockboard/components/canvas"
	dataset "github.com/goliatone/go-mockboard/components/dataset"
	suggest "github.com/goliatone/go-mockboard/components/suggest"
)

type cli struct {
	Suggest  suggestCmd  `cmd:"" help:"Profile a CSV file and print ranked chart suggestions."`
	Layout   layoutCmd   `cmd:"" help:"Lay out compact components and print their placements."`
	Scaffold scaffoldCmd `cmd:"" help:"Scaffold a canvas template entry in a manifest file."`
}

func main() {
	ctx := kong.Parse(&cli{},
		kong.Description("Dashboard mockup utility for go-mockboard canvases."),
		kong.UsageOnError(),
	)
	err := ctx.Run(context.Background())
	ctx.FatalIfErrorf(err)
}

type suggestCmd struct {
	Path    string   `arg:"" type:"path" help:"CSV file to analyze."`
	Mapping []string `help:"Column role mapping as column=role[:aggregation] (use multiple --mapping flags)."`
	AutoMap bool     `name:"auto-map" help:"Infer roles from the column profile when no mappings are given."`
	JSON    bool     `help:"Emit the full suggestion list as JSON."`
}

func (cmd *suggestCmd) Run(_ context.Context) error {
	data, err := os.ReadFile(cmd.Path)
	if err != nil {
		return fmt.Errorf("mockctl: read csv: %w", err)
	}
	table, err := dataset.ParseCSV(string(data))
	if err != nil {
		return fmt.Errorf("mockctl: parse csv: %w", err)
	}
	profile := dataset.Profile(table)

	mappings, err := parseMappings(cmd.Mapping, profile)
	if err != nil {
		return err
	}
	if len(mappings) == 0 && cmd.AutoMap {
		mappings = dataset.AutoMap(profile)
	}

	suggestions := suggest.Generate(profile, table.Rows, mappings)
	if cmd.JSON {
		return printJSON(map[string]any{
			"profile":     profile,
			"suggestions": suggestions,
		})
	}

	fmt.Fprintf(os.Stdout, "%d rows, %d columns\n", profile.RowCount, len(profile.Columns))
	for _, col := range profile.Columns {
		fmt.Fprintf(os.Stdout, "  %-20s %-12s unique=%d\n", col.Name, col.Type, col.UniqueCount)
	}
	fmt.Fprintln(os.Stdout)
	for i, s := range suggestions {
		fmt.Fprintf(os.Stdout, "%2d. [%-13s] %-40s priority=%2d confidence=%.2f\n", i+1, s.Type, s.Title, s.Priority, s.Confidence)
		fmt.Fprintf(os.Stdout, "    %s\n", s.Reason)
	}
	return nil
}

func parseMappings(specs []string, profile dataset.DatasetProfile) ([]dataset.ColumnMapping, error) {
	if len(specs) == 0 {
		return nil, nil
	}
	mappings := dataset.NewMappings(profile)
	byName := make(map[string]int, len(mappings))
	for i, m := range mappings {
		byName[m.Name] = i
	}
	for _, spec := range specs {
		name, rest, ok := strings.Cut(spec, "=")
		if !ok {
			return nil, fmt.Errorf("mockctl: mapping %q must look like column=role[:aggregation]", spec)
		}
		idx, found := byName[name]
		if !found {
			return nil, fmt.Errorf("mockctl: mapping references unknown column %q", name)
		}
		role, agg, _ := strings.Cut(rest, ":")
		mappings[idx].Role = dataset.Role(role)
		if agg != "" {
			mappings[idx].Aggregation = dataset.Aggregation(agg)
		}
	}
	if err := dataset.ValidateMappings(mappings, profile); err != nil {
		return nil, err
	}
	return mappings, nil
}

type layoutCmd struct {
	Path  string  `arg:"" type:"path" help:"JSON file holding an array of compact components."`
	Width float64 `default:"1300" help:"Canvas width in pixels."`
	JSON  bool    `help:"Emit the layout result as JSON."`
}

func (cmd *layoutCmd) Run(_ context.Context) error {
	data, err := os.ReadFile(cmd.Path)
	if err != nil {
		return fmt.Errorf("mockctl: read components: %w", err)
	}
	var compacts []canvas.CompactComponent
	if err := json.Unmarshal(data, &compacts); err != nil {
		return fmt.Errorf("mockctl: parse components: %w", err)
	}

	cfg := canvas.DefaultLayoutConfig()
	cfg.CanvasWidth = cmd.Width
	result := canvas.PlaceComponents(compacts, cfg)

	if cmd.JSON {
		return printJSON(result)
	}
	for _, c := range result.Placed {
		fmt.Fprintf(os.Stdout, "%-13s x=%-5.0f y=%-5.0f w=%-4.0f h=%-4.0f z=%d\n",
			c.Type, c.Position.X, c.Position.Y, c.Size.Width, c.Size.Height, c.ZIndex)
	}
	if len(result.Dropped) > 0 {
		fmt.Fprintf(os.Stdout, "dropped %d component(s) beyond the chart limit\n", len(result.Dropped))
	}
	return nil
}

type scaffoldCmd struct {
	Key          string   `required:"" help:"Template key (e.g. sales-overview)."`
	Name         string   `help:"Display name (defaults to the key in title case)."`
	Description  string   `help:"One-line description used in manifests."`
	Category     string   `default:"custom" help:"Template category (sales, marketing, ops, ...)."`
	ManifestPath string   `required:"" type:"path" help:"Path to the template manifest YAML file to update."`
	Component    []string `help:"Component types to seed the template with (use multiple --component flags)."`
	Tag          []string `help:"Optional tags to include in the manifest."`
	Maintainer   []string `help:"Maintainers to record in the manifest."`
	Overwrite    bool     `help:"Overwrite an existing manifest entry if present."`
}

func (cmd *scaffoldCmd) Run(_ context.Context) error {
	manifestPath, err := filepath.Abs(cmd.ManifestPath)
	if err != nil {
		return fmt.Errorf("mockctl: resolve manifest path: %w", err)
	}
	doc, err := loadOrInitManifest(manifestPath)
	if err != nil {
		return err
	}
	if !cmd.Overwrite {
		for _, tpl := range doc.Templates {
			if tpl.Key == cmd.Key {
				return fmt.Errorf("mockctl: manifest already defines template %s (use --overwrite to replace)", cmd.Key)
			}
		}
	}

	name := cmd.Name
	if name == "" {
		name = strcase.ToCase(cmd.Key, strcase.TitleCase, ' ')
	}

	components := make([]canvas.ManifestComponent, 0, len(cmd.Component))
	for _, typ := range cmd.Component {
		components = append(components, canvas.ManifestComponent{
			Type:       typ,
			Properties: map[string]any{"title": name},
		})
	}
	if len(components) == 0 {
		components = append(components, canvas.ManifestComponent{
			Type:       string(canvas.TypeKpiCard),
			Properties: map[string]any{"title": name, "value": 0},
		})
	}

	entry := canvas.ManifestTemplate{
		Key:         cmd.Key,
		Name:        name,
		Description: cmd.Description,
		Category:    cmd.Category,
		Components:  components,
		Maintainers: cmd.Maintainer,
		Tags:        cmd.Tag,
	}

	if cmd.Overwrite {
		replaced := false
		for idx := range doc.Templates {
			if doc.Templates[idx].Key == cmd.Key {
				doc.Templates[idx] = entry
				replaced = true
				break
			}
		}
		if !replaced {
			doc.Templates = append(doc.Templates, entry)
		}
	} else {
		doc.Templates = append(doc.Templates, entry)
	}

	sort.Slice(doc.Templates, func(i, j int) bool {
		return doc.Templates[i].Key < doc.Templates[j].Key
	})

	if err := writeManifest(manifestPath, doc); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ Added %s to %s\n", cmd.Key, manifestPath)
	return nil
}

func loadOrInitManifest(path string) (*canvas.TemplateManifestDocument, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &canvas.TemplateManifestDocument{
				Version:   canvas.ManifestVersion,
				Templates: []canvas.ManifestTemplate{},
				Source:    path,
			}, nil
		}
		return nil, fmt.Errorf("mockctl: stat manifest: %w", err)
	}
	return canvas.ReadManifest(path)
}

func writeManifest(path string, doc *canvas.TemplateManifestDocument) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mockctl: mkdir %s: %w", filepath.Dir(path), err)
	}
	tmpDoc := *doc
	tmpDoc.Source = ""

	file, err := os.Create(path) //nolint:gosec
	if err != nil {
		return fmt.Errorf("mockctl: create manifest %s: %w", path, err)
	}
	defer file.Close()

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)
	defer encoder.Close()
	if err := encoder.Encode(tmpDoc); err != nil {
		return fmt.Errorf("mockctl: write manifest: %w", err)
	}
	return nil
}

func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
