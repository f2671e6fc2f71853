package hcl

import (
	"context"
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/lmfeatures/internal/config"
	"github.com/vk/lmfeatures/internal/ctxlog"
	"github.com/vk/lmfeatures/internal/fsutil"
	"github.com/vk/lmfeatures/internal/schema"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL manifest loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load discovers `.hcl` manifest files under the given paths and merges
// their declarations into a single catalog model. A path may be a file or a
// directory; missing paths are skipped.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, config.Converter, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := fsutil.FindFilesByExtension(".hcl", paths...)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("Discovered manifest files.", "count", len(files))

	parser := hclparse.NewParser()
	model := config.NewModel()

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, nil, fmt.Errorf("failed to parse manifest %s: %w", file, diags)
		}
		if err := l.mergeFile(ctx, model, hclFile.Body, file); err != nil {
			return nil, nil, err
		}
	}

	logger.Info("Catalog loaded.", "classes", len(model.Classes), "enums", len(model.Enums))
	return model, NewConverter(model), nil
}

// LoadSources parses manifests from in-memory sources, keyed by a filename
// used only for diagnostics. Sources are merged in filename order so that
// duplicate detection is deterministic.
func (l *Loader) LoadSources(ctx context.Context, sources map[string]string) (*config.Model, config.Converter, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started from in-memory sources.", "source_count", len(sources))

	names := make([]string, 0, len(sources))
	for name := range sources {
		names = append(names, name)
	}
	sort.Strings(names)

	parser := hclparse.NewParser()
	model := config.NewModel()

	for _, name := range names {
		hclFile, diags := parser.ParseHCL([]byte(sources[name]), name)
		if diags.HasErrors() {
			return nil, nil, fmt.Errorf("failed to parse manifest %s: %w", name, diags)
		}
		if err := l.mergeFile(ctx, model, hclFile.Body, name); err != nil {
			return nil, nil, err
		}
	}

	logger.Debug("Catalog loaded from sources.", "classes", len(model.Classes), "enums", len(model.Enums))
	return model, NewConverter(model), nil
}

// mergeFile decodes one manifest body and merges its blocks into the model,
// rejecting duplicate class and enum names across all loaded files.
func (l *Loader) mergeFile(ctx context.Context, model *config.Model, body hcl.Body, filename string) error {
	var root schema.FileRoot
	if diags := gohcl.DecodeBody(body, nil, &root); diags.HasErrors() {
		return fmt.Errorf("failed to decode manifest %s: %w", filename, diags)
	}

	for _, cls := range root.Classes {
		def, err := l.translateClassDefinition(ctx, cls)
		if err != nil {
			return fmt.Errorf("in manifest %s: %w", filename, err)
		}
		if _, exists := model.Classes[def.Name]; exists {
			return fmt.Errorf("in manifest %s: duplicate feature_class %q", filename, def.Name)
		}
		model.Classes[def.Name] = def
	}

	for _, en := range root.Enums {
		def, err := l.translateEnumDefinition(en)
		if err != nil {
			return fmt.Errorf("in manifest %s: %w", filename, err)
		}
		if _, exists := model.Enums[def.Name]; exists {
			return fmt.Errorf("in manifest %s: duplicate enum %q", filename, def.Name)
		}
		model.Enums[def.Name] = def
	}

	return nil
}
