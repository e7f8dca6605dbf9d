package xsd

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/agentflare-ai/go-xmldom"
)

// SchemaLoader handles loading schemas with import/include support
type SchemaLoader struct {
	// Base directory for resolving relative paths
	BaseDir string

	// Whether to allow remote schema loading
	AllowRemote bool

	// Logger receives warnings about imports that could not be loaded
	Logger *slog.Logger

	// Map of loaded schemas by location
	loaded map[string]*Schema

	// Locations in the order they finished loading
	order []string

	// Map of schemas being loaded (for cycle detection)
	loading map[string]bool

	// HTTP client for remote loading
	httpClient *http.Client

	mu sync.Mutex
}

// NewSchemaLoader creates a new schema loader
func NewSchemaLoader(baseDir string) *SchemaLoader {
	return &SchemaLoader{
		BaseDir:     baseDir,
		AllowRemote: false, // Disabled by default for security
		Logger:      slog.Default(),
		httpClient:  &http.Client{},
	}
}

func (sl *SchemaLoader) reset() {
	sl.loaded = make(map[string]*Schema)
	sl.loading = make(map[string]bool)
	sl.order = nil
}

// LoadSchemaWithImports loads a schema and all its imports/includes into one
// combined schema
func (sl *SchemaLoader) LoadSchemaWithImports(location string) (*Schema, error) {
	sl.mu.Lock()
	defer sl.mu.Unlock()

	sl.reset()
	mainSchema, err := sl.loadSchemaRecursive(location)
	if err != nil {
		return nil, err
	}

	return sl.combine(mainSchema.TargetNamespace), nil
}

// LoadDir loads every *.xsd file of a directory, in file name order, into
// one combined schema. The target namespace of the combined schema is the
// one of the first file.
func (sl *SchemaLoader) LoadDir(dir string) (*Schema, error) {
	sl.mu.Lock()
	defer sl.mu.Unlock()

	files, err := filepath.Glob(filepath.Join(dir, "*.xsd"))
	if err != nil {
		return nil, fmt.Errorf("failed to list schemas in %s: %w", dir, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no schema files in %s", dir)
	}
	sort.Strings(files)

	sl.reset()
	var targetNamespace string
	for i, file := range files {
		abs, err := filepath.Abs(file)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", file, err)
		}
		schema, err := sl.loadSchemaRecursive(abs)
		if err != nil {
			return nil, err
		}
		if i == 0 {
			targetNamespace = schema.TargetNamespace
		}
	}

	return sl.combine(targetNamespace), nil
}

// combine merges every loaded schema, in load order, into a new schema
func (sl *SchemaLoader) combine(targetNamespace string) *Schema {
	combined := newSchema()
	combined.TargetNamespace = targetNamespace

	for _, location := range sl.order {
		source := sl.loaded[location]
		combined.ImportedSchemas[location] = source
		if source.TargetNamespace == targetNamespace {
			combined.ElementFormQualified = combined.ElementFormQualified || source.ElementFormQualified
			combined.AttributeFormQualified = combined.AttributeFormQualified || source.AttributeFormQualified
		}
		mergeComponents(source, combined)
	}

	return combined
}

// loadSchemaRecursive loads a schema and processes its imports/includes
func (sl *SchemaLoader) loadSchemaRecursive(location string) (*Schema, error) {
	absLocation, err := sl.resolveLocation(location)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve location %s: %w", location, err)
	}

	if schema, ok := sl.loaded[absLocation]; ok {
		return schema, nil
	}

	if sl.loading[absLocation] {
		return nil, fmt.Errorf("circular dependency detected: %s", absLocation)
	}
	sl.loading[absLocation] = true
	defer delete(sl.loading, absLocation)

	doc, err := sl.loadDocument(absLocation)
	if err != nil {
		return nil, fmt.Errorf("failed to load schema from %s: %w", absLocation, err)
	}

	for _, issue := range NewSchemaLinter().Lint(doc) {
		sl.logger().Warn("schema lint",
			"location", absLocation,
			"component", issue.Component,
			"problem", issue.Message)
	}

	schema, err := Parse(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema from %s: %w", absLocation, err)
	}

	// Registered before descending so that mutual imports terminate
	sl.loaded[absLocation] = schema

	for _, imp := range schema.Imports {
		if imp.SchemaLocation == "" {
			continue
		}
		impLocation := resolveRelative(imp.SchemaLocation, absLocation)
		if _, err := sl.loadSchemaRecursive(impLocation); err != nil {
			// Import failures are non-fatal
			sl.logger().Warn("failed to import schema",
				"location", imp.SchemaLocation,
				"namespace", imp.Namespace,
				"error", err)
		}
	}

	for _, include := range schema.Includes {
		incLocation := resolveRelative(include, absLocation)
		if _, err := sl.loadSchemaRecursive(incLocation); err != nil {
			return nil, fmt.Errorf("failed to include %s: %w", include, err)
		}
	}

	sl.order = append(sl.order, absLocation)
	return schema, nil
}

func (sl *SchemaLoader) logger() *slog.Logger {
	if sl.Logger != nil {
		return sl.Logger
	}
	return slog.Default()
}

// resolveLocation resolves a location to an absolute path or URL
func (sl *SchemaLoader) resolveLocation(location string) (string, error) {
	if isRemote(location) {
		if !sl.AllowRemote {
			return "", fmt.Errorf("remote schema loading is disabled")
		}
		return location, nil
	}

	if filepath.IsAbs(location) {
		return filepath.Clean(location), nil
	}

	if sl.BaseDir != "" {
		return filepath.Abs(filepath.Join(sl.BaseDir, location))
	}
	return filepath.Abs(location)
}

func isRemote(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

// resolveRelative resolves a relative location based on a base location
func resolveRelative(relative, base string) string {
	if filepath.IsAbs(relative) || isRemote(relative) {
		return relative
	}

	if isRemote(base) {
		baseURL, err := url.Parse(base)
		if err != nil {
			return relative
		}
		relURL, err := baseURL.Parse(relative)
		if err != nil {
			return relative
		}
		return relURL.String()
	}

	return filepath.Join(filepath.Dir(base), relative)
}

// loadDocument loads an XML document from a location
func (sl *SchemaLoader) loadDocument(location string) (xmldom.Document, error) {
	var reader io.ReadCloser

	if isRemote(location) {
		resp, err := sl.httpClient.Get(location)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch %s: %w", location, err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, location)
		}
		reader = resp.Body
	} else {
		file, err := os.Open(location)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", location, err)
		}
		reader = file
	}
	defer reader.Close()

	doc, err := xmldom.Decode(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to parse XML: %w", err)
	}
	return doc, nil
}

// mergeComponents merges schema components into target. The first
// declaration of a name wins.
func mergeComponents(source, target *Schema) {
	target.mu.Lock()
	defer target.mu.Unlock()

	for _, qname := range source.elementOrder {
		if _, exists := target.ElementDecls[qname]; !exists {
			target.ElementDecls[qname] = source.ElementDecls[qname]
			target.elementOrder = append(target.elementOrder, qname)
		}
	}

	for qname, attr := range source.AttributeDecls {
		if _, exists := target.AttributeDecls[qname]; !exists {
			target.AttributeDecls[qname] = attr
		}
	}

	for qname, typ := range source.TypeDefs {
		if _, exists := target.TypeDefs[qname]; !exists {
			target.TypeDefs[qname] = typ
		}
	}

	for qname, ag := range source.AttributeGroups {
		if _, exists := target.AttributeGroups[qname]; !exists {
			target.AttributeGroups[qname] = ag
		}
	}

	for qname, mg := range source.Groups {
		if _, exists := target.Groups[qname]; !exists {
			target.Groups[qname] = mg
		}
	}

	target.Imports = append(target.Imports, source.Imports...)
	target.Includes = append(target.Includes, source.Includes...)
}

// LoadSchemaFromString loads a schema from a string with import/include
// support. Relative locations resolve against baseDir.
func LoadSchemaFromString(content string, baseDir string) (*Schema, error) {
	if baseDir == "" {
		baseDir = os.TempDir()
	}
	tempFile, err := os.CreateTemp(baseDir, "schema-*.xsd")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tempFile.Name())

	if _, err := tempFile.WriteString(content); err != nil {
		tempFile.Close()
		return nil, fmt.Errorf("failed to write temp file: %w", err)
	}
	tempFile.Close()

	loader := NewSchemaLoader(baseDir)
	return loader.LoadSchemaWithImports(tempFile.Name())
}

// LoadSchemaWithImports is a convenience function
func LoadSchemaWithImports(location string) (*Schema, error) {
	return NewSchemaLoader(filepath.Dir(location)).LoadSchemaWithImports(location)
}

// LoadSchemaDir is a convenience function for SchemaLoader.LoadDir
func LoadSchemaDir(dir string) (*Schema, error) {
	return NewSchemaLoader(dir).LoadDir(dir)
}
