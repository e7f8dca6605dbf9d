package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"dario.cat/mergo"
	"github.com/BurntSushi/toml"
	"github.com/hashicorp/go-multierror"
	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

const (
	ConfigFileName     = "xsdgen.yaml"
	TOMLConfigFileName = "xsdgen.toml"
)

// Version is one schema release generated into its own namespace and folder
type Version struct {
	Name string `yaml:"name" toml:"name"`
	// Folder holds the release's .xsd files, relative to SchemaDir. Defaults
	// to Name.
	Folder string `yaml:"folder,omitempty" toml:"folder,omitempty"`
}

// Options are the generator switches. Unset options default to true.
type Options struct {
	EmitValidationAnnotations *bool `yaml:"emit_validation_annotations,omitempty" toml:"emit_validation_annotations,omitempty"`
	EmitJSONHints             *bool `yaml:"emit_json_hints,omitempty" toml:"emit_json_hints,omitempty"`
}

// ValidationAnnotations reports whether StringLength and RegularExpression
// annotations are emitted
func (o Options) ValidationAnnotations() bool {
	return o.EmitValidationAnnotations == nil || *o.EmitValidationAnnotations
}

// JSONHints reports whether System.Text.Json attributes are emitted
func (o Options) JSONHints() bool {
	return o.EmitJSONHints == nil || *o.EmitJSONHints
}

type ProjectConfig struct {
	Namespace string    `yaml:"namespace" toml:"namespace"`
	SchemaDir string    `yaml:"schema_dir" toml:"schema_dir"`
	OutputDir string    `yaml:"output_dir" toml:"output_dir"`
	Roots     []string  `yaml:"roots,omitempty" toml:"roots,omitempty"`
	Versions  []Version `yaml:"versions,omitempty" toml:"versions,omitempty"`
	Options   Options   `yaml:"options" toml:"options"`

	// BaseDir is the directory relative paths resolve against: the
	// directory of the loaded file.
	BaseDir string `yaml:"-" toml:"-"`
}

func defaults() ProjectConfig {
	enabled := true
	return ProjectConfig{
		SchemaDir: ".",
		OutputDir: ".",
		Options: Options{
			EmitValidationAnnotations: &enabled,
			EmitJSONHints:             &enabled,
		},
	}
}

// Load reads a project file. A directory path looks for xsdgen.yaml, then
// xsdgen.toml. The format follows the file extension; anything but .toml is
// read as YAML. Unset fields take their defaults.
func Load(path string) (*ProjectConfig, error) {
	configPath, err := locate(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ProjectConfig
	if strings.EqualFold(filepath.Ext(configPath), ".toml") {
		err = toml.Unmarshal(data, &cfg)
	} else {
		err = yaml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", configPath, err)
	}

	if err := cfg.ApplyDefaults(); err != nil {
		return nil, err
	}
	cfg.BaseDir = filepath.Dir(configPath)
	return &cfg, nil
}

func locate(path string) (string, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(expanded)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrConfigNotFound
		}
		return "", err
	}
	if !info.IsDir() {
		return expanded, nil
	}

	for _, name := range []string{ConfigFileName, TOMLConfigFileName} {
		candidate := filepath.Join(expanded, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", ErrConfigNotFound
}

// ApplyDefaults fills unset fields. Options set to false stay false.
func (c *ProjectConfig) ApplyDefaults() error {
	if err := mergo.Merge(c, defaults(), mergo.WithoutDereference); err != nil {
		return fmt.Errorf("failed to apply defaults: %w", err)
	}
	for i := range c.Versions {
		if c.Versions[i].Folder == "" {
			c.Versions[i].Folder = c.Versions[i].Name
		}
	}
	return nil
}

var namespacePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)*$`)

// Validate reports every problem of the configuration at once
func (c *ProjectConfig) Validate() error {
	var result *multierror.Error

	switch {
	case c.Namespace == "":
		result = multierror.Append(result, errors.New("namespace is required"))
	case !namespacePattern.MatchString(c.Namespace):
		result = multierror.Append(result, fmt.Errorf("namespace %q is not a valid C# namespace", c.Namespace))
	}
	if c.SchemaDir == "" {
		result = multierror.Append(result, errors.New("schema_dir is required"))
	}
	if c.OutputDir == "" {
		result = multierror.Append(result, errors.New("output_dir is required"))
	}

	seen := make(map[string]bool)
	for i, v := range c.Versions {
		if v.Name == "" {
			result = multierror.Append(result, fmt.Errorf("versions[%d]: name is required", i))
			continue
		}
		if seen[v.Name] {
			result = multierror.Append(result, fmt.Errorf("versions[%d]: duplicate version %q", i, v.Name))
		}
		seen[v.Name] = true
	}

	for i, root := range c.Roots {
		if strings.TrimSpace(root) == "" {
			result = multierror.Append(result, fmt.Errorf("roots[%d]: empty element name", i))
		}
	}
	return result.ErrorOrNil()
}

// Target is one generation run derived from the configuration
type Target struct {
	// Version is empty for a configuration without versions
	Version   string
	Namespace string
	SchemaDir string
	OutputDir string
}

// Targets lists one target per configured version, or a single target over
// SchemaDir when no versions are configured.
func (c *ProjectConfig) Targets() ([]Target, error) {
	schemaDir, err := c.resolve(c.SchemaDir)
	if err != nil {
		return nil, err
	}
	outputDir, err := c.resolve(c.OutputDir)
	if err != nil {
		return nil, err
	}

	if len(c.Versions) == 0 {
		return []Target{{Namespace: c.Namespace, SchemaDir: schemaDir, OutputDir: outputDir}}, nil
	}

	targets := make([]Target, 0, len(c.Versions))
	for _, v := range c.Versions {
		folder := v.Folder
		if folder == "" {
			folder = v.Name
		}
		id := VersionIdentifier(v.Name)
		targets = append(targets, Target{
			Version:   v.Name,
			Namespace: c.Namespace + "." + id,
			SchemaDir: filepath.Join(schemaDir, folder),
			OutputDir: filepath.Join(outputDir, id),
		})
	}
	return targets, nil
}

// Select filters the targets down to the named versions, keeping the
// configured order. An empty selection keeps every target.
func Select(targets []Target, versions []string) ([]Target, error) {
	if len(versions) == 0 {
		return targets, nil
	}

	wanted := make(map[string]bool, len(versions))
	for _, v := range versions {
		wanted[v] = true
	}

	var selected []Target
	for _, t := range targets {
		if wanted[t.Version] {
			selected = append(selected, t)
			delete(wanted, t.Version)
		}
	}

	var result *multierror.Error
	for _, v := range versions {
		if wanted[v] {
			result = multierror.Append(result, fmt.Errorf("version %q is not configured", v))
			delete(wanted, v)
		}
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	return selected, nil
}

// VersionIdentifier turns a version name into a namespace segment:
// "3.2.0" becomes "v3_2_0".
func VersionIdentifier(name string) string {
	var sb strings.Builder
	sb.WriteString("v")
	for _, r := range name {
		if r == '_' || ('0' <= r && r <= '9') || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') {
			sb.WriteRune(r)
		} else {
			sb.WriteRune('_')
		}
	}
	return sb.String()
}

func (c *ProjectConfig) resolve(path string) (string, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("failed to expand %s: %w", path, err)
	}
	if filepath.IsAbs(expanded) || c.BaseDir == "" {
		return filepath.Clean(expanded), nil
	}
	return filepath.Join(c.BaseDir, expanded), nil
}
