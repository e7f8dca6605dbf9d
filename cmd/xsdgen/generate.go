package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/AlecAivazis/survey/v2"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/agentflare-ai/go-xsdgen/codegen"
	"github.com/agentflare-ai/go-xsdgen/config"
)

// Environment-only overrides of the project options
const (
	optionValidation = "emit_validation_annotations"
	optionJSON       = "emit_json_hints"
)

func (a *app) generateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate C# classes for every configured schema version",
		Example: `  xsdgen generate
  xsdgen generate --config ./models/xsdgen.yaml --version 3.2.0 --root PathCanceledMessage
  xsdgen generate --interactive --no-json`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runGenerate(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	flags := cmd.Flags()
	flags.StringP("config", "c", ".", "Project file, or directory holding xsdgen.yaml or xsdgen.toml")
	flags.StringSlice("version", nil, "Generate only these configured versions (repeatable)")
	flags.StringSliceP("root", "r", nil, "Root element to generate (repeatable); overrides the project roots")
	flags.StringP("out", "o", "", "Output directory; overrides output_dir")
	flags.BoolP("interactive", "i", false, "Pick the root elements from a list")
	flags.Bool("no-validation", false, "Omit StringLength and RegularExpression annotations")
	flags.Bool("no-json", false, "Omit System.Text.Json attributes")
	flags.IntP("jobs", "j", runtime.GOMAXPROCS(0), "Number of versions generated concurrently")
	return cmd
}

// loadProject loads and validates the project file named by --config
func (a *app) loadProject() (*config.ProjectConfig, error) {
	path := a.v.GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return nil, fmt.Errorf("%w: %w", errInvalidConfig, err)
	}

	if out := a.v.GetString("out"); out != "" {
		abs, err := filepath.Abs(out)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve output directory: %w", err)
		}
		cfg.OutputDir = abs
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", errInvalidConfig, err)
	}
	return cfg, nil
}

// settings combines the project options with flag and environment
// overrides. The --no-* flags always win.
func (a *app) settings(cfg *config.ProjectConfig) codegen.Settings {
	settings := codegen.Settings{
		EmitValidationAnnotations: cfg.Options.ValidationAnnotations(),
		EmitJSONHints:             cfg.Options.JSONHints(),
	}
	if a.v.IsSet(optionValidation) {
		settings.EmitValidationAnnotations = a.v.GetBool(optionValidation)
	}
	if a.v.IsSet(optionJSON) {
		settings.EmitJSONHints = a.v.GetBool(optionJSON)
	}
	if a.v.GetBool("no-validation") {
		settings.EmitValidationAnnotations = false
	}
	if a.v.GetBool("no-json") {
		settings.EmitJSONHints = false
	}
	return settings
}

type generated struct {
	target config.Target
	files  int
}

func (a *app) runGenerate(ctx context.Context, out, errOut io.Writer) error {
	cfg, err := a.loadProject()
	if err != nil {
		return err
	}

	targets, err := cfg.Targets()
	if err != nil {
		return fmt.Errorf("%w: %w", errInvalidConfig, err)
	}
	targets, err = config.Select(targets, a.v.GetStringSlice("version"))
	if err != nil {
		return fmt.Errorf("%w: %w", errInvalidConfig, err)
	}

	roots := a.v.GetStringSlice("root")
	if len(roots) == 0 {
		roots = cfg.Roots
	}
	if a.v.GetBool("interactive") {
		if roots, err = a.pickRoots(targets[0]); err != nil {
			return err
		}
	}

	settings := a.settings(cfg)
	bar := progressbar.NewOptions(len(targets),
		progressbar.OptionSetWriter(errOut),
		progressbar.OptionSetDescription("generating"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	results := make([]generated, len(targets))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(a.v.GetInt("jobs"), 1))
	for i, target := range targets {
		g.Go(func() error {
			n, err := a.generateTarget(gctx, target, roots, settings)
			if err != nil {
				if target.Version != "" {
					return fmt.Errorf("version %s: %w", target.Version, err)
				}
				return err
			}
			results[i] = generated{target: target, files: n}
			if err := bar.Add(1); err != nil {
				a.logger.Debug("failed to update progress", "error", err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if err := bar.Finish(); err != nil {
		a.logger.Debug("failed to finish progress", "error", err)
	}

	for _, r := range results {
		fmt.Fprintf(out, "%s: %d files written to %s\n", r.target.Namespace, r.files, r.target.OutputDir)
	}
	return nil
}

// generateTarget compiles one schema folder and writes its files
func (a *app) generateTarget(ctx context.Context, target config.Target, roots []string, settings codegen.Settings) (int, error) {
	logger := a.logger.With("namespace", target.Namespace)

	schema, err := a.cache.Get(target.SchemaDir)
	if err != nil {
		return 0, err
	}

	settings.Namespace = target.Namespace
	compiler := codegen.NewCompiler(schema, settings, codegen.WithLogger(logger))
	result, err := compiler.Compile(ctx, roots)
	if err != nil {
		return 0, err
	}

	if err := os.MkdirAll(target.OutputDir, 0o755); err != nil {
		return 0, fmt.Errorf("failed to create output directory: %w", err)
	}
	for _, f := range result.Files {
		path := filepath.Join(target.OutputDir, f.Name)
		if err := os.WriteFile(path, []byte(f.Content), 0o644); err != nil {
			return 0, fmt.Errorf("failed to write %s: %w", path, err)
		}
		logger.Debug("file written", "path", path, "classes", len(f.Classes))
	}
	return len(result.Files), nil
}

// pickRoots offers the default roots of the first selected version
func (a *app) pickRoots(target config.Target) ([]string, error) {
	schema, err := a.cache.Get(target.SchemaDir)
	if err != nil {
		return nil, err
	}

	options := codegen.NewCompiler(schema, codegen.Settings{}, codegen.WithLogger(a.logger)).DefaultRoots()
	if len(options) == 0 {
		return nil, fmt.Errorf("no root elements in %s", target.SchemaDir)
	}

	roots, err := a.selectRoots(options)
	if err != nil {
		return nil, err
	}
	if len(roots) == 0 {
		return nil, fmt.Errorf("%w: no root elements selected", errUsage)
	}
	return roots, nil
}

func surveySelectRoots(options []string) ([]string, error) {
	var out []string
	prompt := &survey.MultiSelect{
		Message:  "Root elements to generate:",
		Options:  options,
		PageSize: 15,
	}
	if err := survey.AskOne(prompt, &out); err != nil {
		return nil, fmt.Errorf("root selection: %w", err)
	}
	return out, nil
}
