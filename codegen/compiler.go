package codegen

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	xsd "github.com/agentflare-ai/go-xsdgen"
)

// File is one rendered output unit
type File struct {
	Name    string
	Content string
	Classes []xsd.QName
}

// Result is the outcome of one generation run
type Result struct {
	Roots []*ClassModel
	Plan  *Plan
	Files []File
}

// Compiler runs the pipeline from a compiled schema to rendered files:
// build one class model per root, count references over the whole forest,
// plan the output units, then render the units.
type Compiler struct {
	schema      *xsd.Schema
	settings    Settings
	logger      *slog.Logger
	concurrency int
}

// Option configures a Compiler
type Option func(*Compiler)

// WithLogger sets the logger, slog.Default() otherwise
func WithLogger(logger *slog.Logger) Option {
	return func(c *Compiler) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithConcurrency bounds the number of units rendered at once
func WithConcurrency(n int) Option {
	return func(c *Compiler) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// NewCompiler creates a compiler for one schema and one set of settings
func NewCompiler(schema *xsd.Schema, settings Settings, opts ...Option) *Compiler {
	c := &Compiler{
		schema:      schema,
		settings:    settings,
		logger:      slog.Default(),
		concurrency: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DefaultRoots returns the top-level elements that produce a class, in
// declaration order
func (c *Compiler) DefaultRoots() []string {
	var roots []string
	for _, decl := range c.schema.GlobalElements() {
		if _, ok := c.schema.ElementType(decl).(*xsd.ComplexType); ok {
			roots = append(roots, decl.Name.Local)
			continue
		}
		c.logger.Debug("skipping simple top-level element", "element", decl.Name.Local)
	}
	return roots
}

// Build generates the class model forest for roots. An empty roots list
// selects DefaultRoots.
func (c *Compiler) Build(roots []string) ([]*ClassModel, error) {
	if len(roots) == 0 {
		roots = c.DefaultRoots()
	}

	builder := NewBuilder(c.schema, c.logger)
	models := make([]*ClassModel, 0, len(roots))
	for _, root := range roots {
		c.logger.Debug("generating root", "root", root)
		cm, err := builder.Generate(root)
		if err != nil {
			return nil, err
		}
		classes := 0
		cm.Walk(func(*ClassModel) { classes++ })
		c.logger.Debug("root built", "root", root, "classes", classes)
		models = append(models, cm)
	}
	return models, nil
}

// Plan builds the forest and partitions it into output units
func (c *Compiler) Plan(roots []string) ([]*ClassModel, *Plan, error) {
	models, err := c.Build(roots)
	if err != nil {
		return nil, nil, err
	}

	plan := PlanOutput(models, CountReferences(models))
	if err := plan.CheckNames(); err != nil {
		return nil, nil, err
	}
	for _, unit := range plan.Units {
		c.logger.Debug("planned unit",
			"file", unit.FileName(),
			"classes", len(unit.Classes))
	}
	return models, plan, nil
}

// Compile runs the whole pipeline. Units are rendered concurrently once the
// plan is complete; files keep the plan order.
func (c *Compiler) Compile(ctx context.Context, roots []string) (*Result, error) {
	models, plan, err := c.Plan(roots)
	if err != nil {
		return nil, err
	}

	renderer, err := NewRenderer(c.settings)
	if err != nil {
		return nil, err
	}

	files := make([]File, len(plan.Units))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for i, unit := range plan.Units {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			content, err := renderer.RenderUnit(unit)
			if err != nil {
				return err
			}

			names := make([]xsd.QName, len(unit.Classes))
			for j, cm := range unit.Classes {
				names[j] = cm.Name
			}
			files[i] = File{Name: unit.FileName(), Content: content, Classes: names}
			c.logger.Debug("rendered unit", "file", unit.FileName(), "bytes", len(content))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to render output: %w", err)
	}

	c.logger.Info("generation complete",
		"namespace", c.settings.Namespace,
		"roots", len(models),
		"files", len(files))
	return &Result{Roots: models, Plan: plan, Files: files}, nil
}
