package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	xsd "github.com/agentflare-ai/go-xsdgen"
	"github.com/agentflare-ai/go-xsdgen/codegen"
	"github.com/agentflare-ai/go-xsdgen/config"
)

// addSchemaFlags registers the flags that pick the schema folder of the
// inspection commands
func addSchemaFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringP("schema-dir", "s", "", "Schema folder; defaults to the first version of the project")
	flags.StringP("config", "c", ".", "Project file, or directory holding xsdgen.yaml or xsdgen.toml")
	flags.String("version", "", "Configured version to inspect")
}

// schemaDir returns --schema-dir, or the folder of the selected project
// version
func (a *app) schemaDir() (string, error) {
	if dir := a.v.GetString("schema-dir"); dir != "" {
		return dir, nil
	}

	cfg, err := a.loadProject()
	if err != nil {
		return "", err
	}
	targets, err := cfg.Targets()
	if err != nil {
		return "", fmt.Errorf("%w: %w", errInvalidConfig, err)
	}
	if version := a.v.GetString("version"); version != "" {
		if targets, err = config.Select(targets, []string{version}); err != nil {
			return "", fmt.Errorf("%w: %w", errInvalidConfig, err)
		}
	}
	return targets[0].SchemaDir, nil
}

func (a *app) schemaFor() (*xsd.Schema, error) {
	dir, err := a.schemaDir()
	if err != nil {
		return nil, err
	}
	return a.cache.Get(dir)
}

func (a *app) rootsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "roots",
		Short:   "List the top-level elements of a schema folder",
		Example: `  xsdgen roots --schema-dir "./TafTapXsd/Baseline 3.2.0"`,
		Args:    usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			schema, err := a.schemaFor()
			if err != nil {
				return err
			}
			writeRoots(cmd.OutOrStdout(), schema)
			return nil
		},
	}
	addSchemaFlags(cmd)
	return cmd
}

func writeRoots(w io.Writer, schema *xsd.Schema) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Element", "Namespace", "Content", "Generated"})
	for _, decl := range schema.GlobalElements() {
		content, generated := "simple", "no"
		if _, ok := schema.ElementType(decl).(*xsd.ComplexType); ok {
			content, generated = "complex", "yes"
		}
		table.Append([]string{decl.Name.Local, decl.Name.Namespace, content, generated})
	}
	table.Render()
}

func (a *app) planCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "plan",
		Short:   "Show the output files and the classes each of them holds",
		Example: `  xsdgen plan --schema-dir ./xsd --root Order --root Invoice`,
		Args:    usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			schema, err := a.schemaFor()
			if err != nil {
				return err
			}

			compiler := codegen.NewCompiler(schema, codegen.Settings{}, codegen.WithLogger(a.logger))
			_, plan, err := compiler.Plan(a.v.GetStringSlice("root"))
			if err != nil {
				return err
			}
			if len(plan.Units) == 0 {
				return errors.New("no classes to generate")
			}
			writePlan(cmd.OutOrStdout(), plan)
			return nil
		},
	}
	addSchemaFlags(cmd)
	cmd.Flags().StringSliceP("root", "r", nil, "Root element to plan (repeatable); defaults to every complex top-level element")
	return cmd
}

func writePlan(w io.Writer, plan *codegen.Plan) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"File", "Class", "References"})
	table.SetAutoMergeCells(true)
	for _, unit := range plan.Units {
		for _, cm := range unit.Classes {
			table.Append([]string{unit.FileName(), cm.Name.Local, strconv.Itoa(plan.Counts[cm.Name])})
		}
	}
	table.Render()
}

func (a *app) lintCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "lint",
		Short:   "Check the schema files of a folder for structural problems",
		Example: `  xsdgen lint --schema-dir ./xsd`,
		Args:    usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, err := a.schemaDir()
			if err != nil {
				return err
			}
			files, err := filepath.Glob(filepath.Join(dir, "*.xsd"))
			if err != nil {
				return err
			}
			sort.Strings(files)

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"File", "Component", "Problem"})
			table.SetAutoWrapText(false)
			count := 0
			for _, file := range files {
				issues, err := xsd.LintSchemaFile(file)
				if err != nil {
					return err
				}
				for _, issue := range issues {
					table.Append([]string{filepath.Base(file), issue.Component, issue.Message})
					count++
				}
			}

			if count == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "%d files, no issues\n", len(files))
				return nil
			}
			table.Render()
			return fmt.Errorf("%d issues in %s", count, dir)
		},
	}
	addSchemaFlags(cmd)
	return cmd
}
