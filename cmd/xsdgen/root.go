package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	xsd "github.com/agentflare-ai/go-xsdgen"
)

const envPrefix = "XSDGEN"

var longRootCmdDescription = `xsdgen turns the top-level elements of an XML Schema folder into C# classes
for XmlSerializer, one file per root element or shared class.

Flags can be set through the environment with the XSDGEN_ prefix, for
example XSDGEN_NO_JSON=true. A .env file in the working directory is loaded
first.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Missing or invalid project configuration
  20 - Root element not found
  21 - Unsupported schema construct
  22 - Built-in type without a C# mapping`

// app carries the state shared by the commands of one invocation
type app struct {
	v      *viper.Viper
	logger *slog.Logger
	cache  *xsd.SchemaCache
	// selectRoots asks the user to pick root elements
	selectRoots func(options []string) ([]string, error)
}

func newApp() *app {
	return &app{
		v:           viper.New(),
		logger:      slog.Default(),
		cache:       xsd.NewSchemaCache(),
		selectRoots: surveySelectRoots,
	}
}

func newRootCmd() *cobra.Command {
	return newApp().rootCmd()
}

func (a *app) rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "xsdgen",
		Short:             "Generate C# serialization models from XML Schema",
		Long:              longRootCmdDescription,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.initConfig,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", errUsage, err)
	})

	cmd.AddCommand(a.generateCmd(), a.rootsCmd(), a.planCmd(), a.lintCmd(), newVersionCmd())
	return cmd
}

// initConfig loads .env, binds the flags of the running command to viper
// and sets up logging
func (a *app) initConfig(cmd *cobra.Command, _ []string) error {
	// A missing .env file is not an error
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: failed to load .env: %w", errInvalidConfig, err)
	}

	a.v.SetEnvPrefix(envPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()
	if err := a.v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("failed to bind flags: %w", err)
	}
	for _, key := range []string{optionValidation, optionJSON} {
		if err := a.v.BindEnv(key); err != nil {
			return fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	level := slog.LevelInfo
	if a.v.GetBool("verbose") {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	a.cache.Logger = a.logger
	return nil
}

// usageArgs marks argument validation failures as usage errors
func usageArgs(fn cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := fn(cmd, args); err != nil {
			return fmt.Errorf("%w: %w", errUsage, err)
		}
		return nil
	}
}
