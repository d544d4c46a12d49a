package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ephys/graphql-non-null-directive/internal/logging"
	"github.com/ephys/graphql-non-null-directive/internal/nonnull"
	"github.com/ephys/graphql-non-null-directive/internal/schema"
	"github.com/ephys/graphql-non-null-directive/internal/sdl"
)

const (
	flagConfig        = "config"
	flagDev           = "dev"
	flagLogLevel      = "log-level"
	flagDirectiveName = "directive-name"
	flagSchema        = "schema"
)

// app carries the state shared by every subcommand. Flags are bound into a
// private viper instance so NONNULLGQL_* variables and --config files apply.
type app struct {
	v      *viper.Viper
	logger *zap.Logger
}

func newRootCmd() *cobra.Command { return newApp().rootCmd() }

func newApp() *app {
	a := &app{v: viper.New(), logger: zap.NewNop()}
	a.v.SetEnvPrefix("NONNULLGQL")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()
	return a
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "nonnullgql",
		Short:         "Tools for the @nonNull input directive",
		Long:          `nonnullgql validates @nonNull placement in GraphQL SDL, lists the input paths it guards and serves a schema that rejects explicit nulls on them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}
	root.PersistentFlags().String(flagConfig, "", "YAML config file")
	root.PersistentFlags().Bool(flagDev, false, "Development logging")
	root.PersistentFlags().String(flagLogLevel, "", "Log level (default debug with --dev, info otherwise)")
	root.PersistentFlags().String(flagDirectiveName, nonnull.DefaultDirectiveName, "Directive name")

	root.AddCommand(
		a.directiveCmd(),
		a.compileSDLCmd(),
		a.pathsCmd(),
		a.serveCmd(),
	)
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	if err := a.v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}
	if file := a.v.GetString(flagConfig); file != "" {
		a.v.SetConfigFile(file)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config: %w", err)
		}
	}
	logger, err := logging.New(a.v.GetBool(flagDev), a.v.GetString(flagLogLevel))
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	a.logger = logger
	zap.ReplaceGlobals(logger)
	return nil
}

func (a *app) directive() *nonnull.Directive {
	return nonnull.New(nonnull.WithDirectiveName(a.v.GetString(flagDirectiveName)))
}

// load builds the schema under --schema together with the directive declaration.
func (a *app) load(ctx context.Context, d *nonnull.Directive) (*schema.Schema, error) {
	dir := a.v.GetString(flagSchema)
	if dir == "" {
		return nil, fmt.Errorf("--%s is required", flagSchema)
	}
	disc, err := sdl.NewFileSystemDiscovery(dir)
	if err != nil {
		return nil, err
	}
	s, err := sdl.Build(ctx, disc, d.Source())
	if err != nil {
		return nil, fmt.Errorf("build schema: %w", err)
	}
	return s, nil
}

func (a *app) directiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "directive",
		Short: "Print the directive declaration",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), a.directive().Declaration())
		},
	}
}

func (a *app) compileSDLCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "compile-sdl",
		Short:   "Merge and validate GraphQL SDL into a single schema",
		Example: `nonnullgql compile-sdl --schema ./graphql`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d := a.directive()
			s, err := a.load(cmd.Context(), d)
			if err != nil {
				return err
			}
			if _, err := d.Paths(s); err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), schema.Render(s))
			return nil
		},
	}
	cmd.Flags().String(flagSchema, "", "GraphQL schema directory")
	return cmd
}

func (a *app) pathsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "paths",
		Short:   "List the input paths guarded on each field",
		Example: `nonnullgql paths --schema ./graphql`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d := a.directive()
			s, err := a.load(cmd.Context(), d)
			if err != nil {
				return err
			}
			fps, err := d.Paths(s)
			if err != nil {
				return err
			}
			for _, fp := range fps {
				for _, p := range fp.Paths {
					fmt.Fprintf(cmd.OutOrStdout(), "%s.%s: %s\n", fp.Type, fp.Field, p)
				}
			}
			return nil
		},
	}
	cmd.Flags().String(flagSchema, "", "GraphQL schema directory")
	return cmd
}
