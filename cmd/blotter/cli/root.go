// Package cli holds the blotter command tree.
package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/gitqueue/OG-Platform/pkg/catalog"
	"github.com/gitqueue/OG-Platform/pkg/orchestrator"
	"github.com/gitqueue/OG-Platform/pkg/render"
	"github.com/gitqueue/OG-Platform/pkg/typemap"
)

// app carries per-invocation state shared by subcommands.
type app struct {
	cfgFile string
	v       *viper.Viper
	logger  *zap.Logger
}

// NewRootCmd builds the blotter command tree with fresh configuration state.
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New(), logger: zap.NewNop()}

	root := &cobra.Command{
		Use:           "blotter",
		Short:         "Render trade blotter forms",
		Long:          `blotter renders the swap-family trade entry forms (swaption, variance swap) into the blotter dialog page, on the command line or over HTTP.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := a.initConfig(); err != nil {
				return err
			}
			return a.initLogger()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is ./blotter.yaml)")
	flags.BoolP("verbose", "v", false, "enable verbose logging")
	flags.String("catalog", "", "trade catalog YAML (default is the embedded catalog)")
	flags.String("openapi", "", "OpenAPI document type maps are derived from (default is the embedded securities document)")
	flags.String("templates", "", "directory of form templates overriding the embedded set")

	for _, key := range []string{"verbose", "catalog", "openapi", "templates"} {
		_ = a.v.BindPFlag(key, flags.Lookup(key))
	}

	root.AddCommand(newListCmd(a))
	root.AddCommand(newRenderCmd(a))
	root.AddCommand(newServeCmd(a))
	return root
}

func (a *app) initConfig() error {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		a.v.SetConfigName("blotter")
		a.v.AddConfigPath(".")
	}
	a.v.SetEnvPrefix("blotter")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) && a.cfgFile == "" {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

func (a *app) initLogger() error {
	var err error
	if a.v.GetBool("verbose") {
		a.logger, err = zap.NewDevelopment()
	} else {
		a.logger, err = zap.NewProduction()
	}
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	if path := a.v.ConfigFileUsed(); path != "" {
		a.logger.Debug("using config file", zap.String("path", path))
	}
	return nil
}

// orchestrator builds the render pipeline from configuration.
func (a *app) orchestrator(ctx context.Context) (*orchestrator.Orchestrator, error) {
	opts := []orchestrator.Option{orchestrator.WithLogger(a.logger)}

	if path := a.v.GetString("catalog"); path != "" {
		cat, err := catalog.LoadFile(path)
		if err != nil {
			return nil, err
		}
		opts = append(opts, orchestrator.WithCatalog(cat))
	}
	if path := a.v.GetString("openapi"); path != "" {
		doc, err := typemap.LoadFile(ctx, path)
		if err != nil {
			return nil, err
		}
		opts = append(opts, orchestrator.WithTypeMapDocument(doc))
	}
	if dir := a.v.GetString("templates"); dir != "" {
		opts = append(opts, orchestrator.WithRenderOptions(render.WithTemplatesDir(dir)))
	}

	orch := orchestrator.New(opts...)
	if err := orch.Err(); err != nil {
		return nil, err
	}
	return orch, nil
}
