package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/gitqueue/OG-Platform/internal/prompt"
	"github.com/gitqueue/OG-Platform/pkg/blotter"
	"github.com/gitqueue/OG-Platform/pkg/orchestrator"
)

type renderFlags struct {
	output   string
	dataFile string
	prefill  bool
}

func newRenderCmd(a *app) *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "render [trade]",
		Short: "Render the blotter page for a trade type",
		Long:  `Render the blotter dialog page with the trade form mounted. Without an argument the trade type is picked interactively.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runRender(cmd, args, flags, prompt.NewSurveyDriver())
		},
	}
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVar(&flags.dataFile, "data", "", "YAML or JSON file with trade data to prefill")
	cmd.Flags().BoolVar(&flags.prefill, "prefill", false, "prompt for form values before rendering")
	return cmd
}

func (a *app) runRender(cmd *cobra.Command, args []string, flags renderFlags, driver prompt.Driver) error {
	ctx := cmd.Context()
	orch, err := a.orchestrator(ctx)
	if err != nil {
		return err
	}

	var trade blotter.TradeType
	if len(args) == 1 {
		trade, err = orch.Trade(args[0])
	} else {
		trade, err = prompt.PickTrade(ctx, driver, orch.Trades())
	}
	if err != nil {
		return err
	}

	req := orchestrator.Request{Trade: trade.ID}
	if flags.dataFile != "" {
		if req.Data, err = readData(flags.dataFile); err != nil {
			return err
		}
	}
	if flags.prefill {
		typeMap, err := orch.TypeMap(trade)
		if err != nil {
			return err
		}
		answers, err := prompt.CollectData(ctx, driver, typeMap)
		if err != nil {
			return err
		}
		req.Data = mergeData(req.Data, answers)
	}

	page, err := orch.Generate(ctx, req)
	if err != nil {
		return err
	}

	if flags.output == "" {
		_, err = cmd.OutOrStdout().Write(page)
		return err
	}
	if err := os.WriteFile(flags.output, page, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	a.logger.Info("form written", zap.String("trade", trade.Name), zap.String("path", flags.output))
	return nil
}

// readData decodes a trade data file. YAML is a superset of JSON so one
// decoder covers both.
func readData(path string) (map[string]any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read data: %w", err)
	}
	data := map[string]any{}
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decode data %s: %w", path, err)
	}
	return data, nil
}

// mergeData overlays src onto dst, descending into nested maps.
func mergeData(dst, src map[string]any) map[string]any {
	if dst == nil {
		dst = map[string]any{}
	}
	for key, value := range src {
		if nested, ok := value.(map[string]any); ok {
			if existing, ok := dst[key].(map[string]any); ok {
				dst[key] = mergeData(existing, nested)
				continue
			}
		}
		dst[key] = value
	}
	return dst
}
