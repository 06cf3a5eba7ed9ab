package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/floorkit/hbstar/pkg/anneal"
	"github.com/floorkit/hbstar/pkg/config"
	"github.com/floorkit/hbstar/pkg/hbtree"
	"github.com/floorkit/hbstar/pkg/observability"
	"github.com/floorkit/hbstar/pkg/parser"
	"github.com/floorkit/hbstar/pkg/timeout"
	"github.com/floorkit/hbstar/pkg/writer"
)

// packCommand implements spec.md §6's external CLI contract:
// `<program> <input_file> <output_file> [area_ratio]`.
func (c *CLI) packCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "pack <input> <output> [area_ratio]",
		Short: "Pack a module manifest into a symmetric floorplan",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if configPath != "" {
				loaded, err := config.Load(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			if len(args) == 3 {
				ratio, err := strconv.ParseFloat(args[2], 64)
				if err != nil {
					return fmt.Errorf("invalid area_ratio %q: %w", args[2], err)
				}
				cfg.Cost.AreaRatio = ratio
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			return runPack(c.Logger, args[0], args[1], cfg)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "TOML config file overriding the SA driver defaults")
	return cmd
}

func runPack(logger *log.Logger, inputPath, outputPath string, cfg config.Config) error {
	in, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", inputPath, err)
	}
	defer in.Close()

	parsed, err := parser.Parse(in)
	if err != nil {
		return err
	}

	tree, err := hbtree.New(parsed.Modules, parsed.Groups)
	if err != nil {
		return err
	}
	if err := tree.Pack(); err != nil {
		return err
	}

	driver := anneal.New(tree, parsed.Groups, cfg, observability.NoopHooks())
	result, err := driver.Run(timeout.DefaultBudget)
	if err != nil {
		return err
	}
	logger.Infof("packed: best area %d, best cost %.4f, timed out %v", result.BestArea, result.BestCost, result.TimedOut)

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", outputPath, err)
	}
	defer out.Close()

	return writer.Write(out, tree.Modules())
}
