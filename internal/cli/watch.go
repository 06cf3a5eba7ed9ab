package cli

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/floorkit/hbstar/pkg/anneal"
	"github.com/floorkit/hbstar/pkg/config"
	"github.com/floorkit/hbstar/pkg/hbtree"
	"github.com/floorkit/hbstar/pkg/parser"
	"github.com/floorkit/hbstar/pkg/timeout"
	"github.com/floorkit/hbstar/pkg/writer"

	"github.com/floorkit/hbstar/internal/tui"
)

// watchCommand runs a pack job with a live bubbletea view of the
// annealing schedule (§4.14, C17).
func (c *CLI) watchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <input> <output>",
		Short: "Pack a manifest while watching the annealing run live",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(args[0], args[1])
		},
	}
	return cmd
}

func runWatch(inputPath, outputPath string) error {
	in, err := os.Open(inputPath)
	if err != nil {
		return err
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

	hooks, events := tui.NewHooksBridge(64)
	driver := anneal.New(tree, parsed.Groups, config.Default(), hooks)

	done := make(chan error, 1)
	go func() {
		_, err := driver.Run(timeout.DefaultBudget)
		done <- err
	}()

	program := tea.NewProgram(tui.New(events))
	if _, err := program.Run(); err != nil {
		return err
	}

	if err := <-done; err != nil {
		return err
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer out.Close()

	return writer.Write(out, tree.Modules())
}
