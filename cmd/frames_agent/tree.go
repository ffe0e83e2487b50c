package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/academy-frames/internal/frames"
	"github.com/jonathan/academy-frames/internal/observability"
)

var treeCmd = &cobra.Command{
	Use:   "tree <file-key|export.json>",
	Short: "Show the node tree or the frame overview of a document",
	Long: `Without --nodes, prints each page with its top-level frames and the module kind
each frame maps to. With --nodes, prints the raw node tree down to --levels.`,
	Args: cobra.ExactArgs(1),
	RunE: runTree,
}

var (
	treeNodes  bool
	treeLevels int
)

func init() {
	treeCmd.Flags().BoolVar(&treeNodes, "nodes", false, "Print the full node tree instead of the frame overview")
	treeCmd.Flags().IntVar(&treeLevels, "levels", -1, "How many levels of the node tree to print (-1 for all)")
	treeCmd.Flags().Int("depth", 0, "Tree depth to fetch from Figma (0 for the whole file)")
	rootCmd.AddCommand(treeCmd)
}

func runTree(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	access, err := openFigma(ctx, cfg, logger, false)
	if err != nil {
		return err
	}
	defer access.close()

	doc, err := loadDocument(ctx, access, args[0])
	if err != nil {
		return err
	}

	if treeNodes {
		for _, line := range doc.Root.Walk(treeLevels) {
			_, _ = fmt.Fprintln(os.Stdout, line)
		}
		return nil
	}

	observability.NewPrinter(os.Stdout).PrintDocument(doc, frames.NewExtractor().KindOf)
	return nil
}
