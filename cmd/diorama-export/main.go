// Command diorama-export builds the garden headlessly and writes it as a
// binary glTF file.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"diorama/garden"
	"diorama/glb"
	"diorama/materials"
	"diorama/scene"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		out     string
		verbose bool
		verify  bool
	)
	cmd := &cobra.Command{
		Use:           "diorama-export",
		Short:         "Write the Japanese garden diorama as a .glb file",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			return run(logger, out, verify)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "diorama.glb", "output file")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log debug output")
	cmd.Flags().BoolVar(&verify, "verify", false, "reload the written file and compare object counts")
	return cmd
}

func run(logger *slog.Logger, out string, verify bool) error {
	w := scene.NewWorld()
	table := materials.Register(w)
	d := garden.Build(w, table)
	logger.Debug("garden built",
		"objects", w.Len(),
		"materials", w.MaterialCount(),
		"textures", w.TextureCount(),
		"root_children", len(w.Children(d.Root)))

	if err := glb.Write(w, out); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	logger.Info("wrote diorama", "path", out)

	if !verify {
		return nil
	}
	back, err := glb.Read(out)
	if err != nil {
		return fmt.Errorf("verify: %w", err)
	}
	if back.Len() != w.Len() || back.MaterialCount() != w.MaterialCount() || back.TextureCount() != w.TextureCount() {
		return fmt.Errorf("verify: %s reloaded with %d objects, %d materials, %d textures; want %d, %d, %d",
			out, back.Len(), back.MaterialCount(), back.TextureCount(), w.Len(), w.MaterialCount(), w.TextureCount())
	}
	logger.Info("verified diorama", "path", out, "objects", back.Len())
	return nil
}
