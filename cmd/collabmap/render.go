package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/xpsychometrics/collabmap/internal/controller"
)

var (
	renderOut    string
	renderInvert bool
)

func init() {
	renderCmd.Flags().StringVarP(&renderOut, "output", "o", "", "output file, the extension selects svg or png (default <map>.svg)")
	renderCmd.Flags().BoolVar(&renderInvert, "invert", false, "dark background for png output")
	rootCmd.AddCommand(renderCmd)
}

var renderCmd = &cobra.Command{
	Use:       "render <map>",
	Short:     "Render a map to an SVG or PNG file",
	Long:      "Render one of the maps (" + strings.Join(controller.MapNames(), ", ") + ") to a file.",
	Args:      cobra.ExactArgs(1),
	ValidArgs: controller.MapNames(),
	RunE:      runRender,
}

// outputFormat derives the image format from a file name.
func outputFormat(file string) (controller.Format, error) {
	switch ext := strings.ToLower(filepath.Ext(file)); ext {
	case ".svg":
		return controller.FormatSVG, nil
	case ".png":
		return controller.FormatPNG, nil
	default:
		return "", errors.Errorf("cannot write '%s' files", ext)
	}
}

func runRender(cmd *cobra.Command, args []string) error {
	name := args[0]
	out := renderOut
	if out == "" {
		out = name + ".svg"
	}
	format, err := outputFormat(out)
	if err != nil {
		return err
	}
	ctrl, err := newController()
	if err != nil {
		return err
	}
	data, err := ctrl.Image(cmd.Context(), name, format, renderInvert)
	if err != nil {
		return err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return errors.Wrapf(err, "writing '%s'", out)
	}
	log.Ctx(cmd.Context()).Info().Msgf("wrote %s", out)
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}
