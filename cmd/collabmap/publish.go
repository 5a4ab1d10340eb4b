package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xpsychometrics/collabmap/internal/controller"
	"github.com/xpsychometrics/collabmap/internal/publish"
)

var publishFormats []string

func init() {
	publishCmd.Flags().StringSliceVar(&publishFormats, "format", []string{"svg", "png"}, "formats to upload")
	rootCmd.AddCommand(publishCmd)
}

var publishCmd = &cobra.Command{
	Use:   "publish [map...]",
	Short: "Render maps and upload them to S3",
	Long: `Render maps and upload them to PUBLISH_BUCKET below PUBLISH_PREFIX.
Without arguments every map is published.`,
	ValidArgs: controller.MapNames(),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		names := args
		if len(names) == 0 {
			names = controller.MapNames()
		}
		ctrl, err := newController()
		if err != nil {
			return err
		}
		publisher, err := publish.NewFromEnv(ctx, publish.GetEnvConfig())
		if err != nil {
			return err
		}
		for _, name := range names {
			for _, format := range publishFormats {
				data, err := ctrl.Image(ctx, name, controller.Format(format), false)
				if err != nil {
					return err
				}
				key, err := publisher.Put(ctx, name+"."+format, data)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), key)
			}
		}
		return nil
	},
}
