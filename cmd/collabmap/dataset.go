package main

import (
	"github.com/spf13/cobra"
	"github.com/xpsychometrics/collabmap/db/yamlfile"
)

func init() {
	rootCmd.AddCommand(datasetCmd)
}

var datasetCmd = &cobra.Command{
	Use:   "dataset",
	Short: "Print the configured dataset as YAML",
	Long: `Print the configured dataset as YAML. The output is a valid
DATASET_FILE and a good starting point for editing.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl, err := newController()
		if err != nil {
			return err
		}
		ds, err := ctrl.Dataset(cmd.Context())
		if err != nil {
			return err
		}
		return yamlfile.Encode(cmd.OutOrStdout(), ds)
	},
}
