package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

type exportCmdConfig struct {
	*rootCmdConfig
	modelInput string
	modelName  string
	output     string
}

func exportCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &exportCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a grown model as a GraphViz graph",
		Long:  `Write the tree of a grown model in GraphViz DOT format, so it can be rendered with the dot tool.`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			m, err := loadModel(context.Background(), config.modelInput, config.modelName)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			out := os.Stdout
			if config.output != "" {
				out, err = os.Create(config.output)
				if err != nil {
					fmt.Fprintf(os.Stderr, "creating output file at %s: %v\n", config.output, err)
					os.Exit(3)
				}
				defer out.Close()
			}
			err = m.Tree.WriteDOT(out, m.FeatureNames())
			if err != nil {
				fmt.Fprintf(os.Stderr, "exporting the tree: %v\n", err)
				os.Exit(4)
			}
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.modelInput), "model", "t", "", "path to a JSON model file or a redis URL from which the model will be loaded (required)")
	cmd.PersistentFlags().StringVar(&(config.modelName), "model-name", "default", "name under which the model was saved when the model is a redis URL")
	cmd.PersistentFlags().StringVarP(&(config.output), "output", "o", "", "path to a file to which the DOT graph will be written (defaults to STDOUT)")
	return cmd
}

func (ecc *exportCmdConfig) Validate() error {
	if ecc.modelInput == "" {
		return fmt.Errorf("required model flag was not set")
	}
	return nil
}
