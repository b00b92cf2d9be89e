package main

import (
	"context"
	"fmt"
	"os"

	"github.com/grovekit/grove/tree"
	"github.com/spf13/cobra"
)

type importancesCmdConfig struct {
	*rootCmdConfig
	modelInput string
	modelName  string
	method     string
}

func importancesCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &importancesCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "importances",
		Short: "Show the feature importances of a grown model",
		Long:  `Compute the normalized importance of every input feature of a grown model, writing one "feature importance" line per feature.`,
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
			importances, err := m.Tree.FeatureImportances(config.method)
			if err != nil {
				fmt.Fprintf(os.Stderr, "computing feature importances: %v\n", err)
				os.Exit(3)
			}
			for i, name := range m.FeatureNames() {
				fmt.Printf("%s\t%g\n", name, importances[i])
			}
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.modelInput), "model", "t", "", "path to a JSON model file or a redis URL from which the model will be loaded (required)")
	cmd.PersistentFlags().StringVar(&(config.modelName), "model-name", "default", "name under which the model was saved when the model is a redis URL")
	cmd.PersistentFlags().StringVar(&(config.method), "method", tree.ImportanceGini, "importance accumulation method: gini or squared")
	return cmd
}

func (icc *importancesCmdConfig) Validate() error {
	if icc.modelInput == "" {
		return fmt.Errorf("required model flag was not set")
	}
	return nil
}
