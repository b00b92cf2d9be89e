package main

import (
	"context"
	"fmt"
	"os"

	"github.com/grovekit/grove/model"
	"github.com/spf13/cobra"
)

type pruneCmdConfig struct {
	*rootCmdConfig
	modelInput   string
	modelName    string
	output       string
	outputName   string
	targetLeaves int
}

func pruneCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &pruneCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Prune a grown model to a smaller tree",
		Long:  `Prune a grown model with weakest-link pruning to obtain the optimal subtree with the given number of leaves.`,
		Run: func(cmd *cobra.Command, args []string) {
			log := config.logger()
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
			log.Debug().
				Int("nodes", m.Tree.NodeCount()).
				Int("leaves", len(m.Tree.Leaves())).
				Msg("model loaded")
			pruned, err := m.Tree.Prune(config.targetLeaves)
			if err != nil {
				fmt.Fprintf(os.Stderr, "pruning the tree: %v\n", err)
				os.Exit(3)
			}
			log.Info().
				Int("nodes", pruned.NodeCount()).
				Int("leaves", len(pruned.Leaves())).
				Msg("tree pruned")
			pm, err := model.New(pruned, m.Features, m.Target)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
			err = saveModel(context.Background(), pm, config.output, config.outputName)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(5)
			}
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.modelInput), "model", "t", "", "path to a JSON model file or a redis URL from which the model will be loaded (required)")
	cmd.PersistentFlags().StringVar(&(config.modelName), "model-name", "default", "name under which the model was saved when the model is a redis URL")
	cmd.PersistentFlags().IntVarP(&(config.targetLeaves), "leaves", "l", 0, "number of leaves the pruned tree should keep (required)")
	cmd.PersistentFlags().StringVarP(&(config.output), "output", "o", "", "path to a file or redis URL to which the pruned model will be written in JSON format (defaults to STDOUT)")
	cmd.PersistentFlags().StringVar(&(config.outputName), "output-name", "default", "name under which to save the pruned model when the output is a redis URL")
	return cmd
}

func (pcc *pruneCmdConfig) Validate() error {
	if pcc.modelInput == "" {
		return fmt.Errorf("required model flag was not set")
	}
	if pcc.targetLeaves < 1 {
		return fmt.Errorf("required leaves flag was not set to a positive number")
	}
	return nil
}
