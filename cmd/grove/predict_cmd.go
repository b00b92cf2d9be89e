package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/grovekit/grove/dataset"
	"github.com/grovekit/grove/dataset/csv"
	"github.com/grovekit/grove/model"
	"github.com/spf13/cobra"
)

type predictCmdConfig struct {
	*rootCmdConfig
	modelInput string
	modelName  string
	dataInput  string
	output     string
	proba      bool
}

func predictCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &predictCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict target values for a set of samples",
		Long:  `Use a grown model to predict its target feature for every sample on a CSV input, writing one prediction per line.`,
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
				Str("task", m.Task().String()).
				Int("features", len(m.Features)).
				Msg("model loaded")
			X, err := config.samples(m)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			out, err := config.outputWriter()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
			defer out.Close()
			err = config.writePredictions(out, m, X)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(5)
			}
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.modelInput), "model", "t", "", "path to a JSON model file or a redis URL from which the model will be loaded (required)")
	cmd.PersistentFlags().StringVar(&(config.modelName), "model-name", "default", "name under which the model was saved when the model is a redis URL")
	cmd.PersistentFlags().StringVarP(&(config.dataInput), "input", "i", "", "path to a CSV file with the samples to predict (defaults to STDIN)")
	cmd.PersistentFlags().StringVarP(&(config.output), "output", "o", "", "path to a file to which predictions will be written, one per line (defaults to STDOUT)")
	cmd.PersistentFlags().BoolVar(&(config.proba), "proba", false, "output per-class probabilities instead of the most probable class (classification models only)")
	return cmd
}

func (pcc *predictCmdConfig) Validate() error {
	if pcc.modelInput == "" {
		return fmt.Errorf("required model flag was not set")
	}
	return nil
}

func (pcc *predictCmdConfig) samples(m *model.Model) (X *dataset.Matrix, err error) {
	f := os.Stdin
	if pcc.dataInput != "" {
		f, err = os.Open(pcc.dataInput)
		if err != nil {
			return nil, fmt.Errorf("opening samples at %s: %v", pcc.dataInput, err)
		}
		defer f.Close()
	}
	return csv.ReadMatrix(f, m.Features)
}

func (pcc *predictCmdConfig) outputWriter() (*os.File, error) {
	if pcc.output == "" {
		return os.Stdout, nil
	}
	f, err := os.Create(pcc.output)
	if err != nil {
		return nil, fmt.Errorf("creating output file at %s: %v", pcc.output, err)
	}
	return f, nil
}

func (pcc *predictCmdConfig) writePredictions(out *os.File, m *model.Model, X *dataset.Matrix) error {
	if m.Task() == model.Regression {
		values, err := m.PredictValue(X)
		if err != nil {
			return err
		}
		for _, v := range values {
			fmt.Fprintf(out, "%g\n", v)
		}
		return nil
	}
	if pcc.proba {
		probas, err := m.PredictProba(X)
		if err != nil {
			return err
		}
		for i := 0; i < probas.Rows(); i++ {
			cells := make([]string, probas.Cols())
			for j := range cells {
				cells[j] = fmt.Sprintf("%g", probas.At(i, j))
			}
			fmt.Fprintln(out, strings.Join(cells, ","))
		}
		return nil
	}
	labels, err := m.PredictClass(X)
	if err != nil {
		return err
	}
	for _, label := range labels {
		fmt.Fprintln(out, label)
	}
	return nil
}
