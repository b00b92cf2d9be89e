package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"strings"

	"github.com/grovekit/grove"
	"github.com/grovekit/grove/criterion"
	"github.com/grovekit/grove/dataset"
	"github.com/grovekit/grove/dataset/csv"
	"github.com/grovekit/grove/dataset/mongodataset"
	"github.com/grovekit/grove/dataset/sqldataset"
	"github.com/grovekit/grove/dataset/sqldataset/pgadapter"
	"github.com/grovekit/grove/dataset/sqldataset/sqlite3adapter"
	"github.com/grovekit/grove/feature"
	"github.com/grovekit/grove/feature/yaml"
	"github.com/grovekit/grove/model"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	mgo "gopkg.in/mgo.v2"
)

type growCmdConfig struct {
	*rootCmdConfig
	dataInput       string
	metadataInput   string
	output          string
	modelName       string
	targetFeature   string
	criterionName   string
	splitStrategy   string
	maxDepth        int
	minSamplesSplit int
	minSamplesLeaf  int
	minDensity      float64
	maxFeatures     int
	seed            int64
	maxDBConns      int
}

func growCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &growCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "grow",
		Short: "Grow a tree from a set of data",
		Long:  `Grow a classification or regression tree from a set of data to predict a certain feature.`,
		Run: func(cmd *cobra.Command, args []string) {
			log := config.logger()
			err := config.Validate()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			features, err := yaml.ReadFeaturesFromFile(config.metadataInput)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			inputs, target, err := splitTargetFeature(features, config.targetFeature)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			table, err := config.trainingTable(log, inputs, target)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
			grower, err := config.grower(log, target)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(5)
			}
			log.Info().
				Int("samples", table.Count()).
				Int("features", len(table.Features)).
				Str("target", target.Name()).
				Msg("growing tree")
			t, err := grower.Grow(context.Background(), table.X, table.Y)
			if err != nil {
				fmt.Fprintf(os.Stderr, "growing the tree: %v\n", err)
				os.Exit(6)
			}
			log.Info().
				Int("nodes", t.NodeCount()).
				Int("leaves", len(t.Leaves())).
				Msg("tree grown")
			m, err := model.New(t, table.Features, table.Target)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(7)
			}
			err = saveModel(context.Background(), m, config.output, config.modelName)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(8)
			}
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.dataInput), "input", "i", "", "path to an input CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL or MongoDB connection URL with data to use to grow the tree (defaults to STDIN, interpreted as CSV)")
	cmd.PersistentFlags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file with metadata describing the different features available on the input (required)")
	cmd.PersistentFlags().StringVarP(&(config.output), "output", "o", "", "path to a file or redis URL to which the grown model will be written in JSON format (defaults to STDOUT)")
	cmd.PersistentFlags().StringVar(&(config.modelName), "model-name", "default", "name under which to save the model when the output is a redis URL")
	cmd.PersistentFlags().StringVarP(&(config.targetFeature), "target", "c", "", "name of the feature the grown tree should predict (required)")
	cmd.PersistentFlags().StringVar(&(config.criterionName), "criterion", "", "impurity criterion to grow the tree under: gini or entropy for discrete targets, mse for continuous ones (defaults to gini or mse)")
	cmd.PersistentFlags().StringVar(&(config.splitStrategy), "split", "best", "split-finding strategy to apply: best or random")
	cmd.PersistentFlags().IntVar(&(config.maxDepth), "max-depth", -1, "bound on the depth of the grown tree (defaults to -1: no bound)")
	cmd.PersistentFlags().IntVar(&(config.minSamplesSplit), "min-samples-split", 1, "minimum number of samples a node must have to be split")
	cmd.PersistentFlags().IntVar(&(config.minSamplesLeaf), "min-samples-leaf", 1, "minimum number of samples each side of a split must keep")
	cmd.PersistentFlags().Float64Var(&(config.minDensity), "min-density", 0.1, "sample-mask density under which the builder repacks its working arrays")
	cmd.PersistentFlags().IntVar(&(config.maxFeatures), "max-features", 0, "number of features to consider per split (defaults to 0: all of them)")
	cmd.PersistentFlags().Int64Var(&(config.seed), "seed", 0, "seed for the random source, for reproducible trees (defaults to 0: seed from the current time)")
	cmd.PersistentFlags().IntVar(&(config.maxDBConns), "max-db-conns", 0, "limit to DB connections opened at a time (defaults to 0: no limit)")
	return cmd
}

func (gcc *growCmdConfig) Validate() error {
	if gcc.metadataInput == "" {
		return fmt.Errorf("required metadata flag was not set")
	}
	if gcc.targetFeature == "" {
		return fmt.Errorf("required target flag was not set")
	}
	if gcc.minDensity < 0 || gcc.minDensity > 1 {
		return fmt.Errorf("min-density must be a fraction in [0, 1]")
	}
	return nil
}

func (gcc *growCmdConfig) grower(log zerolog.Logger, target feature.Feature) (*grove.Grower, error) {
	c, err := criterionFor(gcc.criterionName, target)
	if err != nil {
		return nil, err
	}
	split, err := grove.SplitFinderFor(gcc.splitStrategy)
	if err != nil {
		return nil, err
	}
	var r *rand.Rand
	if gcc.seed != 0 {
		r = rand.New(rand.NewSource(gcc.seed))
	}
	return &grove.Grower{
		Criterion:       c,
		Split:           split,
		MaxDepth:        gcc.maxDepth,
		MinSamplesSplit: gcc.minSamplesSplit,
		MinSamplesLeaf:  gcc.minSamplesLeaf,
		MinDensity:      gcc.minDensity,
		MaxFeatures:     gcc.maxFeatures,
		Rand:            r,
		Logger:          log,
	}, nil
}

func (gcc *growCmdConfig) trainingTable(log zerolog.Logger, features []feature.Feature, target feature.Feature) (*dataset.Table, error) {
	if strings.HasPrefix(gcc.dataInput, "postgresql://") {
		log.Debug().Str("url", gcc.dataInput).Msg("opening PostgreSQL dataset")
		adapter, err := pgadapter.New(gcc.dataInput, gcc.maxDBConns)
		if err != nil {
			return nil, err
		}
		defer adapter.Close()
		return sqldataset.ReadTable(context.Background(), adapter, features, target)
	}
	if strings.HasPrefix(gcc.dataInput, "mongodb://") {
		log.Debug().Str("url", gcc.dataInput).Msg("opening MongoDB dataset")
		session, err := mgo.Dial(gcc.dataInput)
		if err != nil {
			return nil, fmt.Errorf("connecting to MongoDB at %s: %v", gcc.dataInput, err)
		}
		defer session.Close()
		return mongodataset.ReadTable(context.Background(), session, features, target)
	}
	if strings.HasSuffix(gcc.dataInput, ".db") {
		log.Debug().Str("file", gcc.dataInput).Msg("opening SQLite3 dataset")
		adapter, err := sqlite3adapter.New(gcc.dataInput, gcc.maxDBConns)
		if err != nil {
			return nil, err
		}
		defer adapter.Close()
		return sqldataset.ReadTable(context.Background(), adapter, features, target)
	}
	if gcc.dataInput == "" {
		log.Debug().Msg("reading training set from STDIN")
		return csv.ReadTable(os.Stdin, features, target)
	}
	log.Debug().Str("file", gcc.dataInput).Msg("reading training set")
	return csv.ReadTableFromFilePath(gcc.dataInput, features, target)
}

func splitTargetFeature(features []feature.Feature, name string) ([]feature.Feature, feature.Feature, error) {
	var target feature.Feature
	inputs := make([]feature.Feature, 0, len(features)-1)
	for _, f := range features {
		if f.Name() == name {
			target = f
			continue
		}
		inputs = append(inputs, f)
	}
	if target == nil {
		return nil, nil, fmt.Errorf("target feature '%s' is not defined", name)
	}
	return inputs, target, nil
}

func criterionFor(name string, target feature.Feature) (criterion.Criterion, error) {
	if df, ok := target.(*feature.DiscreteFeature); ok {
		if name == "" {
			name = "gini"
		}
		return criterion.NewClassification(name, []int{len(df.AvailableValues())})
	}
	if name == "" {
		name = "mse"
	}
	return criterion.NewRegression(name, 1)
}
