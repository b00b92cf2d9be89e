package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/grovekit/grove/model"
	modeljson "github.com/grovekit/grove/model/json"
	"github.com/grovekit/grove/model/redisstore"
	"gopkg.in/redis.v5"
)

const redisModelPrefix = "grove:models"

/*
loadModel reads a fitted model from the given location: a redis
connection URL, under the given model name, or a path to a JSON file.
*/
func loadModel(ctx context.Context, location, name string) (*model.Model, error) {
	if strings.HasPrefix(location, "redis://") {
		store, err := redisModelStore(location)
		if err != nil {
			return nil, err
		}
		defer store.Close(ctx)
		m, err := store.Load(ctx, name)
		if err != nil {
			return nil, err
		}
		if m == nil {
			return nil, fmt.Errorf("model %q not found at %s", name, location)
		}
		return m, nil
	}
	f, err := os.Open(location)
	if err != nil {
		return nil, fmt.Errorf("opening model at %s: %v", location, err)
	}
	defer f.Close()
	m, err := modeljson.ReadModel(f)
	if err != nil {
		return nil, fmt.Errorf("parsing model at %s: %v", location, err)
	}
	return m, nil
}

/*
saveModel writes a fitted model to the given location: a redis
connection URL, under the given model name, a path to a file to create
or, when the location is empty, STDOUT. The model is serialized as
JSON either way.
*/
func saveModel(ctx context.Context, m *model.Model, location, name string) error {
	if strings.HasPrefix(location, "redis://") {
		store, err := redisModelStore(location)
		if err != nil {
			return err
		}
		defer store.Close(ctx)
		return store.Save(ctx, name, m)
	}
	f := os.Stdout
	if location != "" {
		var err error
		f, err = os.Create(location)
		if err != nil {
			return fmt.Errorf("creating model file at %s: %v", location, err)
		}
		defer f.Close()
	}
	return modeljson.WriteModel(f, m)
}

func redisModelStore(url string) (model.Store, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis URL %s: %v", url, err)
	}
	return redisstore.New(redis.NewClient(opts), redisModelPrefix, modeljson.NewEncodeDecoder()), nil
}
