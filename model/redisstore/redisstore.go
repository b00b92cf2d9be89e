/*
Package redisstore provides an implementation of model.Store backed by
a redis database, so fitted models can be shared across processes.
*/
package redisstore

import (
	"context"
	"fmt"

	"github.com/grovekit/grove/model"
	"gopkg.in/redis.v5"
)

type redisStore struct {
	rc     *redis.Client
	prefix string
	encdec model.EncodeDecoder
}

/*
New takes a redis client, a key prefix and a model.EncodeDecoder and
returns a model.Store storing each model under its prefixed name.
*/
func New(rc *redis.Client, prefix string, encdec model.EncodeDecoder) model.Store {
	return &redisStore{rc, prefix, encdec}
}

func (rs *redisStore) Save(ctx context.Context, name string, m *model.Model) error {
	data, err := rs.encdec.Encode(m)
	if err != nil {
		return fmt.Errorf("saving model %q: encoding model: %v", name, err)
	}
	_, err = rs.rc.Set(rs.keyFor(name), data, 0).Result()
	if err != nil {
		return fmt.Errorf("saving model %q in redis: %v", name, err)
	}
	return nil
}

func (rs *redisStore) Load(ctx context.Context, name string) (*model.Model, error) {
	data, err := rs.rc.Get(rs.keyFor(name)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading model %q from redis: %v", name, err)
	}
	m, err := rs.encdec.Decode([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("loading model %q: decoding model: %v", name, err)
	}
	return m, nil
}

func (rs *redisStore) Delete(ctx context.Context, name string) error {
	_, err := rs.rc.Del(rs.keyFor(name)).Result()
	if err != nil {
		return fmt.Errorf("deleting model %q from redis: %v", name, err)
	}
	return nil
}

func (rs *redisStore) Close(ctx context.Context) error {
	return rs.rc.Close()
}

func (rs *redisStore) keyFor(name string) string {
	return fmt.Sprintf("%s:%s", rs.prefix, name)
}
