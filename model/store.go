package model

import (
	"context"
	"sync"
)

/*
Store is an interface to manage a store where fitted models can be
saved, retrieved and deleted by name.

All its methods take a context that may allow cancelling the operation
(thus forcing the return of an error) if the implementation allows it.
*/
type Store interface {
	// Save stores the given model under the given name, replacing
	// any model previously saved under it. It returns an error if
	// the model cannot be stored.
	Save(ctx context.Context, name string, m *Model) error
	// Load returns the model saved under the given name, or nil if
	// there is none, or an error if the store cannot be queried.
	Load(ctx context.Context, name string) (*Model, error)
	// Delete removes the model saved under the given name. It
	// returns an error if the model exists but the deletion cannot
	// be performed.
	Delete(ctx context.Context, name string) error
	// Close closes the store, freeing any resources in use and
	// ensuring any pending changes are applied before returning
	// (unless the context expires).
	Close(ctx context.Context) error
}

/*
EncodeDecoder is an interface for objects that allow encoding models
into slices of bytes and decoding them back to models, as stores with
byte-oriented backends need.
*/
type EncodeDecoder interface {
	// Encode receives a *Model and returns a slice of bytes with the
	// model encoded or an error if the encoding could not be
	// performed for some reason.
	Encode(*Model) ([]byte, error)
	// Decode receives a slice of bytes and returns a *Model decoded
	// from it or an error if the decoding could not be performed for
	// some reason.
	Decode([]byte) (*Model, error)
}

type memoryStore struct {
	models map[string]*Model
	lock   *sync.RWMutex
}

// NewMemoryStore returns an implementation of Store with the process
// memory space as underlying backend.
func NewMemoryStore() Store {
	return &memoryStore{
		models: make(map[string]*Model),
		lock:   &sync.RWMutex{},
	}
}

func (ms *memoryStore) Save(ctx context.Context, name string, m *Model) error {
	return ms.withLock(ctx, func(ctx context.Context) error {
		ms.models[name] = m
		return nil
	})
}

func (ms *memoryStore) Load(ctx context.Context, name string) (*Model, error) {
	var m *Model
	err := ms.withRLock(ctx, func(ctx context.Context) error {
		m = ms.models[name]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (ms *memoryStore) Delete(ctx context.Context, name string) error {
	return ms.withLock(ctx, func(ctx context.Context) error {
		delete(ms.models, name)
		return nil
	})
}

func (ms *memoryStore) Close(ctx context.Context) error {
	return nil
}

func (ms *memoryStore) withLock(ctx context.Context, f func(ctx context.Context) error) error {
	gotLock := make(chan struct{})
	go func() {
		ms.lock.Lock()
		select {
		case <-ctx.Done():
			ms.lock.Unlock()
		case gotLock <- struct{}{}:
		}
	}()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-gotLock:
		defer ms.lock.Unlock()
	}
	return f(ctx)
}

func (ms *memoryStore) withRLock(ctx context.Context, f func(ctx context.Context) error) error {
	gotLock := make(chan struct{})
	go func() {
		ms.lock.RLock()
		select {
		case <-ctx.Done():
			ms.lock.RUnlock()
		case gotLock <- struct{}{}:
		}
	}()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-gotLock:
		defer ms.lock.RUnlock()
	}
	return f(ctx)
}
