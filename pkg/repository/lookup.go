package repository

import "context"

// Lookup is the result of loading an entity by ID: either Found(entity) or NotFound.
// Callers must unwrap it with Get and decide what the NotFound branch means.
type Lookup[T any] struct {
	value T
	found bool
}

func Found[T any](v T) Lookup[T] {
	return Lookup[T]{value: v, found: true}
}

func NotFound[T any]() Lookup[T] {
	return Lookup[T]{}
}

func (l Lookup[T]) Get() (T, bool) {
	return l.value, l.found
}

func (l Lookup[T]) Exists() bool {
	return l.found
}

// Loader loads a single entity by ID.
type Loader[T any] func(ctx context.Context, id string) (Lookup[T], error)

// GetOrCreate loads the entity or builds its zero-valued default with create.
// The default is not saved; created reports which branch was taken.
func GetOrCreate[T any](ctx context.Context, load Loader[T], id string, create func() T) (entity T, created bool, err error) {
	res, err := load(ctx, id)
	if err != nil {
		return entity, false, err
	}
	if v, ok := res.Get(); ok {
		return v, false, nil
	}
	return create(), true, nil
}
