package testutil

import (
	"context"
)

type MockRedisClient struct {
	IncrFunc func(ctx context.Context, key string) error
	GetFunc  func(ctx context.Context, key string) (int64, error)
	DelFunc  func(ctx context.Context, keys ...string) error
}

func (m *MockRedisClient) Incr(ctx context.Context, key string) error {
	if m.IncrFunc != nil {
		return m.IncrFunc(ctx, key)
	}

	return nil
}

func (m *MockRedisClient) Get(ctx context.Context, key string) (int64, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}

	return 0, nil
}

func (m *MockRedisClient) Del(ctx context.Context, keys ...string) error {
	if m.DelFunc != nil {
		return m.DelFunc(ctx, keys...)
	}

	return nil
}
