// Package mocks provides a no-op tracer for unit tests.
package mocks

import (
	"context"
	"fixmycondo/infras/otel"
)

type otelImpl struct{}

func (o *otelImpl) NewScope(ctx context.Context, _, _ string) (context.Context, otel.Scope) {
	return ctx, NewScope()
}

func NewOtel() otel.Otel {
	return &otelImpl{}
}
