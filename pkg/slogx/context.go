package slogx

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

func WithContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

func FromContext(ctx context.Context) *slog.Logger {
	l, ok := ctx.Value(ctxKey{}).(*slog.Logger)
	if !ok {
		return slog.Default()
	}
	return l
}

// WithAccount tags the request logger with the signed-in account.
func WithAccount(ctx context.Context, accountID, role string) context.Context {
	return WithContext(ctx, FromContext(ctx).With("account_id", accountID, "role", role))
}
