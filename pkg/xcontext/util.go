package xcontext

import "context"

type (
	userIDKey   struct{}
	responseKey struct{}
	errorKey    struct{}
)

// holder lets values set after the context is built (response, error)
// be visible to After middlewares and Closers sharing that context.
type holder struct {
	value any
}

func WithRequestHolders(ctx context.Context) context.Context {
	ctx = context.WithValue(ctx, responseKey{}, &holder{})
	ctx = context.WithValue(ctx, errorKey{}, &holder{})
	return ctx
}

func SetError(ctx context.Context, err error) {
	if h, ok := ctx.Value(errorKey{}).(*holder); ok {
		h.value = err
	}
}

func Error(ctx context.Context) error {
	h, ok := ctx.Value(errorKey{}).(*holder)
	if !ok || h.value == nil {
		return nil
	}

	return h.value.(error)
}

func SetResponse(ctx context.Context, resp any) {
	if h, ok := ctx.Value(responseKey{}).(*holder); ok {
		h.value = resp
	}
}

func Response(ctx context.Context) any {
	h, ok := ctx.Value(responseKey{}).(*holder)
	if !ok {
		return nil
	}

	return h.value
}

func WithRequestUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, userIDKey{}, id)
}

func RequestUserID(ctx context.Context) string {
	id := ctx.Value(userIDKey{})
	if id == nil {
		return ""
	}

	return id.(string)
}
