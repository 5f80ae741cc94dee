package entity

import "context"

type CtxKeyEmail struct{}

func WithEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, CtxKeyEmail{}, email)
}

// EmailFromCtx returns the authenticated email, or "" for anonymous
// requests (which resolve to the guest profile downstream).
func EmailFromCtx(ctx context.Context) string {
	email, ok := ctx.Value(CtxKeyEmail{}).(string)
	if !ok {
		return ""
	}

	return email
}
