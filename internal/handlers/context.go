package handlers

import (
	"context"

	"github.com/minhquy1903/snapchat/internal/session"
)

type contextKey string

const sessionContextKey contextKey = "session"

func SetSessionInContext(ctx context.Context, sess session.Context) context.Context {
	return context.WithValue(ctx, sessionContextKey, sess)
}

func GetSessionFromContext(ctx context.Context) (session.Context, bool) {
	sess, ok := ctx.Value(sessionContextKey).(session.Context)
	return sess, ok
}
