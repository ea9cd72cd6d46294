package requestid

import (
	"context"

	"github.com/sirupsen/logrus"
)

const Header = "X-Request-ID"

type contextKey struct{}

func NewContext(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, contextKey{}, requestID)
}

func FromContext(ctx context.Context) (string, bool) {
	requestID, ok := ctx.Value(contextKey{}).(string)
	return requestID, ok
}

// Logger returns log tagged with the request ID carried by ctx. Outside a
// request the entry has no request_id field.
func Logger(ctx context.Context, log *logrus.Logger) *logrus.Entry {
	if requestID, ok := FromContext(ctx); ok {
		return log.WithField("request_id", requestID)
	}
	return logrus.NewEntry(log)
}
