package logging

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/sirupsen/logrus"
)

// Middleware attaches a LogData to every huma request and emits one
// completion line per request, mirroring what LoggingWrapper does for the
// plain net/http endpoints.
func Middleware(log *logrus.Logger) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		logData := NewLogData(log)
		endTimer := logData.AddTiming("duration")

		next(huma.WithValue(ctx, logDataContextKey{}, logData))

		endTimer()
		logData.AddData("path", ctx.URL().Path)
		logData.AddData("status", ctx.Status())
		logData.Log().Infof("Handler.%v.Complete", ctx.Operation().OperationID)
	}
}
