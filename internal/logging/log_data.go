package logging

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

type LogData struct {
	itemsMutex *sync.Mutex
	timeItems  map[string]int64
	dataItems  map[string]interface{}
	logger     *logrus.Logger
}

func NewLogData(logger *logrus.Logger) *LogData {
	return &LogData{
		itemsMutex: &sync.Mutex{},
		timeItems:  make(map[string]int64),
		dataItems:  make(map[string]interface{}),
		logger:     logger,
	}
}

func (l *LogData) AddTiming(entryName string) func() {
	startTime := time.Now()

	return func() {
		timeSince := time.Since(startTime).Milliseconds()
		l.itemsMutex.Lock()
		defer l.itemsMutex.Unlock()
		l.timeItems[entryName] = timeSince
	}
}

func (l *LogData) AddToExistingTiming(entryName string) func() {
	startTime := time.Now()

	return func() {
		timeSince := time.Since(startTime).Milliseconds()
		l.itemsMutex.Lock()
		defer l.itemsMutex.Unlock()
		l.timeItems[entryName] += timeSince
	}
}

func (l *LogData) AddData(key string, value interface{}) {
	l.itemsMutex.Lock()
	defer l.itemsMutex.Unlock()
	l.dataItems[key] = value
}

func (l *LogData) Log() *logrus.Entry {
	entry := logrus.NewEntry(l.logger)

	l.itemsMutex.Lock()
	defer l.itemsMutex.Unlock()

	for key, value := range l.dataItems {
		entry = entry.WithField(key, value)
	}

	for key, value := range l.timeItems {
		entry = entry.WithField(key, value)
	}

	return entry
}

type logDataContextKey struct{}

// NewContext stores logData on ctx so handlers can attach fields and timings
// to the request's completion log line.
func NewContext(ctx context.Context, logData *LogData) context.Context {
	return context.WithValue(ctx, logDataContextKey{}, logData)
}

// GetLogData returns the request's LogData. Requests that did not come
// through the logging middleware get a fresh one wired to the standard
// logger, so callers never need a nil check.
func GetLogData(ctx context.Context) *LogData {
	logData, ok := ctx.Value(logDataContextKey{}).(*LogData)
	if !ok {
		return NewLogData(logrus.StandardLogger())
	}
	return logData
}
