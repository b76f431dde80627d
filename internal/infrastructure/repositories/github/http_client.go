package github

import (
	"net/http"

	"github.com/hashicorp/go-retryablehttp"
	logger "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"github.com/rios0rios0/repoanalyzer/internal/domain/entities"
)

// newHTTPClient builds the session client of one run: a retrying transport
// with a per-attempt timeout, wrapped by a bearer-token transport when a token
// is configured. The returned func releases pooled connections.
func newHTTPClient(settings entities.ContentSettings) (*http.Client, func()) {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = settings.RetryMax
	retryClient.Logger = &leveledLogger{entry: logger.WithField("component", "github-http")}
	// The last response is handed back as-is so status handling stays in the repository.
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.HTTPClient.Timeout = settings.Timeout

	var transport http.RoundTripper = &retryablehttp.RoundTripper{Client: retryClient}
	if settings.Token != "" {
		transport = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: settings.Token}),
			Base:   transport,
		}
	}

	return &http.Client{Transport: transport}, retryClient.HTTPClient.CloseIdleConnections
}

// leveledLogger adapts logrus to retryablehttp.LeveledLogger. Request-level
// chatter goes to debug; only failures surface above it.
type leveledLogger struct {
	entry *logger.Entry
}

var _ retryablehttp.LeveledLogger = (*leveledLogger)(nil)

func (l *leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.with(keysAndValues).Warn(msg)
}

func (l *leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.with(keysAndValues).Warn(msg)
}

func (l *leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.with(keysAndValues).Debug(msg)
}

func (l *leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.with(keysAndValues).Debug(msg)
}

func (l *leveledLogger) with(keysAndValues []interface{}) *logger.Entry {
	fields := make(logger.Fields, len(keysAndValues)/2) //nolint:mnd // key/value pairs
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		if key, ok := keysAndValues[i].(string); ok {
			fields[key] = keysAndValues[i+1]
		}
	}
	return l.entry.WithFields(fields)
}
