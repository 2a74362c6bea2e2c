package render

import "github.com/sirupsen/logrus"

// Reporter receives the confirmation that an image was written
type Reporter interface {
	Saved(path string)
}

// ReporterFunc adapts a function to Reporter
type ReporterFunc func(path string)

func (f ReporterFunc) Saved(path string) {
	f(path)
}

// LogReporter logs the confirmation at info level
type LogReporter struct {
	Logger logrus.FieldLogger
}

func (r LogReporter) Saved(path string) {
	logger := r.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	logger.WithField("path", path).Infof("Graph saved as %s", path)
}

type discardReporter struct{}

func (discardReporter) Saved(string) {}
