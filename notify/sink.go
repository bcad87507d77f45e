// Package notify is the fire-and-forget side channel hit on submission and
// status-change events. No delivery guarantee is offered; real email is a
// future sink behind the same interface.
package notify

import "github.com/drinkph/portal-go/logger"

const (
	EventSubmission   = "submission"
	EventStatusChange = "status_change"
	EventFileUpload   = "file_upload"
)

type Sink interface {
	Notify(event, subjectID, message string)
}

// LogSink writes notifications to the service log.
type LogSink struct{}

func (LogSink) Notify(event, subjectID, message string) {
	logger.Info("notification %s project=%s: %s", event, subjectID, message)
}

type fanout []Sink

// Fanout delivers each event to every sink.
func Fanout(sinks ...Sink) Sink {
	return fanout(sinks)
}

func (f fanout) Notify(event, subjectID, message string) {
	for _, s := range f {
		s.Notify(event, subjectID, message)
	}
}
