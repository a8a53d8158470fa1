package desk

import "github.com/rs/zerolog"

// Operator → desk.
const (
	CmdInput      = "input"
	CmdSelect     = "select"
	CmdSubmit     = "submit"
	CmdEdit       = "edit"
	CmdEditInput  = "edit.input"
	CmdEditSave   = "edit.save"
	CmdEditCancel = "edit.cancel"
)

// Desk → operator.
const (
	EventList    = "list"
	EventResults = "results"
	EventForm    = "form"
	EventNotify  = "notify"
	EventDialog  = "dialog"
)

type Command struct {
	Type  string `json:"type"`
	Kind  Kind   `json:"kind,omitempty"`
	Field string `json:"field,omitempty"`
	Value string `json:"value,omitempty"`
	ID    uint   `json:"id,omitempty"`
}

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
)

type Event struct {
	Type     string   `json:"type"`
	Kind     Kind     `json:"kind,omitempty"`
	Field    string   `json:"field,omitempty"`
	Query    string   `json:"query,omitempty"`
	Rows     any      `json:"rows,omitempty"`
	Values   any      `json:"values,omitempty"`
	Missing  []string `json:"missing,omitempty"`
	Severity Severity `json:"severity,omitempty"`
	Title    string   `json:"title,omitempty"`
	Message  string   `json:"message,omitempty"`
	State    string   `json:"state,omitempty"`
	ID       uint     `json:"id,omitempty"`
}

// Sink delivers events to the operator. It is called from several
// goroutines and must serialize its writes.
type Sink interface {
	Send(Event) error
}

type SinkFunc func(Event) error

func (f SinkFunc) Send(e Event) error { return f(e) }

type sinkNotifier struct {
	sink Sink
	log  zerolog.Logger
}

func (n sinkNotifier) notify(severity Severity, message, title string) {
	err := n.sink.Send(Event{Type: EventNotify, Severity: severity, Message: message, Title: title})
	if err != nil {
		n.log.Warn().Err(err).Str("severity", string(severity)).Msg("notification dropped")
	}
}

func (n sinkNotifier) Success(message, title string) { n.notify(SeveritySuccess, message, title) }
func (n sinkNotifier) Error(message, title string)   { n.notify(SeverityError, message, title) }
func (n sinkNotifier) Info(message, title string)    { n.notify(SeverityInfo, message, title) }
