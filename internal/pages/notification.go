// Package pages holds the state behind each screen of the console: the list
// fetched from the backend, the outcome of the last save or delete and the
// local validation that runs before any request goes out. The console and
// the CLI both drive these models.
package pages

import (
	"github.com/golang/glog"
	"github.com/krancour/yuadmin/sdk/api"
)

// Severity classifies a Notification.
type Severity string

const (
	// SeveritySuccess marks a Notification about an operation that worked.
	SeveritySuccess Severity = "success"
	// SeverityError marks a Notification about an operation that failed or was
	// never attempted because the form was invalid.
	SeverityError Severity = "error"
)

// Notification is the short message shown to the operator after a save or a
// delete.
type Notification struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// IsError reports whether the Notification describes a failure.
func (n Notification) IsError() bool {
	return n.Severity == SeverityError
}

func succeeded(message string) Notification {
	return Notification{
		Severity: SeveritySuccess,
		Message:  message,
	}
}

// failed logs err and returns an error Notification carrying the backend's
// message when it sent one and fallback otherwise.
func failed(err error, fallback string) Notification {
	glog.Errorf("%s: %s", fallback, err)
	return Notification{
		Severity: SeverityError,
		Message:  api.ErrorMessage(err, fallback),
	}
}
