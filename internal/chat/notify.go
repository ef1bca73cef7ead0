// ABOUTME: Notification sink contract for surfacing user-facing messages.
// ABOUTME: The session never renders notifications itself.

package chat

// Severity grades a notification for the consuming view layer.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Notifier receives user-facing notifications: send failures and
// classification fallback edge cases.
type Notifier interface {
	Notify(message string, severity Severity)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(message string, severity Severity)

func (f NotifierFunc) Notify(message string, severity Severity) {
	f(message, severity)
}
