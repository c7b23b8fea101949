package domain

// Severity of a user-facing notification
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Notification a toast shown to the visitor
type Notification struct {
	Title    string
	Message  string
	Severity Severity
}
