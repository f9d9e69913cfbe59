package types

// LogKind classifies an error log entry
type LogKind string

const (
	LogKindPermissionError LogKind = "permission_error"
	LogKindGeneralError    LogKind = "general_error"
)

// IsValid checks if the log kind is valid
func (k LogKind) IsValid() bool {
	switch k {
	case LogKindPermissionError, LogKindGeneralError:
		return true
	default:
		return false
	}
}

// String returns the string representation of the log kind
func (k LogKind) String() string {
	return string(k)
}
