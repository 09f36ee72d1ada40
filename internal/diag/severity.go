package diag

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	// SevInfo covers hints such as SYN2003 and the OBS6001 timing report.
	SevInfo Severity = iota
	SevWarning
	// SevError makes `greet diag` exit with status 1.
	SevError
)

// String is the upper-case form used by the pretty and JSON outputs.
func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// Label is the lower-case form used by the short golden format.
// Unknown severities read as "info" so golden files stay stable.
func (s Severity) Label() string {
	switch s {
	case SevError:
		return "error"
	case SevWarning:
		return "warning"
	default:
		return "info"
	}
}
