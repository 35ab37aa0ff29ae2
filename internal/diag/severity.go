package diag

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	// SevStyle is for style rule violations.
	SevStyle Severity = iota
	// SevWarning is for semantic warnings that cannot be suppressed.
	SevWarning
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevStyle:
		return "style"
	case SevWarning:
		return "warning"
	case SevError:
		return "error"
	}
	return "unknown"
}
