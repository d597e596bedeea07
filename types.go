package formskema

// UnknownPolicy controls how unknown keys are handled.
type UnknownPolicy int

const (
	UnknownStrip  UnknownPolicy = iota // Drop unknown keys.
	UnknownStrict                      // Reject unknown keys with an error.
)

// Severity expresses the severity level for input enforcement.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

// Strictness configures enforcement for duplicate keys in document inputs.
type Strictness struct {
	OnDuplicateKey Severity // Ignore, Warn or Error (duplicate object keys).
}

// ParseOpt bundles parsing options.
type ParseOpt struct {
	Strictness Strictness
	MaxDepth   int
	MaxBytes   int64
	// FailFast stops at the first failing field instead of collecting all of them.
	FailFast bool
}
