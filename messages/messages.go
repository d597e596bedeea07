// Package messages holds fallback messages for issue codes, used where a
// schema rule declares no message of its own.
package messages

import "sync"

// Catalog retrieves messages for Issue codes.
type Catalog interface {
	Message(code string) string
}

// defaultCatalog is the built-in English catalog.
type defaultCatalog struct{}

func (defaultCatalog) Message(code string) string {
	switch code {
	case "invalid_type":
		return "Invalid type"
	case "required":
		return "Required"
	case "unknown_key":
		return "Unrecognized key"
	case "duplicate_key":
		return "Duplicate key"
	case "too_small":
		return "Value is too small"
	case "too_short":
		return "Value is too short"
	case "pattern":
		return "Invalid format"
	case "invalid_format":
		return "Invalid format"
	case "parse_error":
		return "Malformed input"
	case "truncated":
		return "Input too large"
	}
	return code
}

var (
	mu      sync.RWMutex
	current Catalog = defaultCatalog{}
)

// SetCatalog replaces the Catalog; nil restores the built-in one.
func SetCatalog(c Catalog) {
	mu.Lock()
	defer mu.Unlock()
	if c == nil {
		current = defaultCatalog{}
		return
	}
	current = c
}

// T fetches a message for the given code using the current Catalog.
func T(code string) string {
	mu.RLock()
	c := current
	mu.RUnlock()
	return c.Message(code)
}

// Or returns msg when set, otherwise the catalog message for code.
func Or(msg, code string) string {
	if msg != "" {
		return msg
	}
	return T(code)
}
