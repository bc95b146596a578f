package converter

import (
	"fmt"
	"runtime"
	"strings"
)

// ErrorDetails are the structured properties of a conversion failure.
type ErrorDetails struct {
	Which     string // error category: runtime, implementation, validation
	What      string // descriptive message
	Condition string // the check that failed, if any
	File      string // source file
	Line      int    // source line
}

// RuntimeError is returned for unexpected conditions met while
// converting. Its message carries the full detail record.
type RuntimeError struct {
	Details ErrorDetails
}

// Error renders the detail record into a human readable message.
func (e *RuntimeError) Error() string {
	d := &e.Details
	var msg strings.Builder
	which := d.Which
	if which == "" {
		which = "unknown"
	}
	fmt.Fprintf(&msg, "voltrace: %s error: ", which)
	if d.Which == "implementation" {
		msg.WriteString("feature is not yet implemented: ")
	}
	msg.WriteString(d.What)

	msg.WriteByte('\n')
	if d.File == "" {
		msg.WriteString("unknown source")
	} else {
		msg.WriteString(d.File)
		if d.Line != 0 {
			fmt.Fprintf(&msg, ":%d", d.Line)
		}
	}
	if d.Condition != "" {
		fmt.Fprintf(&msg, ": '%s' failed", d.Condition)
	} else {
		msg.WriteString(": failure")
	}
	return msg.String()
}

// newError builds a RuntimeError recording the caller's location.
func newError(which, what, condition string) *RuntimeError {
	e := &RuntimeError{Details: ErrorDetails{
		Which:     which,
		What:      what,
		Condition: condition,
	}}
	if _, file, line, ok := runtime.Caller(1); ok {
		e.Details.File = trimFile(file)
		e.Details.Line = line
	}
	return e
}

// trimFile keeps the package-relative tail of a source path.
func trimFile(file string) string {
	if i := strings.LastIndex(file, "/"); i >= 0 {
		if j := strings.LastIndex(file[:i], "/"); j >= 0 {
			return file[j+1:]
		}
		return file[i+1:]
	}
	return file
}
