// Package monitoring holds the process-wide diagnostic logger used by the
// simulation harness, storage and CLI. The flight core never logs.
package monitoring

import "log"

// Logf writes a diagnostic line. It is log.Printf until SetLogger replaces it.
var Logf func(format string, args ...any) = log.Printf

// SetLogger redirects Logf. A nil f discards all output.
func SetLogger(f func(format string, args ...any)) {
	if f == nil {
		f = func(string, ...any) {}
	}
	Logf = f
}
