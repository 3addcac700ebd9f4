package util

import "sync"

// ErrorListener receives diagnostics as they are recorded. Implementations
// must return normally; the parser keeps going after every report.
type ErrorListener interface {
	OnError(err *ParseError)
}

// ErrorListenerFunc adapts a function to ErrorListener.
type ErrorListenerFunc func(err *ParseError)

// OnError calls f(err).
func (f ErrorListenerFunc) OnError(err *ParseError) {
	f(err)
}

// NoopErrorListener drops every diagnostic.
var NoopErrorListener ErrorListener = ErrorListenerFunc(func(*ParseError) {})

// GatheringErrorListener collects every diagnostic it is given.
type GatheringErrorListener struct {
	mu     sync.Mutex
	errors []*ParseError
}

// NewGatheringErrorListener creates an empty GatheringErrorListener
func NewGatheringErrorListener() *GatheringErrorListener {
	return &GatheringErrorListener{}
}

// OnError records err.
func (g *GatheringErrorListener) OnError(err *ParseError) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.errors = append(g.errors, err)
}

// Errors returns the recorded diagnostics in report order.
func (g *GatheringErrorListener) Errors() []*ParseError {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]*ParseError, len(g.errors))
	copy(out, g.errors)
	return out
}

// ErrorsOfKind returns the recorded diagnostics of the given kind.
func (g *GatheringErrorListener) ErrorsOfKind(kind ErrorKind) []*ParseError {
	var out []*ParseError
	for _, err := range g.Errors() {
		if err.Kind == kind {
			out = append(out, err)
		}
	}
	return out
}

// HasErrors reports whether any diagnostic at error level was recorded.
func (g *GatheringErrorListener) HasErrors() bool {
	for _, err := range g.Errors() {
		if err.Level == ParseErrorLevelError {
			return true
		}
	}
	return false
}
