package errors

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/pkg/errors"
)

// Frames of these functions are dropped from the top of a trace, frames
// of the goroutine runners from its bottom.
var (
	innerFrames = []string{
		"github.com/iov-one/quorum/errors.Wrap",
		"github.com/iov-one/quorum/errors.Recover",
		"runtime.",
	}
	outerFrames = []string{
		"runtime.",
		"testing.tRunner",
	}
)

// Format prints the message for %s, the message followed by the frame
// that created the error for %v, and the full trace for %+v.
func (e *wrappedError) Format(s fmt.State, verb rune) {
	if verb != 'v' {
		fmt.Fprint(s, e.Error())
		return
	}
	stack := trimStack(stackTrace(e))
	if s.Flag('+') {
		fmt.Fprintf(s, "%+v\n%s", stack, e.Error())
		return
	}
	fmt.Fprint(s, e.Error())
	if len(stack) != 0 {
		file, line := frameLocation(stack[0])
		if i := strings.Index(file, "github.com/"); i >= 0 {
			file = file[i+len("github.com/"):]
		}
		fmt.Fprintf(s, " [%s:%d]", file, line)
	}
}

// stackTrace returns the trace carried by err or the closest error it
// wraps.
func stackTrace(err error) errors.StackTrace {
	type tracer interface {
		StackTrace() errors.StackTrace
	}
	for err != nil {
		if t, ok := err.(tracer); ok {
			return t.StackTrace()
		}
		c, ok := err.(causer)
		if !ok {
			break
		}
		err = c.Cause()
	}
	return nil
}

func trimStack(st errors.StackTrace) errors.StackTrace {
	for len(st) != 0 && frameIn(st[0], innerFrames) {
		st = st[1:]
	}
	for len(st) > 1 && frameIn(st[len(st)-1], outerFrames) {
		st = st[:len(st)-1]
	}
	return st
}

func frameIn(f errors.Frame, prefixes []string) bool {
	name := "unknown"
	if fn := runtime.FuncForPC(uintptr(f) - 1); fn != nil {
		name = fn.Name()
	}
	for _, p := range prefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}

func frameLocation(f errors.Frame) (string, int) {
	pc := uintptr(f) - 1
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return "unknown", 0
	}
	return fn.FileLine(pc)
}
