package diag

import (
	"fmt"
	"runtime"
	"strings"
)

const maxStackDepth = 64

// CaptureStack returns the caller's goroutine stack as text, one
// "function\n\tfile:line" pair per frame. skip=0 starts at the caller of
// CaptureStack. Two calls from the same site through the same call chain
// produce the same text.
func CaptureStack(skip int) string {
	pcs := make([]uintptr, maxStackDepth)
	n := runtime.Callers(skip+2, pcs)
	if n == 0 {
		return ""
	}
	frames := runtime.CallersFrames(pcs[:n])
	var sb strings.Builder
	for {
		fr, more := frames.Next()
		fmt.Fprintf(&sb, "%s\n\t%s:%d\n", fr.Function, fr.File, fr.Line)
		if !more {
			break
		}
	}
	return sb.String()
}

// CleanStack drops frames whose function or file contains any of hidden.
func CleanStack(stack string, hidden []string) string {
	if stack == "" || len(hidden) == 0 {
		return stack
	}
	lines := strings.Split(strings.TrimSuffix(stack, "\n"), "\n")
	var sb strings.Builder
	for i := 0; i < len(lines); i++ {
		fn := lines[i]
		loc := ""
		if i+1 < len(lines) && strings.HasPrefix(lines[i+1], "\t") {
			loc = lines[i+1]
			i++
		}
		if containsAny(fn, hidden) || containsAny(loc, hidden) {
			continue
		}
		sb.WriteString(fn)
		sb.WriteByte('\n')
		if loc != "" {
			sb.WriteString(loc)
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func containsAny(s string, subs []string) bool {
	if s == "" {
		return false
	}
	for _, sub := range subs {
		if sub != "" && strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
