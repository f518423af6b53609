package sink

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"chanlog/internal/diag"
)

// ClearPolicy controls when a log file is truncated.
type ClearPolicy uint8

const (
	// OnSessionStart clears the file on the first write to its path in this process.
	OnSessionStart ClearPolicy = iota
	// Now truncates and rewrites the file on every write.
	Now
	// Never always appends.
	Never
)

// String returns the string representation of ClearPolicy.
func (p ClearPolicy) String() string {
	switch p {
	case OnSessionStart:
		return "session"
	case Now:
		return "now"
	case Never:
		return "never"
	default:
		return "unknown"
	}
}

// ParseClearPolicy converts a string to ClearPolicy.
func ParseClearPolicy(s string) (ClearPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "session", "onsessionstart", "on_session_start":
		return OnSessionStart, nil
	case "now":
		return Now, nil
	case "never":
		return Never, nil
	default:
		return OnSessionStart, fmt.Errorf("invalid clear policy: %q (expected: session|now|never)", s)
	}
}

// DefaultFileName is used when Append gets an empty path.
const DefaultFileName = "LogToFile.log"

// ErrIsDirectory is returned when a log path names a directory.
var ErrIsDirectory = errors.New("log path is a directory")

// FileSink appends text to log files, remembering which paths were already
// written during this process.
type FileSink struct {
	mu      sync.Mutex
	dir     string
	written map[string]struct{}
}

// NewFileSink returns a FileSink resolving bare names against dir. An empty
// dir selects DefaultLogDir.
func NewFileSink(dir string) *FileSink {
	if dir == "" {
		dir = DefaultLogDir()
	}
	return &FileSink{dir: dir, written: make(map[string]struct{})}
}

// DefaultLogDir returns the per-user log directory.
func DefaultLogDir() string {
	if base, err := os.UserCacheDir(); err == nil {
		return filepath.Join(base, "chanlog", "logs")
	}
	return filepath.Join(os.TempDir(), "chanlog", "logs")
}

// Dir returns the directory bare names resolve against.
func (s *FileSink) Dir() string { return s.dir }

// Resolve maps path to the file that Append writes: empty means
// DefaultFileName, a bare name lives in Dir, and a missing extension becomes
// ".log".
func (s *FileSink) Resolve(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		path = DefaultFileName
	}
	if !filepath.IsAbs(path) && filepath.Base(path) == path {
		path = filepath.Join(s.dir, path)
	}
	if filepath.Ext(path) == "" {
		path += ".log"
	}
	return filepath.Clean(path)
}

// BackupPath returns "<name>-prev<ext>" next to path.
func BackupPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "-prev" + ext
}

// Append writes text to path according to policy. The first write to a path
// with any policy other than Never backs the old file up and starts fresh.
func (s *FileSink) Append(text, path string, policy ClearPolicy) error {
	full := s.Resolve(path)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, seen := s.written[full]; !seen && policy != Never {
		if err := clearFile(full, true); err != nil {
			return err
		}
		policy = Now
	}
	s.written[full] = struct{}{}

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	if policy == Now {
		if err := os.WriteFile(full, []byte(text), 0o644); err != nil {
			return fmt.Errorf("failed to write log file: %w", err)
		}
		return nil
	}
	return appendLine(full, text)
}

// Clear removes the log file at path, optionally keeping a "-prev" backup.
func (s *FileSink) Clear(path string, backup bool) error {
	full := s.Resolve(path)
	s.mu.Lock()
	defer s.mu.Unlock()
	return clearFile(full, backup)
}

func clearFile(full string, backup bool) error {
	info, err := os.Stat(full)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to stat log file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s: %w", full, ErrIsDirectory)
	}
	if backup {
		prev := BackupPath(full)
		if err := os.Remove(prev); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to remove old backup: %w", err)
		}
		if err := os.Rename(full, prev); err != nil {
			return fmt.Errorf("failed to back up log file: %w", err)
		}
		return nil
	}
	if err := os.Remove(full); err != nil {
		return fmt.Errorf("failed to clear log file: %w", err)
	}
	return nil
}

// appendLine appends text on a new line; an empty or missing file gets no
// leading newline.
func appendLine(full, text string) error {
	f, err := os.OpenFile(full, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	info, err := f.Stat()
	if err == nil && info.Size() > 0 {
		text = "\n" + text
	}
	if _, err := f.WriteString(text); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to append to log file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close log file: %w", err)
	}
	return nil
}

// For returns a Sink writing the plain text of every visible message to path.
// Write errors are passed to onErr when it is non-nil.
func (s *FileSink) For(path string, policy ClearPolicy, onErr func(error)) Sink {
	return &fileTarget{fs: s, path: path, policy: policy, onErr: onErr}
}

type fileTarget struct {
	fs     *FileSink
	path   string
	policy ClearPolicy
	onErr  func(error)
}

func (t *fileTarget) Emit(m diag.Message) {
	policy := t.policy
	if policy == Now {
		// per-message truncation would keep only the last message
		policy = OnSessionStart
	}
	if err := t.fs.Append(m.Plain, t.path, policy); err != nil && t.onErr != nil {
		t.onErr(err)
	}
}

func (t *fileTarget) EmitSuppressed(diag.Message) {}
