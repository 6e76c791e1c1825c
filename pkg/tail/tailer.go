package tail

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
)

// DefaultMaxLineBytes bounds a single line when no limit is configured.
const DefaultMaxLineBytes = 1 << 20

const readBufferSize = 64 * 1024

// Config contains configuration for a Tailer.
type Config struct {
	// Pattern is a glob resolved on every call to Tail.
	Pattern string

	// MaxLineBytes bounds a single line. Longer lines are skipped.
	MaxLineBytes int
}

// FileResult describes one file's contribution to a Tail pass.
type FileResult struct {
	Path string

	// Lines is the number of complete lines emitted.
	Lines int

	// Bytes is the number of bytes consumed, including newlines.
	Bytes int64

	// Oversized counts lines skipped for exceeding MaxLineBytes.
	Oversized int

	// Rotated is set when the file was found truncated or replaced and
	// reading restarted from offset 0.
	Rotated bool

	// Err is set when the file could not be read. It is always a *FileError.
	Err error
}

// Result summarises a Tail pass over every matched file.
type Result struct {
	Files   []FileResult
	Removed []string
}

// Lines returns the total number of lines emitted.
func (r Result) Lines() int {
	n := 0
	for _, f := range r.Files {
		n += f.Lines
	}
	return n
}

// Errors returns the file errors of the pass.
func (r Result) Errors() []error {
	var errs []error
	for _, f := range r.Files {
		if f.Err != nil {
			errs = append(errs, f.Err)
		}
	}
	return errs
}

// Tailer reads the bytes appended to a set of files since the previous
// pass. It is not safe for concurrent use; callers serialize passes.
type Tailer struct {
	pattern string
	maxLine int
	store   *Store
	logger  *slog.Logger
}

// New creates a Tailer that records offsets in store.
func New(cfg Config, store *Store, logger *slog.Logger) (*Tailer, error) {
	if _, err := filepath.Match(cfg.Pattern, ""); err != nil {
		return nil, fmt.Errorf("invalid log path pattern %q: %w", cfg.Pattern, err)
	}
	if store == nil {
		store = NewStore()
	}
	if logger == nil {
		logger = slog.Default()
	}
	maxLine := cfg.MaxLineBytes
	if maxLine <= 0 {
		maxLine = DefaultMaxLineBytes
	}

	return &Tailer{
		pattern: cfg.Pattern,
		maxLine: maxLine,
		store:   store,
		logger:  logger,
	}, nil
}

// Store returns the tailer's position store.
func (t *Tailer) Store() *Store {
	return t.store
}

// Tail resolves the pattern and reads every matched file from its stored
// offset to its current end. emit is called once per complete line, in
// file order, without the trailing newline. The slice is only valid for
// the duration of the call.
//
// A trailing line without a newline is left unread; the stored offset
// points at its first byte so it is read once completed.
func (t *Tailer) Tail(emit func(path string, line []byte)) Result {
	matches, err := filepath.Glob(t.pattern)
	if err != nil {
		// Validated in New; kept for completeness.
		t.logger.Error("failed to resolve log path pattern", "pattern", t.pattern, "error", err)
		return Result{}
	}
	sort.Strings(matches)

	keep := make(map[string]struct{}, len(matches))
	for _, m := range matches {
		keep[m] = struct{}{}
	}

	var res Result
	res.Removed = t.store.retain(keep)
	for _, p := range res.Removed {
		t.logger.Debug("file no longer matches pattern, dropped from watch", "file", p)
	}

	for _, path := range matches {
		fr, ok := t.tailFile(path, func(line []byte) { emit(path, line) })
		if ok {
			res.Files = append(res.Files, fr)
		}
	}

	return res
}

// tailFile reads one file. ok is false for non-regular files, which are
// skipped silently.
func (t *Tailer) tailFile(path string, emit func([]byte)) (fr FileResult, ok bool) {
	fr.Path = path

	f, err := os.Open(path)
	if err != nil {
		fr.Err = &FileError{Op: "open", Path: path, Err: err}
		return fr, true
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		fr.Err = &FileError{Op: "stat", Path: path, Err: err}
		return fr, true
	}
	if !info.Mode().IsRegular() {
		t.store.Remove(path)
		return fr, false
	}

	cur := t.store.load(path)
	size := info.Size()

	if cur.identity != nil && !os.SameFile(cur.identity, info) || size < cur.Offset {
		t.logger.Info("log rotation detected, reading from start",
			"file", path,
			"previous_offset", cur.Offset,
			"size", size,
		)
		cur.Offset = 0
		cur.discarding = false
		fr.Rotated = true
	}
	cur.identity = info

	if size == cur.Offset {
		t.store.commit(cur)
		return fr, true
	}

	next, err := t.readLines(f, &cur, size, emit, &fr)
	fr.Bytes = next - cur.Offset
	cur.Offset = next
	t.store.commit(cur)
	if err != nil {
		fr.Err = &FileError{Op: "read", Path: path, Err: err}
	}

	return fr, true
}

// readLines emits the complete lines in [cur.Offset, size) and returns the
// offset of the first unconsumed byte.
func (t *Tailer) readLines(f *os.File, cur *Cursor, size int64, emit func([]byte), fr *FileResult) (int64, error) {
	br := bufio.NewReaderSize(io.NewSectionReader(f, cur.Offset, size-cur.Offset), readBufferSize)

	var (
		line      []byte
		oversized = cur.discarding
		start     = cur.Offset
		lineStart = cur.Offset
		pos       = cur.Offset
	)

	for {
		chunk, err := br.ReadSlice('\n')
		pos += int64(len(chunk))

		if !oversized {
			n := len(line) + len(chunk)
			if err == nil {
				n-- // newline
			}
			if n > t.maxLine {
				oversized = true
				line = line[:0]
			} else {
				line = append(line, chunk...)
			}
		}

		switch {
		case err == nil:
			if oversized {
				fr.Oversized++
				t.logger.Warn("skipped line exceeding max size", "file", fr.Path, "max_line_bytes", t.maxLine)
			} else {
				emit(line[:len(line)-1])
				fr.Lines++
			}
			line = line[:0]
			oversized = false
			lineStart = pos

		case errors.Is(err, bufio.ErrBufferFull):
			continue

		case errors.Is(err, io.EOF):
			if oversized {
				// Consume the partial tail and keep skipping until its
				// newline shows up.
				cur.discarding = true
				return pos, nil
			}
			cur.discarding = false
			return lineStart, nil

		default:
			if lineStart != start {
				cur.discarding = false
			}
			return lineStart, err
		}
	}
}
