// Package tail implements resumable tailing of growing log files.
//
// A Store keeps the consumed byte offset of every file matched by a glob
// pattern. On each pass the Tailer reads only the bytes appended since the
// previous pass and splits them into newline-terminated lines. An
// incomplete trailing line is never emitted: the stored offset stays at its
// first byte so that it is read in full once the writer finishes it.
//
// Rotation is detected when a file shrinks below its stored offset or when
// the path now refers to a different file (inode change). In both cases the
// file is read again from offset 0.
//
// Files that cannot be opened are reported in the pass Result and skipped;
// they never abort the pass.
package tail
