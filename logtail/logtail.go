// Package logtail reads the trailing window of a file without loading the
// whole file into memory.
package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
)

// maxLineBytes caps a single reassembled line. Longer lines are dropped like
// any other unparseable record instead of failing the whole read.
const maxLineBytes = 1024 * 1024

// Read returns up to maxLines lines from the end of the file at path, in file
// order. A missing file is not an error: it yields no lines, matching the
// semantics of an access log that has not been written yet. maxLines <= 0
// yields no lines. Lines longer than maxLineBytes are skipped.
func Read(path string, maxLines int) ([]string, error) {
	if maxLines <= 0 {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("logtail: open %s: %w", path, err)
	}
	defer f.Close()

	// Fixed-size ring keeps memory bounded by maxLines regardless of file size.
	ring := make([]string, maxLines)
	seen := 0
	next := 0

	// Access logs can carry very long request lines and user agents, so lines
	// are assembled from reader fragments and capped rather than scanned with
	// a fixed maximum token size.
	br := bufio.NewReaderSize(f, 64*1024)
	var line []byte
	drop := false
	for {
		frag, isPrefix, err := br.ReadLine()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("logtail: scan %s: %w", path, err)
		}
		if !drop {
			line = append(line, frag...)
			if len(line) > maxLineBytes {
				drop = true
				line = line[:0]
			}
		}
		if isPrefix {
			continue
		}
		if drop {
			drop = false
			continue
		}
		ring[next] = string(line)
		line = line[:0]
		next = (next + 1) % maxLines
		seen++
	}

	if seen < maxLines {
		out := make([]string, seen)
		copy(out, ring[:seen])
		return out, nil
	}
	out := make([]string, maxLines)
	for i := range out {
		out[i] = ring[(next+i)%maxLines]
	}
	return out, nil
}
