// Package convert turns text edge lists into binary edge record files.
package convert

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alfredjeanlab/edgebin/internal/edge"
)

// DefaultExtension is the extension given to converted files.
const DefaultExtension = ".bin"

var (
	// ErrEmptyPath is returned when no input path was given.
	ErrEmptyPath = errors.New("input path is empty")
	// ErrSameFile is returned when the derived output path equals the input.
	ErrSameFile = errors.New("input already has the output extension")
)

// Options controls how a Converter encodes its output.
type Options struct {
	Extension  string           // output extension, default ".bin"
	ByteOrder  binary.ByteOrder // record byte order, default host order
	Undirected bool             // order endpoints src <= dst and drop duplicates
}

// Stats summarizes one pass over an edge list.
type Stats struct {
	Records    int `json:"records"`
	Comments   int `json:"comments"`
	Duplicates int `json:"duplicates,omitempty"`
}

// Result is the outcome of converting one file.
type Result struct {
	Input  string `json:"input"`
	Output string `json:"output"`
	Bytes  int64  `json:"bytes"`
	Stats
}

// Converter encodes text edge lists as fixed-size binary records.
type Converter struct {
	opts   Options
	logger *slog.Logger
}

// NewConverter returns a Converter. Zero-valued options take their defaults.
func NewConverter(opts Options, logger *slog.Logger) *Converter {
	if opts.Extension == "" {
		opts.Extension = DefaultExtension
	}
	if !strings.HasPrefix(opts.Extension, ".") {
		opts.Extension = "." + opts.Extension
	}
	if opts.ByteOrder == nil {
		opts.ByteOrder = binary.NativeEndian
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Converter{opts: opts, logger: logger}
}

// Options returns the effective options.
func (c *Converter) Options() Options { return c.opts }

// OutputPath derives the output path for input.
func (c *Converter) OutputPath(input string) (string, error) {
	return OutputPath(input, c.opts.Extension)
}

// OutputPath replaces the extension of input with ext. Only the last
// extension is replaced, so "a.b.txt" becomes "a.b.bin"; a name without an
// extension has ext appended.
func OutputPath(input, ext string) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", ErrEmptyPath
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	cur := filepath.Ext(input)
	if strings.EqualFold(cur, ext) {
		return "", fmt.Errorf("%w: %s", ErrSameFile, input)
	}
	return strings.TrimSuffix(input, cur) + ext, nil
}

// Convert reads the edge list at input and writes its binary form next to
// it. The output file is truncated if it exists and removed again if the
// conversion fails.
func (c *Converter) Convert(ctx context.Context, input string) (*Result, error) {
	output, err := c.OutputPath(input)
	if err != nil {
		return nil, err
	}

	in, err := os.Open(input)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer in.Close()

	out, err := os.OpenFile(output, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("create output: %w", err)
	}

	stats, err := c.ConvertReader(ctx, in, out)
	if err != nil {
		out.Close()
		c.discard(output)
		return nil, err
	}
	if err := out.Close(); err != nil {
		c.discard(output)
		return nil, fmt.Errorf("close output: %w", err)
	}

	fi, err := os.Stat(output)
	if err != nil {
		return nil, fmt.Errorf("stat output: %w", err)
	}

	c.logger.Debug("conversion finished",
		"input", input,
		"output", output,
		"records", stats.Records,
		"comments", stats.Comments,
		"bytes", fi.Size(),
	)
	return &Result{Input: input, Output: output, Bytes: fi.Size(), Stats: stats}, nil
}

// ConvertReader encodes every edge read from r onto w, in input order.
// It stops at the first malformed line.
func (c *Converter) ConvertReader(ctx context.Context, r io.Reader, w io.Writer) (Stats, error) {
	var (
		stats Stats
		seen  map[edge.Edge]struct{}
	)
	if c.opts.Undirected {
		seen = make(map[edge.Edge]struct{})
	}

	er := edge.NewReader(r)
	ew := edge.NewWriter(w, c.opts.ByteOrder)
	for {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		e, err := er.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			stats.Comments = er.Comments()
			return stats, err
		}
		if seen != nil {
			e = e.Undirected()
			if _, dup := seen[e]; dup {
				stats.Duplicates++
				continue
			}
			seen[e] = struct{}{}
		}
		if err := ew.Write(e); err != nil {
			return stats, err
		}
	}
	if err := ew.Flush(); err != nil {
		return stats, fmt.Errorf("flush output: %w", err)
	}

	stats.Records = ew.Count()
	stats.Comments = er.Comments()
	return stats, nil
}

func (c *Converter) discard(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		c.logger.Warn("failed to remove partial output", "path", path, "err", err)
	}
}
