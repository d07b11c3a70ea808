package executor

import (
	"bytes"

	"github.com/Cyclone1070/shellfs/internal/content"
)

const (
	binarySampleSize  = 8000
	binaryPlaceholder = "[Binary Content]"
)

// collector captures command output with a size cap and binary detection.
// Output is consumed line by line, so once the cap cuts a line short the
// unterminated tail is withheld: String returns whole lines only and
// withheld reports how many captured bytes were left out.
type collector struct {
	buffer    bytes.Buffer
	maxBytes  int
	truncated bool
	isBinary  bool

	bytesChecked int
}

func newCollector(maxBytes int) *collector {
	return &collector{maxBytes: maxBytes}
}

func (c *collector) Write(p []byte) (int, error) {
	if c.isBinary {
		return len(p), nil
	}

	if c.bytesChecked < binarySampleSize {
		sample := p
		if remaining := binarySampleSize - c.bytesChecked; len(sample) > remaining {
			sample = sample[:remaining]
		}
		if content.IsBinaryContent(sample) {
			c.isBinary = true
			c.truncated = true
			return len(p), nil
		}
		c.bytesChecked += len(sample)
	}

	space := c.maxBytes - c.buffer.Len()
	if space <= 0 {
		c.truncated = true
		return len(p), nil
	}

	chunk := p
	if len(chunk) > space {
		chunk = chunk[:space]
		c.truncated = true
	}
	if _, err := c.buffer.Write(chunk); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (c *collector) String() string {
	if c.isBinary {
		return binaryPlaceholder
	}
	return string(c.buffer.Bytes()[:c.wholeLines()])
}

// wholeLines is the length of the captured prefix made of complete lines.
// Untruncated output is complete even without a final newline.
func (c *collector) wholeLines() int {
	data := c.buffer.Bytes()
	if !c.truncated {
		return len(data)
	}
	return bytes.LastIndexByte(data, '\n') + 1
}

func (c *collector) withheld() int {
	if c.isBinary {
		return 0
	}
	return c.buffer.Len() - c.wholeLines()
}

// outputs pairs the stdout and stderr collectors of one command.
type outputs struct {
	stdout *collector
	stderr *collector
}

func newOutputs(maxBytes int64) *outputs {
	return &outputs{stdout: newCollector(int(maxBytes)), stderr: newCollector(int(maxBytes))}
}

func (o *outputs) result(exitCode int) *Result {
	return &Result{
		Stdout:          o.stdout.String(),
		Stderr:          o.stderr.String(),
		ExitCode:        exitCode,
		Truncated:       o.stdout.truncated || o.stderr.truncated,
		StdoutTruncated: o.stdout.truncated,
		StderrTruncated: o.stderr.truncated,
		Withheld:        o.stdout.withheld() + o.stderr.withheld(),
	}
}
