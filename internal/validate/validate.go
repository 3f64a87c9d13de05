// Package validate checks generation inputs before any oracle call and the
// rendered artifact after the fact. Input failures are fatal to the request;
// artifact checks mostly warn.
package validate

import (
	"fmt"
	"strings"

	"reportforge/internal/intelligence"
)

const (
	longContentWarning = 10000
	longHeaderWarning  = 100
	minArtifactBytes   = 1024

	// DefaultMaxArtifactMB is the artifact size warning threshold used when
	// the caller does not configure one.
	DefaultMaxArtifactMB = 50
)

// Result reports a validation outcome with optional warnings.
type Result struct {
	IsValid      bool
	ErrorMessage string
	Warnings     []string
}

func invalid(format string, args ...any) Result {
	return Result{ErrorMessage: fmt.Sprintf(format, args...)}
}

// Input validates the section list shape: non-empty, each section carrying a
// non-empty header. Oversized content and headers are warnings, not errors.
func Input(sections []intelligence.Section) Result {
	if len(sections) == 0 {
		return invalid("no sections provided")
	}

	var warnings []string
	for i, s := range sections {
		if strings.TrimSpace(s.Header) == "" {
			return invalid("section %d has an empty header", i+1)
		}
		if len(s.Content) > longContentWarning {
			warnings = append(warnings, fmt.Sprintf("section %q has very long content (%d chars)", s.Header, len(s.Content)))
		}
		if len(s.Header) > longHeaderWarning {
			warnings = append(warnings, fmt.Sprintf("header %q is very long", s.Header[:50]+"..."))
		}
	}
	return Result{IsValid: true, Warnings: warnings}
}

// Artifact validates the rendered byte buffer. A near-empty buffer indicates
// a rendering defect and is invalid; exceeding maxSizeMB only warns. A
// non-positive maxSizeMB uses DefaultMaxArtifactMB.
func Artifact(data []byte, maxSizeMB int) Result {
	if len(data) < minArtifactBytes {
		return invalid("artifact appears to be empty or corrupted (%d bytes)", len(data))
	}
	if maxSizeMB <= 0 {
		maxSizeMB = DefaultMaxArtifactMB
	}
	var warnings []string
	if len(data) > maxSizeMB*1024*1024 {
		warnings = append(warnings, fmt.Sprintf("artifact is very large (%d bytes)", len(data)))
	}
	return Result{IsValid: true, Warnings: warnings}
}
