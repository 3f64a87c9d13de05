package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reportforge/internal/intelligence"
)

func TestInput_EmptySectionList(t *testing.T) {
	result := Input(nil)
	assert.False(t, result.IsValid)
	assert.Contains(t, result.ErrorMessage, "no sections")
}

func TestInput_EmptyHeaderIsFatal(t *testing.T) {
	result := Input([]intelligence.Section{
		{Header: "Fine", Content: "ok"},
		{Header: "   ", Content: "ok"},
	})
	assert.False(t, result.IsValid)
	assert.Contains(t, result.ErrorMessage, "section 2")
}

func TestInput_ValidWithWarnings(t *testing.T) {
	result := Input([]intelligence.Section{
		{Header: strings.Repeat("H", 120), Content: "short"},
		{Header: "Long body", Content: strings.Repeat("x", 10001)},
	})

	require.True(t, result.IsValid)
	assert.Empty(t, result.ErrorMessage)
	assert.Len(t, result.Warnings, 2)
}

func TestInput_CleanSections(t *testing.T) {
	result := Input([]intelligence.Section{{Header: "H", Content: "c"}})
	assert.True(t, result.IsValid)
	assert.Empty(t, result.Warnings)
}

func TestArtifact_TooSmall(t *testing.T) {
	result := Artifact(make([]byte, 100), 0)
	assert.False(t, result.IsValid)
	assert.Contains(t, result.ErrorMessage, "empty or corrupted")
}

func TestArtifact_Valid(t *testing.T) {
	result := Artifact(make([]byte, 4096), 0)
	assert.True(t, result.IsValid)
	assert.Empty(t, result.Warnings)
}

func TestArtifact_ConfiguredLimitWarns(t *testing.T) {
	data := make([]byte, 2*1024*1024)

	result := Artifact(data, 1)
	require.True(t, result.IsValid)
	assert.Len(t, result.Warnings, 1)

	// The same buffer is fine under a higher limit or the default.
	assert.Empty(t, Artifact(data, 10).Warnings)
	assert.Empty(t, Artifact(data, 0).Warnings)
}
