// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reports

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/research-assistant/pkg/types"
)

func TestFormatTable(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	FormatTable(fixtures(t), &buf)

	out := buf.String()
	assert.Contains(t, out, "Quantum Computing Research")
	assert.Contains(t, out, "In Progress")
	assert.Contains(t, out, "2023-11-05")
	assert.Contains(t, out, "4 reports")
}

func TestFormatTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	FormatTable(nil, &buf)
	assert.Equal(t, "No reports found.\n", buf.String())
}

func TestFormatJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatJSON(fixtures(t)[:1], &buf))

	var got []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "2023-11-15", got[0]["created_date"])
	assert.Equal(t, "completed", got[0]["status"])

	var back []types.Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, fixtures(t)[:1], back)
}
