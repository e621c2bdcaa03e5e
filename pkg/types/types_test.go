// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"
)

func TestReportStatusLabel(t *testing.T) {
	tests := []struct {
		status ReportStatus
		label  string
		valid  bool
	}{
		{StatusCompleted, "Completed", true},
		{StatusInProgress, "In Progress", true},
		{StatusFailed, "Failed", true},
		{"archived", "Archived", false},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.label, tt.status.Label())
			assert.Equal(t, tt.valid, tt.status.Valid())
		})
	}
}

func TestDateEncoding(t *testing.T) {
	d := NewDate(2023, time.November, 15)
	assert.Equal(t, "2023-11-15", d.String())

	js, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2023-11-15"`, string(js))

	var fromJSON Date
	require.NoError(t, json.Unmarshal(js, &fromJSON))
	assert.True(t, d.Equal(fromJSON.Time))

	ym, err := yaml.Marshal(Report{ID: "1", CreatedDate: d})
	require.NoError(t, err)
	assert.Contains(t, string(ym), "2023-11-15")

	var r Report
	require.NoError(t, yaml.Unmarshal([]byte("created_date: 2023-10-28\n"), &r))
	assert.Equal(t, "2023-10-28", r.CreatedDate.String())
}

func TestDateErrors(t *testing.T) {
	_, err := ParseDate("15/11/2023")
	assert.Error(t, err)

	var d Date
	assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`42`), &d))

	require.NoError(t, d.UnmarshalText(nil))
	assert.True(t, d.IsZero())
	assert.Equal(t, "", d.String())
}

func TestClonePapers(t *testing.T) {
	assert.Nil(t, ClonePapers(nil))

	orig := []Paper{{ID: "p1", Authors: []string{"A"}}}
	clone := ClonePapers(orig)
	clone[0].Authors[0] = "B"
	clone[0].Selected = true

	assert.Equal(t, "A", orig[0].Authors[0])
	assert.False(t, orig[0].Selected)
}

func TestClampMaxResults(t *testing.T) {
	assert.Equal(t, DefaultMaxResults, ClampMaxResults(0))
	assert.Equal(t, DefaultMaxResults, ClampMaxResults(-5))
	assert.Equal(t, 1, ClampMaxResults(1))
	assert.Equal(t, MaxMaxResults, ClampMaxResults(MaxMaxResults+1))
}
