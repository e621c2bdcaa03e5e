// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package discover

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/research-assistant/pkg/types"
)

// QueryFile is the on-disk form of a discovery and its candidates. A
// researcher can save a batch and replay it later without searching again.
type QueryFile struct {
	Topic      string        `yaml:"topic"`
	MaxResults int           `yaml:"max_results"`
	Papers     []types.Paper `yaml:"papers"`
	Timestamp  time.Time     `yaml:"timestamp"`
}

// WriteQueryFile saves topic and papers to a YAML file. Selection flags are
// cleared so a replayed batch always starts unselected.
func WriteQueryFile(path, topic string, maxResults int, papers []types.Paper) error {
	qf := QueryFile{
		Topic:      topic,
		MaxResults: maxResults,
		Papers:     unselected(papers),
		Timestamp:  time.Now().UTC(),
	}

	data, err := yaml.Marshal(&qf)
	if err != nil {
		return fmt.Errorf("marshaling query file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadQueryFile loads a previously saved query file from disk.
func ReadQueryFile(path string) (*QueryFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading query file: %w", err)
	}
	var qf QueryFile
	if err := yaml.Unmarshal(data, &qf); err != nil {
		return nil, fmt.Errorf("parsing query file: %w", err)
	}
	return &qf, nil
}

// Replay serves candidates from a saved query file. The topic passed to
// Discover must match the saved topic (case-insensitively); otherwise the
// file holds nothing for it.
type Replay struct {
	file *QueryFile
}

// NewReplay loads path and returns a Replay discoverer.
func NewReplay(path string) (*Replay, error) {
	qf, err := ReadQueryFile(path)
	if err != nil {
		return nil, err
	}
	return &Replay{file: qf}, nil
}

// Discover returns up to maxResults saved papers for topic.
func (r *Replay) Discover(ctx context.Context, topic string, maxResults int) ([]types.Paper, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, ErrEmptyTopic
	}
	if !strings.EqualFold(topic, strings.TrimSpace(r.file.Topic)) {
		return nil, fmt.Errorf("query file holds topic %q, not %q", r.file.Topic, topic)
	}

	papers := unselected(r.file.Papers)
	if maxResults > 0 && len(papers) > maxResults {
		papers = papers[:maxResults]
	}
	return papers, nil
}

func unselected(papers []types.Paper) []types.Paper {
	out := types.ClonePapers(papers)
	for i := range out {
		out[i].Selected = false
	}
	return out
}
