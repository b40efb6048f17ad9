package server

import (
	"sync/atomic"

	"github.com/Digital-Shane/like-that/internal/intent"
	csmap "github.com/mhmtszr/concurrent-swiss-map"
)

// unclassified keys outcomes of queries that never produced an intent.
const unclassified = "unclassified"

type counter struct {
	ok     atomic.Int64
	failed atomic.Int64
}

// Outcome is the JSON form of one intent's counters.
type Outcome struct {
	OK     int64 `json:"ok"`
	Failed int64 `json:"failed"`
}

// Stats counts query outcomes per intent for the life of the process. It
// implements dispatch.Recorder.
type Stats struct {
	counters *csmap.CsMap[string, *counter]
}

// NewStats creates an empty Stats.
func NewStats() *Stats {
	return &Stats{counters: csmap.Create[string, *counter]()}
}

// Record counts one outcome.
func (s *Stats) Record(tag intent.Tag, err error) {
	key := string(tag)
	if key == "" {
		key = unclassified
	}

	c, ok := s.counters.Load(key)
	if !ok {
		s.counters.SetIfAbsent(key, &counter{})
		c, _ = s.counters.Load(key)
	}
	if err != nil {
		c.failed.Add(1)
		return
	}
	c.ok.Add(1)
}

// Snapshot copies the current counters.
func (s *Stats) Snapshot() map[string]Outcome {
	out := make(map[string]Outcome)
	s.counters.Range(func(key string, c *counter) bool {
		out[key] = Outcome{OK: c.ok.Load(), Failed: c.failed.Load()}
		return false
	})
	return out
}
