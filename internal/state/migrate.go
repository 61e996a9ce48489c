// Package state loads, migrates and persists the journal document.
package state

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/claude/ironpulse/internal/models"
	"github.com/claude/ironpulse/internal/normalize"
)

// SchemaVersion tags every document written by Encode.
const SchemaVersion = 2

// schemaReader maps a decoded document of one schema version to canonical state.
type schemaReader func(doc normalize.Raw, now time.Time) models.State

// readers is keyed by the schemaVersion tag. Untagged documents are version 1.
var readers = map[int]schemaReader{
	1: readUntagged,
	2: readTagged,
}

// document is the persisted form.
type document struct {
	SchemaVersion int `json:"schemaVersion"`
	models.State
}

// Encode serializes s in the current tagged schema.
func Encode(s models.State) ([]byte, error) {
	data, err := json.Marshal(document{SchemaVersion: SchemaVersion, State: s})
	if err != nil {
		return nil, fmt.Errorf("encoding state: %w", err)
	}
	return data, nil
}

// Decode parses a stored blob. Anything that is not a JSON object is corrupt.
func Decode(data []byte) (normalize.Raw, error) {
	var doc normalize.Raw
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding state: %w", err)
	}
	if doc == nil {
		return nil, fmt.Errorf("decoding state: not an object")
	}
	return doc, nil
}

// Migrate converts a decoded document of any known schema into canonical state.
// Unknown future versions are read with the heuristic reader.
func Migrate(doc normalize.Raw, now time.Time) models.State {
	version := 1
	if v, ok := normalize.ParseNumber(doc["schemaVersion"]); ok && v > 0 {
		version = int(v)
	}
	read, ok := readers[version]
	if !ok {
		read = readUntagged
	}
	s := read(doc, now)
	reconcileMode(&s)
	return s
}

// readUntagged accepts every shape written before documents carried a version,
// including the legacy top-level "program" field.
func readUntagged(doc normalize.Raw, now time.Time) models.State {
	s := readCommon(doc, now)
	if s.CustomProgram == nil {
		if legacy, ok := doc["program"].(map[string]any); ok {
			p := normalize.Program(legacy, string(models.ModeCustom))
			s.CustomProgram = &p
			s.ProgramMode = models.ModeCustom
		}
	}
	return s
}

func readTagged(doc normalize.Raw, now time.Time) models.State {
	return readCommon(doc, now)
}

func readCommon(doc normalize.Raw, now time.Time) models.State {
	s := models.DefaultState()

	if mode, ok := doc["programMode"].(string); ok && mode != "" {
		s.ProgramMode = models.ProgramMode(mode)
	}
	if custom, ok := doc["customProgram"].(map[string]any); ok {
		p := normalize.Program(custom, string(models.ModeCustom))
		s.CustomProgram = &p
	}
	if sessions, ok := doc["sessions"].([]any); ok {
		for _, item := range sessions {
			if r, ok := item.(map[string]any); ok {
				if sess, ok := normalize.Session(r, now); ok {
					s.Sessions = append(s.Sessions, sess)
				}
			}
		}
	}
	if planned, ok := doc["planned"].([]any); ok {
		for _, item := range planned {
			if r, ok := item.(map[string]any); ok {
				if p, ok := normalize.Planned(r); ok {
					s.Planned = append(s.Planned, p)
				}
			}
		}
	}
	if active, ok := doc["activeSession"].(map[string]any); ok {
		if a, ok := normalize.ActiveSession(active, now); ok {
			s.ActiveSession = &a
		}
	}
	if raw, ok := doc["lastSyncAt"].(string); ok {
		if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
			t = t.UTC()
			s.LastSyncAt = &t
		}
	}
	return s
}

// reconcileMode resets a mode that names a missing custom program or no known program.
func reconcileMode(s *models.State) {
	if s.ProgramMode == models.ModeCustom && s.CustomProgram == nil {
		s.ProgramMode = models.ModeThreeDay
	}
	if !s.ProgramMode.Valid() {
		s.ProgramMode = models.ModeThreeDay
	}
}
