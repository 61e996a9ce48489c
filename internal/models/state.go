package models

import (
	"encoding/json"
	"time"
)

// State is the whole persisted journal.
type State struct {
	ProgramMode   ProgramMode    `json:"programMode"`
	CustomProgram *Program       `json:"customProgram"`
	Sessions      []Session      `json:"sessions"`
	Planned       []PlannedEntry `json:"planned"`
	ActiveSession *ActiveSession `json:"activeSession"`
	LastSyncAt    *time.Time     `json:"lastSyncAt"`
}

// DefaultState returns the state of a journal that has never been written.
func DefaultState() State {
	return State{
		ProgramMode: ModeThreeDay,
		Sessions:    []Session{},
		Planned:     []PlannedEntry{},
	}
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	data, err := json.Marshal(s)
	if err != nil {
		// State holds only JSON-safe values.
		panic("models: marshal state: " + err.Error())
	}
	var out State
	if err := json.Unmarshal(data, &out); err != nil {
		panic("models: unmarshal state: " + err.Error())
	}
	if out.Sessions == nil {
		out.Sessions = []Session{}
	}
	if out.Planned == nil {
		out.Planned = []PlannedEntry{}
	}
	return out
}

// UnsyncedCount returns the number of saved sessions not yet marked synced.
func (s State) UnsyncedCount() int {
	n := 0
	for _, sess := range s.Sessions {
		if !sess.Synced {
			n++
		}
	}
	return n
}
