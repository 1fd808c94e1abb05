package build

import (
	"fmt"
	"strings"

	"stylescope/scoper"
)

// Phase of a single build. Phases only move forward.
type Phase int

const (
	PhaseInit Phase = iota
	PhasePreludesLoaded
	PhaseScopesDiscovered
	PhaseCompiled
	PhaseOutputWritten
	PhaseAborted
)

var phaseNames = [...]string{"init", "preludes-loaded", "scopes-discovered", "compiled", "output-written", "aborted"}

func (p Phase) String() string {
	if p >= 0 && int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// CompiledScope is a single scope ready to be written.
type CompiledScope struct {
	Name  string
	Path  string
	File  string
	Hash  scoper.Hash
	CSS   string
	Table *scoper.IdentTable
}

// State accumulates everything produced during one build. It is owned by
// Builder and discarded when build is aborted.
type State struct {
	modules *ModuleLoader
	sources []Source
	// hash -> name of the scope which produced it first
	hashes   map[scoper.Hash]string
	compiled []CompiledScope
	prelude  strings.Builder
}

func newState(modules *ModuleLoader) *State {
	return &State{
		modules: modules,
		hashes:  make(map[scoper.Hash]string),
	}
}

// recordHash registers scope hash and returns name of the scope which
// produced the same hash earlier, if any.
func (s *State) recordHash(h scoper.Hash, scope string) (string, bool) {
	if other, exists := s.hashes[h]; exists {
		return other, true
	}
	s.hashes[h] = scope
	return "", false
}
