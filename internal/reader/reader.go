// Package reader holds the per-surface state machine that keeps the
// navigation index, the collapsible content pane, and the viewport scroll
// position in sync.
//
// Selecting a navigation entry opens the right container (for a nested
// section, its enclosing major section), then scrolls to the target once the
// rendering layer signals that the expansion transition finished. A fixed
// settle timeout backstops a rendering layer that never signals.
package reader

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dgallion1/regreader/internal/section"
)

// State is the expansion state of one section container.
type State string

const (
	StateCollapsed State = "collapsed"
	StateExpanding State = "expanding"
	StateExpanded  State = "expanded"
)

// ErrUnknownSection is returned for navigation targets that are not in the
// surface's navigation index.
var ErrUnknownSection = errors.New("unknown section id")

// Scroller is the rendering collaborator that moves the viewport. A failed
// scroll (target not mounted) is logged and otherwise ignored.
type Scroller interface {
	ScrollTo(id string) error
}

type pendingScroll struct {
	target    string
	container string
	gen       uint64
}

// Surface is the expansion/scroll state machine for one rendered document.
// It owns no document content, only navigation entries and per-id state.
type Surface struct {
	mu       sync.Mutex
	entries  []section.NavEntry
	states   map[string]State
	active   string
	gen      uint64
	pending  *pendingScroll
	timer    *time.Timer
	scroller Scroller
	settle   time.Duration
	log      *slog.Logger
}

// NewSurface builds a surface over an ordered navigation index. settle is
// the fallback delay after which a pending scroll fires even without a
// transition signal; zero disables the fallback.
func NewSurface(entries []section.NavEntry, scroller Scroller, settle time.Duration, log *slog.Logger) *Surface {
	if log == nil {
		log = slog.Default()
	}
	return &Surface{
		entries:  append([]section.NavEntry(nil), entries...),
		states:   make(map[string]State),
		scroller: scroller,
		settle:   settle,
		log:      log,
	}
}

// NavigateTo handles selection of a navigation entry. The containing section
// is opened if needed and the viewport scroll is deferred until the
// expansion transition completes. A second call supersedes any scroll still
// pending from an earlier one.
func (s *Surface) NavigateTo(id string) error {
	s.mu.Lock()

	entry, ok := s.find(id)
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownSection, id)
	}

	container := id
	if entry.Level == 3 {
		if anc := section.AncestorOf(s.entries, id); anc != "" {
			container = anc
		}
		// An orphaned subsection is its own container.
	}

	s.gen++
	s.cancelPendingLocked()
	s.active = id

	if s.states[container] == StateExpanded {
		s.mu.Unlock()
		s.scroll(id)
		return nil
	}

	s.states[container] = StateExpanding
	s.pending = &pendingScroll{target: id, container: container, gen: s.gen}
	if s.settle > 0 {
		gen := s.gen
		s.timer = time.AfterFunc(s.settle, func() { s.settleExpired(gen) })
	}
	s.mu.Unlock()
	return nil
}

// TransitionDone is the rendering layer's signal that a container finished
// its expansion transition. It releases the pending scroll that was waiting
// on that container, if it is still the current one.
func (s *Surface) TransitionDone(id string) {
	s.mu.Lock()
	if s.states[id] == StateExpanding {
		s.states[id] = StateExpanded
	}
	var target string
	if s.pending != nil && s.pending.container == id && s.pending.gen == s.gen {
		target = s.pending.target
		s.cancelPendingLocked()
	}
	s.mu.Unlock()

	if target != "" {
		s.scroll(target)
	}
}

// settleExpired fires the pending scroll after the settle timeout. The
// generation check discards timers superseded by a later navigation.
func (s *Surface) settleExpired(gen uint64) {
	s.mu.Lock()
	if s.pending == nil || s.pending.gen != gen || s.gen != gen {
		s.mu.Unlock()
		return
	}
	p := s.pending
	s.pending = nil
	s.states[p.container] = StateExpanded
	s.log.Warn("expansion transition signal timed out, scrolling anyway",
		"container", p.container, "target", p.target, "settle", s.settle)
	s.mu.Unlock()

	s.scroll(p.target)
}

// ExpandAll opens every known section. A scroll pending on a container that
// just opened fires immediately.
func (s *Surface) ExpandAll() {
	s.mu.Lock()
	for _, e := range s.entries {
		s.states[e.ID] = StateExpanded
	}
	var target string
	if s.pending != nil {
		target = s.pending.target
		s.cancelPendingLocked()
	}
	s.mu.Unlock()

	if target != "" {
		s.scroll(target)
	}
}

// CollapseAll closes every section and drops any pending scroll.
func (s *Surface) CollapseAll() {
	s.mu.Lock()
	s.states = make(map[string]State)
	s.cancelPendingLocked()
	s.mu.Unlock()
}

// Reset replaces the navigation index when the owning document changes.
// All expansion state and the active id refer to the old document and are
// discarded.
func (s *Surface) Reset(entries []section.NavEntry) {
	s.mu.Lock()
	s.entries = append([]section.NavEntry(nil), entries...)
	s.states = make(map[string]State)
	s.active = ""
	s.gen++
	s.cancelPendingLocked()
	s.mu.Unlock()
}

// Active returns the most recently navigated-to section id.
func (s *Surface) Active() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// StateOf returns a section's expansion state.
func (s *Surface) StateOf(id string) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.states[id]; ok {
		return st
	}
	return StateCollapsed
}

// Snapshot is a JSON-safe copy of the surface state for the transport layer.
type Snapshot struct {
	Active string           `json:"active_section_id,omitempty"`
	Open   []string         `json:"open"`
	States map[string]State `json:"states"`
}

// SnapshotState copies the current state. Open lists ids that are expanding
// or expanded, in navigation order.
func (s *Surface) SnapshotState() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Active: s.active,
		Open:   []string{},
		States: make(map[string]State, len(s.states)),
	}
	for id, st := range s.states {
		snap.States[id] = st
	}
	for _, e := range s.entries {
		if st := s.states[e.ID]; st == StateExpanding || st == StateExpanded {
			snap.Open = append(snap.Open, e.ID)
		}
	}
	return snap
}

// find returns the entry for id. The last occurrence wins so that duplicate
// titles resolve the same way the navigation index renders them.
func (s *Surface) find(id string) (section.NavEntry, bool) {
	var entry section.NavEntry
	found := false
	for _, e := range s.entries {
		if e.ID == id {
			entry = e
			found = true
		}
	}
	return entry, found
}

func (s *Surface) cancelPendingLocked() {
	s.pending = nil
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Surface) scroll(id string) {
	if err := s.scroller.ScrollTo(id); err != nil {
		s.log.Warn("scroll target unavailable", "id", id, "error", err)
	}
}
