package state

import (
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/five82/blogfront/internal/posts"
)

const defaultHistoryLimit = 10

// Pagination describes the list page being shown.
type Pagination struct {
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	TotalCount  int `json:"totalCount"`
	Limit       int `json:"limit"`
}

// Filters narrow what the list shows.
type Filters struct {
	PublishedOnly bool   `json:"publishedOnly"`
	SearchQuery   string `json:"searchQuery"`
}

// Snapshot is the complete UI state at one point in time. An empty Error means
// no error; a nil CurrentPost means no post is open.
type Snapshot struct {
	Posts       []posts.Post `json:"posts"`
	CurrentPost *posts.Post  `json:"currentPost"`
	Loading     bool         `json:"loading"`
	Error       string       `json:"error"`
	Pagination  Pagination   `json:"pagination"`
	Filters     Filters      `json:"filters"`
}

// Defaults returns the snapshot a new Store starts from.
func Defaults() Snapshot {
	return Snapshot{
		Posts:      []posts.Post{},
		Pagination: Pagination{CurrentPage: 1, TotalPages: 1, TotalCount: 0, Limit: 10},
		Filters:    Filters{PublishedOnly: true},
	}
}

// VisiblePosts returns the loaded posts that match the search query
// (case-insensitive, on title, content or author).
func (s Snapshot) VisiblePosts() []posts.Post {
	query := strings.ToLower(strings.TrimSpace(s.Filters.SearchQuery))
	if query == "" {
		return posts.Clone(s.Posts)
	}
	out := make([]posts.Post, 0, len(s.Posts))
	for _, p := range s.Posts {
		if strings.Contains(strings.ToLower(p.Title), query) ||
			strings.Contains(strings.ToLower(p.Content), query) ||
			strings.Contains(strings.ToLower(p.Author), query) {
			out = append(out, p)
		}
	}
	return out
}

// HasError reports whether an error message is set.
func (s Snapshot) HasError() bool {
	return s.Error != ""
}

// clone copies every branch that could otherwise be shared with a caller.
func (s Snapshot) clone() Snapshot {
	dup := s
	dup.Posts = posts.Clone(s.Posts)
	if s.CurrentPost != nil {
		p := *s.CurrentPost
		dup.CurrentPost = &p
	}
	return dup
}

// Listener receives every new snapshot.
type Listener func(Snapshot)

type subscription struct {
	id uint64
	fn Listener
}

// Store holds the current snapshot, its subscribers and a bounded undo history.
// Snapshots handed in or out are copies, so nothing outside the Store can change
// stored state.
type Store struct {
	mu        sync.Mutex
	current   Snapshot
	defaults  Snapshot
	history   []Snapshot
	limit     int
	listeners []subscription
	nextID    uint64
	log       zerolog.Logger
}

// Option customizes a Store.
type Option func(*Store)

// WithHistoryLimit changes the undo capacity (default 10).
func WithHistoryLimit(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.limit = n
		}
	}
}

// WithPageSize changes the default pagination.limit.
func WithPageSize(limit int) Option {
	return func(s *Store) {
		if limit > 0 {
			s.defaults.Pagination.Limit = limit
		}
	}
}

// WithPublishedOnly changes the default filters.publishedOnly.
func WithPublishedOnly(v bool) Option {
	return func(s *Store) {
		s.defaults.Filters.PublishedOnly = v
	}
}

// WithLogger sets the logger used to report listener panics.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Store) {
		s.log = log
	}
}

// NewStore returns a Store holding the defaults.
func NewStore(opts ...Option) *Store {
	s := &Store{
		defaults: Defaults(),
		limit:    defaultHistoryLimit,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.current = s.defaults.clone()
	return s
}

// Subscribe registers listener and calls it right away with the current snapshot.
// The returned func detaches the listener; calling it more than once is harmless.
func (s *Store) Subscribe(listener Listener) func() {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, subscription{id: id, fn: listener})
	snap := s.current.clone()
	s.mu.Unlock()

	s.call(listener, snap)

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, sub := range s.listeners {
				if sub.id == id {
					s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
					return
				}
			}
		})
	}
}

// SetState records the current snapshot in history, applies changes in order and
// notifies subscribers.
func (s *Store) SetState(changes ...Change) {
	s.update(func(next *Snapshot) error {
		for _, change := range changes {
			if change != nil {
				change(next)
			}
		}
		return nil
	})
}

// UpdateNested sets the leaf addressed by a dot path such as
// "pagination.currentPage" and otherwise behaves like SetState. An unknown path
// or a value of the wrong type returns an error and changes nothing.
func (s *Store) UpdateNested(path string, value any) error {
	return s.update(func(next *Snapshot) error {
		return setPath(next, path, value)
	})
}

// Reset replaces the snapshot with the defaults. Like any update it is recorded
// in history and can be undone.
func (s *Store) Reset() {
	s.update(func(next *Snapshot) error {
		*next = s.defaults.clone()
		return nil
	})
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.clone()
}

// Get resolves a dot path against the current snapshot. The boolean is false
// when any segment does not exist, which is distinct from a field holding its
// zero value.
func (s *Store) Get(path string) (any, bool) {
	snap := s.Snapshot()
	if strings.TrimSpace(path) == "" {
		return snap, true
	}
	return getPath(snap, path)
}

// Undo restores the most recent history entry and notifies subscribers. It
// reports false, doing nothing, when the history is empty. Undo itself is not
// recorded, so it cannot be redone.
func (s *Store) Undo() bool {
	s.mu.Lock()
	if len(s.history) == 0 {
		s.mu.Unlock()
		return false
	}
	last := len(s.history) - 1
	s.current = s.history[last]
	s.history[last] = Snapshot{}
	s.history = s.history[:last]
	snap, listeners := s.current, s.listenersLocked()
	s.mu.Unlock()

	s.notify(listeners, snap)
	return true
}

// HistoryLen reports how many snapshots Undo can step back through.
func (s *Store) HistoryLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.history)
}

func (s *Store) update(apply func(next *Snapshot) error) error {
	s.mu.Lock()
	next := s.current.clone()
	if err := apply(&next); err != nil {
		s.mu.Unlock()
		return err
	}
	s.pushHistoryLocked(s.current)
	s.current = next.clone()
	snap, listeners := s.current, s.listenersLocked()
	s.mu.Unlock()

	s.notify(listeners, snap)
	return nil
}

func (s *Store) pushHistoryLocked(snap Snapshot) {
	s.history = append(s.history, snap)
	if over := len(s.history) - s.limit; over > 0 {
		copy(s.history, s.history[over:])
		for i := len(s.history) - over; i < len(s.history); i++ {
			s.history[i] = Snapshot{}
		}
		s.history = s.history[:len(s.history)-over]
	}
}

func (s *Store) listenersLocked() []Listener {
	out := make([]Listener, len(s.listeners))
	for i, sub := range s.listeners {
		out[i] = sub.fn
	}
	return out
}

// notify runs outside the lock so listeners may call back into the Store.
func (s *Store) notify(listeners []Listener, snap Snapshot) {
	for _, fn := range listeners {
		s.call(fn, snap.clone())
	}
}

func (s *Store) call(fn Listener, snap Snapshot) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error().Str("panic", fmt.Sprint(r)).Msg("state listener panicked")
		}
	}()
	fn(snap)
}
