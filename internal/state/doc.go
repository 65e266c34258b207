// Package state holds the blog UI state and notifies subscribers when it changes.
//
// # Overview
//
// A Store owns one Snapshot: the loaded posts, the open post, the loading flag,
// the last error message, pagination and filters. The page controller writes to
// it while views (HTML pages or the terminal UI) subscribe and redraw.
//
//	Controller:                     Views:
//	┌──────────────────┐           ┌──────────────────┐
//	│ SetLoading(true) │           │ Subscribe(fn)    │
//	│ SetPosts(items)  │──notify──→│   fn(snapshot)   │
//	│ SetError(msg)    │           │   redraw         │
//	└──────────────────┘           └──────────────────┘
//
// # Updates
//
// SetState applies Change values in order. Each Change replaces one top-level
// branch, so
//
//	store.SetState(state.ReplaceLoading(true), state.ReplaceError(""))
//
// leaves posts, pagination and filters untouched. UpdateNested addresses a single
// leaf with a dot path built from JSON names:
//
//	store.UpdateNested("pagination.currentPage", 3)
//
// Sibling fields keep their values. An unknown path is an error (ErrPathNotFound)
// and the Store is unchanged.
//
// Get reads with the same paths and reports false when a segment is missing,
// which is different from a present field holding its zero value.
//
// # History
//
// Every update first pushes the previous snapshot onto a bounded history (10
// entries unless WithHistoryLimit says otherwise). The oldest entry is dropped
// when the bound is exceeded. Undo pops one entry and notifies subscribers; undo
// is not itself recorded. Reset installs the defaults and counts as an update.
//
// # Subscribers
//
// Subscribe calls the listener immediately with the current snapshot, then again
// after every update, in subscription order. Listeners run on the writer's
// goroutine after the lock is released, so a listener may read from or write to
// the Store. A panicking listener is logged and the remaining listeners still
// run.
//
// # Copies
//
// Snapshots passed to listeners and returned by Snapshot and Get are deep copies.
// Mutating one never changes stored state or history.
package state
