package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/blogfront/internal/state"
)

// snapshotFeed hands store notifications to the Bubble Tea loop. It keeps only
// the newest snapshot; the UI never needs the ones in between.
type snapshotFeed struct {
	ch chan state.Snapshot
}

func newSnapshotFeed() *snapshotFeed {
	return &snapshotFeed{ch: make(chan state.Snapshot, 1)}
}

func (f *snapshotFeed) push(snap state.Snapshot) {
	for {
		select {
		case f.ch <- snap:
			return
		default:
		}
		select {
		case <-f.ch:
		default:
		}
	}
}

// wait blocks until a snapshot arrives or ctx ends.
func (f *snapshotFeed) wait(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		select {
		case snap := <-f.ch:
			return snapshotMsg(snap)
		case <-ctx.Done():
			return nil
		}
	}
}
