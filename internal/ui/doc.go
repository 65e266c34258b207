// Package ui provides the blogfront terminal browser.
//
// The UI is a Bubble Tea program driven by the same page.Controller and
// state.Store that back the web front end. Loads run as commands that call the
// controller; the store's subscription feeds snapshots back into Update, so the
// screen always reflects the latest state, including the loading and error
// flags. Stale results are dropped by the controller and never reach the view.
//
// # Screens
//
//   - Home: the most recent posts
//   - All posts: the paged list, with n/p to move between pages
//   - Post: one post in a scrollable viewport
//   - Logs: the tail of the blogfront log file, parsed by logtail
//
// # Key Bindings
//
//   - j/k: Move selection, enter: open post
//   - tab: Switch between home and all posts
//   - b/esc: Back (esc on a list clears the search)
//   - /: Search loaded posts, a: toggle drafts, u: undo last state change
//   - r: Reload, l: logs, T: cycle theme, ?: help, q/ctrl+c: quit
//
// Theme and the drafts toggle are saved to the prefs file.
package ui
