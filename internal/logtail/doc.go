// Package logtail reads the end of blogfront's log file for the terminal log view.
//
// Read keeps a ring buffer of the last maxLines lines, so memory stays bounded
// by maxLines whatever the file size. A missing file is not an error; the log
// view simply starts empty.
//
// Parse turns a zerolog JSON line into an Entry with its time, level, message
// and remaining fields sorted by key. Console-format or foreign lines are kept
// as unstructured entries so nothing is hidden.
//
//	entries, err := logtail.Tail(cfg.LogFile, 400)
package logtail
