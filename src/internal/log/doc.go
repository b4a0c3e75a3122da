// Package log provides simple leveled logging for ifselect.
//
// Messages are written with colored level prefixes: [DBG], [INF], [WRN] and
// [ERR]. Debug messages are only shown in verbose mode. Errors always go to
// stderr, everything else to stdout unless SetForceStdErr is enabled.
//
// # Example Usage
//
//	log.SetVerbose(true)
//	log.Debugf("Found interface %s:%s", name, addr)
//	log.Errorf("No interface found in the same subnet as remote address %s", remote)
//
// All functions are safe for concurrent use; writes are serialized so lines
// from different goroutines never interleave.
package log
