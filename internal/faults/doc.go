// Package faults defines the sentinel error markers shared across exifstrip.
//
// Per-file failures (probe errors, unsupported formats, strip failures and
// timeouts) are tagged with ErrExternalTool, ErrUnsupported or ErrTimeout and
// never abort a batch. Run-level preconditions (a missing tool, an unreadable
// directory, a held lock) use ErrNotFound and ErrPrecondition; Fatal reports
// which class an error belongs to.
package faults
