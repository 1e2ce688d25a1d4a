// Package collect builds the ordered, deduplicated source file set the
// archive builders consume. It separates hand-written modules from generated
// UI modules and enforces that every UI description has been compiled before
// the set is finalized.
package collect
