// Package store provides the persistent document behind the student roster.
//
// Features:
//   - One JSON file holds every account and every student record
//   - Whole-document load and save, no partial writes
//   - Human-readable output (4-space indentation, unescaped non-ASCII text)
//   - Atomic replace on save (temp file + rename)
//   - Backup of the current data file
//
// Usage:
//  1. Create a Store with New, passing the data file path and a logger
//  2. Call Load at the start of each operation to get a fresh Document
//  3. Mutate the Document in memory and hand it back to Save
//
// The Store does no locking: two processes saving the same file race and the
// last writer wins.
package store
