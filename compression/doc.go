// Package compression wraps documents in gzip or zlib streams.
//
// Readers report decompression failures, including truncated streams, as
// nbterr.Compression errors and failures of the underlying source as
// nbterr.IO errors, so callers can tell a damaged file from a damaged disk.
package compression
