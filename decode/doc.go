// Package decode reads named binary tag documents.
//
// # Usage
//
//	name, v, err := decode.Decode(r)
//	if errors.Is(err, nbterr.ErrMalformed) {
//	    // truncated or invalid input
//	}
//
// The reader is consumed in a single forward pass; no partial tree is ever
// returned. Nesting depth is bounded (see MaxDepth).
//
// # Related Packages
//
//   - github.com/signadot/nbt-format/go-nbt/encode - the inverse
//   - github.com/signadot/nbt-format/go-nbt/compression - stream wrappers
package decode
