// SPDX-License-Identifier: MPL-2.0

// Package archive reads and writes mod containers.
//
// Two container families are understood: the zip family (".scs" and ".zip",
// which are the same format under different names) and RAR. RAR extraction is
// an optional capability that is compiled in unless the "norar" build tag is
// set; asking for it in a build without it fails with CapabilityMissingError
// rather than attempting a partial extraction.
//
// Output is always a deflate zip. It is written to a temporary sibling of the
// target and renamed into place, so the declared extension (".scs" by default)
// never needs a re-encode and the input archive is never overwritten.
package archive
