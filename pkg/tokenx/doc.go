// Package tokenx implements the compact session-token wire format used by
// the sessionkit SDK: parsing and serialising the three-segment
// header.payload.signature form, recognising the fixed set of accepted
// headers, and verifying RS256 signatures against a candidate key set.
//
// The package is purely structural and cryptographic. It never talks to the
// network and never decides whether a token is acceptable for a request -
// that composition lives in sessionx.
package tokenx
