// Package ident implements the two identifier-shape helpers used to
// recognize the prefix-convention ids (sN, mN, pN, gN) that tag
// simulation script blocks, mutation types, subpopulations, and
// genomic elements (spec.md §4.5).
package ident

import (
	"strconv"

	"github.com/scriptlab/eidos/errs"
	"github.com/scriptlab/eidos/token"
)

// MaxID is the largest value a prefix identifier's numeric suffix may
// take. Go has no narrow integer type matching the original system's
// object-id type, so this is expressed directly against int64.
const MaxID int64 = 1<<31 - 1

// IsIDWithPrefix reports whether s begins with prefix. The check is
// deliberately loose — it does not validate the rest of s — so that
// any prefix-letter identifier is routed into ExtractIDFromPrefix,
// which raises a precise error for anything malformed rather than
// silently falling back to being interpreted as something else.
func IsIDWithPrefix(s string, prefix byte) bool {
	return len(s) >= 1 && s[0] == prefix
}

// ExtractIDFromPrefix parses the numeric suffix of s after its prefix
// letter. blame is the token to attribute a failure to. Fails if the
// prefix does not match, the suffix is empty, any suffix character is
// non-digit, or the value exceeds MaxID.
func ExtractIDFromPrefix(s string, prefix byte, blame token.Token) (int64, error) {
	if len(s) < 1 || s[0] != prefix {
		return 0, errs.NewRangeError(blame, "an identifier prefix '"+string(prefix)+"' was expected")
	}
	suffix := s[1:]
	if len(suffix) == 0 {
		return 0, errs.NewRangeError(blame, "an integer id was expected after the '"+string(prefix)+"' prefix")
	}
	for i := 0; i < len(suffix); i++ {
		if suffix[i] < '0' || suffix[i] > '9' {
			return 0, errs.NewRangeError(blame, "the id after the '"+string(prefix)+"' prefix must be a simple integer")
		}
	}

	n, err := strconv.ParseInt(suffix, 10, 64)
	if err != nil {
		return 0, errs.NewRangeError(blame, "the identifier "+s+" was not parseable")
	}
	if n < 0 || n > MaxID {
		return 0, errs.NewRangeError(blame, "the identifier "+s+" was out of range")
	}
	return n, nil
}
