// Copyright 2026 The Conveyor Authors
// SPDX-License-Identifier: Apache-2.0

package schema

// globMatch reports whether name matches pattern. The pattern language
// is the trigger filter's: '*' matches any run of characters including
// none, '?' matches exactly one character, everything else matches
// itself. There is no path-segment special casing: "release/*" matches
// "release/1.x" and "v*" matches "v1.2.0".
//
// Iterative matcher with single-star backtracking: when a literal
// mismatch occurs after a '*', the star absorbs one more character and
// matching resumes. Linear in len(name) per star.
func globMatch(pattern, name string) bool {
	patternIndex, nameIndex := 0, 0
	starIndex, backtrackIndex := -1, 0

	for nameIndex < len(name) {
		switch {
		case patternIndex < len(pattern) && pattern[patternIndex] == '*':
			starIndex = patternIndex
			backtrackIndex = nameIndex
			patternIndex++

		case patternIndex < len(pattern) &&
			(pattern[patternIndex] == '?' || pattern[patternIndex] == name[nameIndex]):
			patternIndex++
			nameIndex++

		case starIndex >= 0:
			// Mismatch after a star: widen the star's match by one
			// character and retry from just past the star.
			backtrackIndex++
			nameIndex = backtrackIndex
			patternIndex = starIndex + 1

		default:
			return false
		}
	}

	// Name consumed; remaining pattern must be all stars.
	for patternIndex < len(pattern) && pattern[patternIndex] == '*' {
		patternIndex++
	}
	return patternIndex == len(pattern)
}
