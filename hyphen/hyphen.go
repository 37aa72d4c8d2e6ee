// Package hyphen implements the Syllabifier collaborator: an optional
// mapping from a word to candidate hyphenation offsets.
package hyphen

import (
	"unicode"

	"github.com/rivo/uniseg"
)

// Syllabifier maps a word to a list of byte offsets, each a legal
// hyphenation point within the word (relative to the word's start).
// A nil Syllabifier disables hyphenation entirely.
type Syllabifier interface {
	Syllabify(word string) []int
}

// Heuristic is a dictionary-free Syllabifier: it proposes a break
// immediately after a vowel that is followed by a consonant, skipping
// the first two and last two runes of the word so that hyphenated
// fragments always carry at least two characters.
type Heuristic struct {
	// MinWordLength is the shortest word considered for hyphenation.
	// Words shorter than this are never split. Defaults to 4 when
	// constructed via NewHeuristic.
	MinWordLength int
}

// NewHeuristic returns a Heuristic syllabifier with the default
// minimum word length.
func NewHeuristic() *Heuristic {
	return &Heuristic{MinWordLength: 4}
}

// Syllabify returns candidate hyphenation offsets within word. Offsets
// are validated against grapheme-cluster boundaries so that a
// combining-mark sequence is never split mid-cluster.
func (h *Heuristic) Syllabify(word string) []int {
	runes := []rune(word)
	n := len(runes)

	minLen := h.MinWordLength
	if minLen <= 0 {
		minLen = 4
	}
	if n < minLen {
		return nil
	}
	for _, r := range runes {
		if !unicode.IsLetter(r) {
			return nil
		}
	}

	clusterStarts := graphemeStarts(word)

	var offsets []int
	byteOffset := 0
	for i := 0; i < n-2; i++ {
		if i >= 2 && shouldSplit(runes, i) && clusterStarts[byteOffset] {
			offsets = append(offsets, byteOffset)
		}
		byteOffset += len(string(runes[i]))
	}
	return offsets
}

// shouldSplit reports whether position i (a rune index into runes) is
// a legal split point: a vowel immediately followed by a consonant.
func shouldSplit(runes []rune, i int) bool {
	if i < 1 || i >= len(runes) {
		return false
	}
	return isVowel(runes[i-1]) && !isVowel(runes[i])
}

func isVowel(r rune) bool {
	r = unicode.ToLower(r)
	switch r {
	case 'a', 'e', 'i', 'o', 'u',
		'á', 'é', 'í', 'ó', 'ú',
		'ä', 'ö', 'ü':
		return true
	default:
		return false
	}
}

// graphemeStarts returns, for every byte offset into s, whether that
// offset begins a grapheme cluster. Offsets inside a cluster (e.g. a
// combining mark's bytes) map to false, so a syllable boundary
// computed from bare rune positions can be rejected when it would
// split a cluster.
func graphemeStarts(s string) map[int]bool {
	starts := make(map[int]bool, len(s))
	state := -1
	offset := 0
	remaining := s
	for len(remaining) > 0 {
		var cluster string
		cluster, remaining, _, state = uniseg.FirstGraphemeClusterInString(remaining, state)
		starts[offset] = true
		offset += len(cluster)
	}
	return starts
}
