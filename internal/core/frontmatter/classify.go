// Package frontmatter classifies and repairs YAML front matter placement in
// rule documents. A well-formed document opens with a "---" delimited block;
// malformed documents carry the block somewhere below the top, or carry the
// raw key lines with no delimiters at all.
package frontmatter

import (
	"regexp"
	"strings"
)

// Delimiter is the marker line bounding a front matter block.
const Delimiter = "---"

// offsetThreshold is the largest byte offset at which a delimited block still
// counts as correctly placed. Leaves room for a short title line above it.
const offsetThreshold = 10

var (
	// blockRe matches a delimited block anywhere in the content. Non-greedy
	// so it stops at the first closing delimiter instead of swallowing any
	// later delimited region.
	blockRe = regexp.MustCompile(`(?s)---\s*\n(.*?)\n---\s*`)

	// looseKeyRe matches the recognized rule keys at the start of a trimmed
	// line. Anchoring avoids matching key names mid-sentence.
	looseKeyRe = regexp.MustCompile(`^(description:|globs:|alwaysApply:)`)
)

// Kind is the front matter condition of a document.
type Kind string

const (
	// KindWellFormed is a delimited block at (or near) the top of the file.
	KindWellFormed Kind = "well-formed"
	// KindMisplaced is a delimited block that starts past the placement threshold.
	KindMisplaced Kind = "misplaced"
	// KindLoose is recognized key lines present without delimiter markers.
	KindLoose Kind = "loose-yaml"
	// KindNone is a document with no front matter and no recognized keys.
	KindNone Kind = "none"
)

// Classification is the result of classifying one document.
type Classification struct {
	Kind Kind
	// Offset is the byte offset of the delimited block for KindWellFormed
	// and KindMisplaced.
	Offset int
	// Line is the zero-based line index of the first recognized key line
	// for KindLoose.
	Line int
}

// Fixable reports whether the document needs (and can take) a rewrite.
func (c Classification) Fixable() bool {
	return c.Kind == KindMisplaced || c.Kind == KindLoose
}

// Classify determines the front matter condition of content. The delimited
// block search runs over the whole content first; only when no block exists
// does the line scan for loose keys run.
func Classify(content string) Classification {
	if loc := blockRe.FindStringIndex(content); loc != nil {
		if loc[0] <= offsetThreshold {
			return Classification{Kind: KindWellFormed, Offset: loc[0]}
		}
		return Classification{Kind: KindMisplaced, Offset: loc[0]}
	}

	for i, line := range strings.Split(content, "\n") {
		if looseKeyRe.MatchString(strings.TrimSpace(line)) {
			return Classification{Kind: KindLoose, Line: i}
		}
	}

	return Classification{Kind: KindNone}
}
