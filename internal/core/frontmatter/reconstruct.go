package frontmatter

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrNoMetadata is returned when a document classified as loose YAML yields
// no metadata lines during extraction. The document is left for the caller
// to report as unfixable.
var ErrNoMetadata = errors.New("no metadata lines extracted")

var (
	trailingDelimRe = regexp.MustCompile(`\n---\s*$`)
	strandedDelimRe = regexp.MustCompile(`\n---\s*\n`)
)

// Reconstruct rewrites content so its front matter block appears first,
// followed by a blank line and the untouched body. Only KindMisplaced and
// KindLoose documents can be reconstructed.
func Reconstruct(content string, c Classification) (string, error) {
	switch c.Kind {
	case KindMisplaced:
		return liftBlock(content), nil
	case KindLoose:
		return wrapLoose(content)
	default:
		return "", fmt.Errorf("content is %s, nothing to reconstruct", c.Kind)
	}
}

// liftBlock moves the first delimited block, delimiters included, to the top
// of the document. Later delimited regions are left where they are.
func liftBlock(content string) string {
	loc := blockRe.FindStringIndex(content)
	if loc == nil {
		// Caller classified this as misplaced, so a block must exist.
		return content
	}

	block := strings.TrimSpace(content[loc[0]:loc[1]])
	body := strings.TrimSpace(content[:loc[0]] + content[loc[1]:])

	return assemble(block, body)
}

// wrapLoose collects the unwrapped metadata lines and synthesizes a single
// delimited block above the remaining body.
//
// The walk keeps a small amount of state: a recognized key line opens the
// metadata section, a lone "---" inside the section closes it and is dropped
// (it was a stray trailing marker), a blank line inside the section closes it
// but stays as the first body line, and any other line belongs to whichever
// section is open.
func wrapLoose(content string) (string, error) {
	var (
		meta   []string
		body   []string
		inMeta bool
	)

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case looseKeyRe.MatchString(trimmed):
			inMeta = true
			meta = append(meta, line)
		case inMeta && trimmed == Delimiter:
			inMeta = false
		case !inMeta && len(meta) == 0 && trimmed == Delimiter:
			// Orphan opening marker ahead of the keys. The synthesized block
			// brings its own markers, so keeping it would double them.
		case inMeta && trimmed == "":
			inMeta = false
			body = append(body, line)
		case inMeta:
			meta = append(meta, line)
		default:
			body = append(body, line)
		}
	}

	if len(meta) == 0 {
		return "", ErrNoMetadata
	}

	block := Delimiter + "\n" + strings.Join(meta, "\n") + "\n" + Delimiter

	text := strings.TrimSpace(strings.Join(body, "\n"))
	// Scrub delimiter-only lines the walk can leave behind when the source
	// carried doubled markers.
	text = trailingDelimRe.ReplaceAllString(text, "")
	text = strandedDelimRe.ReplaceAllString(text, "\n\n")

	return assemble(block, text), nil
}

func assemble(block, body string) string {
	if body == "" {
		return block + "\n"
	}
	return block + "\n\n" + body + "\n"
}
