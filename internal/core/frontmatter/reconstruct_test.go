package frontmatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconstruct_Misplaced(t *testing.T) {
	content := `# Build rules

Some explanation of the rules.

---
description: build rules
globs: "**/*.go"
alwaysApply: true
---
`
	c := Classify(content)
	require.Equal(t, KindMisplaced, c.Kind)

	got, err := Reconstruct(content, c)
	require.NoError(t, err)

	want := `---
description: build rules
globs: "**/*.go"
alwaysApply: true
---

# Build rules

Some explanation of the rules.
`
	assert.Equal(t, want, got)

	// Reclassifying the result puts the block at offset zero.
	rc := Classify(got)
	assert.Equal(t, Classification{Kind: KindWellFormed, Offset: 0}, rc)
}

func TestReconstruct_LooseKeys(t *testing.T) {
	content := `description: x
globs: y
alwaysApply: true

Hello
`
	c := Classify(content)
	require.Equal(t, KindLoose, c.Kind)

	got, err := Reconstruct(content, c)
	require.NoError(t, err)

	want := `---
description: x
globs: y
alwaysApply: true
---

Hello
`
	assert.Equal(t, want, got)
	assert.Equal(t, KindWellFormed, Classify(got).Kind)
}

func TestReconstruct_LooseKeysStrayTrailingDelimiter(t *testing.T) {
	// The closing marker after the key lines is consumed, not duplicated.
	content := `description: x
globs: y
---

Body text here.
`
	got, err := Reconstruct(content, Classify(content))
	require.NoError(t, err)

	want := `---
description: x
globs: y
---

Body text here.
`
	assert.Equal(t, want, got)
	assert.Equal(t, 2, strings.Count(got, "---\n"))
}

func TestReconstruct_LooseKeysBelowBody(t *testing.T) {
	content := `# Notes

Some prose.

description: late metadata
globs: *.md
`
	got, err := Reconstruct(content, Classify(content))
	require.NoError(t, err)

	want := `---
description: late metadata
globs: *.md
---

# Notes

Some prose.
`
	assert.Equal(t, want, got)
}

func TestReconstruct_Idempotent(t *testing.T) {
	// A well-formed document passed through the loose walk reproduces a
	// well-formed document with no doubled delimiters.
	content := `---
description: x
globs: y
---

Hello
`
	got, err := Reconstruct(content, Classification{Kind: KindLoose})
	require.NoError(t, err)
	assert.Equal(t, content, got)
	assert.Equal(t, Classification{Kind: KindWellFormed, Offset: 0}, Classify(got))
}

func TestReconstruct_BodyPreserved(t *testing.T) {
	content := `# Heading

First paragraph.

Second paragraph with trailing detail.

---
description: rules
globs: "**/*"
---
`
	got, err := Reconstruct(content, Classify(content))
	require.NoError(t, err)

	wantBody := []string{
		"# Heading",
		"",
		"First paragraph.",
		"",
		"Second paragraph with trailing detail.",
	}
	gotLines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	// Block is 4 lines plus the separating blank line.
	require.Greater(t, len(gotLines), 5)
	assert.Equal(t, wantBody, gotLines[5:])
}

func TestReconstruct_LooseNoMetadataLines(t *testing.T) {
	// Defensive re-check: a loose classification whose walk extracts nothing
	// must surface as unfixable, not produce an empty block.
	content := "# Just a heading\n\nProse only.\n"

	_, err := Reconstruct(content, Classification{Kind: KindLoose})
	assert.ErrorIs(t, err, ErrNoMetadata)
}

func TestReconstruct_RejectsUnfixableKinds(t *testing.T) {
	_, err := Reconstruct("body\n", Classification{Kind: KindNone})
	assert.Error(t, err)

	_, err = Reconstruct("---\ndescription: x\n---\n", Classification{Kind: KindWellFormed})
	assert.Error(t, err)
}
