package frontmatter

import (
	"bufio"
	"strings"

	"gopkg.in/yaml.v3"
)

// Meta holds the recognized fields of a rule document's front matter.
// All fields are best-effort: missing or malformed values produce zero values.
type Meta struct {
	Description string `yaml:"description"`
	Globs       string `yaml:"globs"`
	AlwaysApply bool   `yaml:"alwaysApply"`
}

// ParseMeta decodes the recognized fields from a document whose front matter
// block sits at the top of the file. Returns zero-value Meta if no block is
// found. Values are not validated beyond what YAML decoding enforces.
func ParseMeta(content string) Meta {
	scanner := bufio.NewScanner(strings.NewReader(content))

	// First line must be the opening delimiter.
	if !scanner.Scan() || strings.TrimSpace(scanner.Text()) != Delimiter {
		return Meta{}
	}

	var lines []string
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == Delimiter {
			break
		}
		lines = append(lines, line)
	}

	if len(lines) == 0 {
		return Meta{}
	}

	var m Meta
	_ = yaml.Unmarshal([]byte(strings.Join(lines, "\n")), &m)

	return m
}
