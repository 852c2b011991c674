package vault

import (
	"regexp"

	"gopkg.in/yaml.v3"
)

var frontMatterPattern = regexp.MustCompile(`(?s)\A---[ \t]*\r?\n(?:(.*?)\r?\n)?---[ \t]*(?:\r?\n|\z)`)

// SplitFrontMatter separates a leading "---" delimited YAML block from the
// note body. When there is no block, fm is nil and body is data.
func SplitFrontMatter(data []byte) (fm []byte, body []byte) {
	loc := frontMatterPattern.FindSubmatchIndex(data)
	if loc == nil {
		return nil, data
	}
	if loc[2] >= 0 {
		fm = data[loc[2]:loc[3]]
	} else {
		fm = []byte{}
	}
	return fm, data[loc[1]:]
}

// ParseFrontMatter decodes a YAML mapping. Empty input and non-mapping
// documents yield a nil map.
func ParseFrontMatter(fm []byte) (map[string]any, error) {
	if len(fm) == 0 {
		return nil, nil
	}

	var node yaml.Node
	if err := yaml.Unmarshal(fm, &node); err != nil {
		return nil, err
	}
	if node.Kind != yaml.DocumentNode || len(node.Content) == 0 {
		return nil, nil
	}
	if node.Content[0].Kind != yaml.MappingNode {
		return nil, nil
	}

	fields := make(map[string]any)
	if err := node.Content[0].Decode(&fields); err != nil {
		return nil, err
	}
	return fields, nil
}
