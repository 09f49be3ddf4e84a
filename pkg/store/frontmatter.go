package store

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const (
	formatYAML = "yaml"
	formatTOML = "toml"
)

var delimiters = map[string]string{
	"---": formatYAML,
	"+++": formatTOML,
}

// SafeJoin joins target below root/sub, or returns "" when target would
// leave that directory.
func SafeJoin(root, sub, target string) string {
	cleanTarget := filepath.Clean(target)
	if cleanTarget == "." || filepath.IsAbs(cleanTarget) || strings.Contains(cleanTarget, "..") {
		return ""
	}
	return filepath.Join(root, sub, cleanTarget)
}

// SplitFrontMatter separates the metadata header from the body. A document
// without a header yields empty metadata in YAML format. The body is kept
// verbatim apart from the one blank line that separates it from the header.
func SplitFrontMatter(content []byte) (meta []byte, body string, format string, err error) {
	text := string(content)
	lines := strings.Split(text, "\n")

	open := strings.TrimSpace(lines[0])
	format, ok := delimiters[open]
	if !ok {
		return nil, text, formatYAML, nil
	}

	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == open {
			header := make([]string, 0, i-1)
			for _, line := range lines[1:i] {
				header = append(header, strings.TrimSuffix(line, "\r"))
			}
			meta = []byte(strings.Join(header, "\n"))
			body = strings.Join(lines[i+1:], "\n")
			if rest, ok := strings.CutPrefix(body, "\r\n"); ok {
				body = rest
			} else {
				body = strings.TrimPrefix(body, "\n")
			}
			return meta, body, format, nil
		}
	}
	return nil, "", "", fmt.Errorf("unterminated %s front matter", format)
}

// DecodeFrontMatter unmarshals a header produced by SplitFrontMatter.
func DecodeFrontMatter(meta []byte, format string, out any) error {
	if len(bytes.TrimSpace(meta)) == 0 {
		return nil
	}
	switch format {
	case formatYAML:
		return yaml.Unmarshal(meta, out)
	case formatTOML:
		return toml.Unmarshal(meta, out)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// ConstructFileContent renders a header and body back into a document.
func ConstructFileContent(meta any, body string, format string) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case formatYAML:
		buf.WriteString("---\n")
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(meta); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		buf.WriteString("---\n")
	case formatTOML:
		buf.WriteString("+++\n")
		enc := toml.NewEncoder(&buf)
		if err := enc.Encode(meta); err != nil {
			return nil, err
		}
		buf.WriteString("+++\n")
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}

	if body != "" {
		buf.WriteString("\n")
		buf.WriteString(body)
	}
	return buf.Bytes(), nil
}
