package scene

import (
	"strings"

	dmp "github.com/sergi/go-diff/diffmatchpatch"
	"gopkg.in/yaml.v3"
)

// Describe renders s as YAML. Image bytes and the active tool are omitted.
func (s State) Describe() string {
	out, err := yaml.Marshal(s)
	if err != nil {
		return err.Error()
	}
	return string(out)
}

// Diff returns a line diff between the descriptions of two states, with
// removed lines prefixed "- " and added lines "+ ". Equal states yield "".
func Diff(before, after State) string {
	b, a := before.Describe(), after.Describe()
	if b == a {
		return ""
	}
	d := dmp.New()
	cb, ca, lines := d.DiffLinesToChars(b, a)
	diffs := d.DiffCharsToLines(d.DiffMain(cb, ca, false), lines)

	var sb strings.Builder
	for _, df := range diffs {
		var prefix string
		switch df.Type {
		case dmp.DiffDelete:
			prefix = "- "
		case dmp.DiffInsert:
			prefix = "+ "
		default:
			continue
		}
		for _, line := range strings.SplitAfter(df.Text, "\n") {
			if line == "" {
				continue
			}
			sb.WriteString(prefix)
			sb.WriteString(line)
		}
	}
	return sb.String()
}
