package console

import "strings"

// Help renders usage text. A line starting with !cyan, !green or !yellow is
// styled in that color when color is enabled; the directive is always removed.
func Help(text string, color bool) string {
	styles := map[string]func(...any) string{
		"!cyan":   cyan,
		"!green":  green,
		"!yellow": yellow,
	}

	lines := strings.Split(strings.TrimSpace(text), "\n")
	for i, line := range lines {
		if !strings.HasPrefix(line, "!") {
			continue
		}
		directive, rest, _ := strings.Cut(line, " ")
		if style, ok := styles[directive]; ok && color {
			rest = style(rest)
		}
		lines[i] = rest
	}

	return strings.Join(lines, "\n")
}
