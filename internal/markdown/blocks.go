package markdown

import (
	"strings"
)

// normalize prepares source text for block splitting: LF line endings,
// tabs expanded to tabLength columns, whitespace-only lines emptied.
func normalize(text string, tabLength int) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if strings.Contains(line, "\t") {
			line = expandTabs(line, tabLength)
		}
		if strings.TrimSpace(line) == "" {
			line = ""
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

func expandTabs(line string, width int) string {
	var b strings.Builder
	col := 0
	for _, r := range line {
		if r == '\t' {
			n := width - col%width
			b.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		b.WriteRune(r)
		col++
		if r == '\n' {
			col = 0
		}
	}
	return b.String()
}

// SplitBlocks splits text into blank-line separated blocks. A fenced code
// region starting at the top level is kept whole as one block, blank lines
// included.
func SplitBlocks(text string) []string {
	var blocks []string
	var prose []string
	flush := func() {
		if len(prose) == 0 {
			return
		}
		blocks = append(blocks, strings.Split(strings.Join(prose, "\n"), "\n\n")...)
		prose = prose[:0]
	}

	lines := strings.Split(text, "\n")
	for i := 0; i < len(lines); i++ {
		marker, ok := openingFence(lines[i])
		if !ok {
			prose = append(prose, lines[i])
			continue
		}
		for n := len(prose); n > 0 && prose[n-1] == ""; n-- {
			prose = prose[:n-1]
		}
		flush()

		end := len(lines)
		for j := i + 1; j < len(lines); j++ {
			if closesFence(lines[j], marker) {
				end = j + 1
				break
			}
		}
		blocks = append(blocks, strings.Join(lines[i:end], "\n"))
		i = end - 1

		// Skip the blank separator so the fence does not leave an empty block.
		if i+1 < len(lines) && lines[i+1] == "" {
			i++
		}
	}
	flush()
	return blocks
}

// IsFenced reports whether block is a fenced code region.
func IsFenced(block string) bool {
	first, _, _ := strings.Cut(block, "\n")
	_, ok := openingFence(first)
	return ok
}

// openingFence returns the fence marker (``` or ~~~ run) opening on line.
func openingFence(line string) (string, bool) {
	trimmed := strings.TrimLeft(line, " ")
	if len(line)-len(trimmed) > 3 || len(trimmed) < 3 {
		return "", false
	}
	c := trimmed[0]
	if c != '`' && c != '~' {
		return "", false
	}
	n := 0
	for n < len(trimmed) && trimmed[n] == c {
		n++
	}
	if n < 3 {
		return "", false
	}
	if c == '`' && strings.Contains(trimmed[n:], "`") {
		return "", false
	}
	return trimmed[:n], true
}

func closesFence(line, marker string) bool {
	trimmed := strings.TrimLeft(line, " ")
	if len(line)-len(trimmed) > 3 {
		return false
	}
	trimmed = strings.TrimRight(trimmed, " ")
	if len(trimmed) < len(marker) || trimmed[0] != marker[0] {
		return false
	}
	return strings.Trim(trimmed, marker[:1]) == ""
}

// Detab removes one level of indentation from the leading lines of block.
//
// Lines indented by at least width spaces lose width spaces; blank lines
// become empty. Collection stops at the first other line, which starts rest.
func Detab(block string, width int) (indented, rest string) {
	prefix := strings.Repeat(" ", width)
	lines := strings.Split(block, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, prefix):
			out = append(out, line[width:])
		case strings.TrimSpace(line) == "":
			out = append(out, "")
		default:
			return strings.Join(out, "\n"), strings.Join(lines[len(out):], "\n")
		}
	}
	return strings.Join(out, "\n"), ""
}
