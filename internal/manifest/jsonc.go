package manifest

// StripComments removes // line comments and /* */ block comments from JSONC
// input, returning plain JSON. Comment markers inside double-quoted strings
// (honoring \" escapes) are preserved verbatim, so URLs like "https://…" are
// never corrupted. Stripped comment bytes are replaced with spaces and
// newlines are kept, so byte offsets reported by the JSON decoder still map
// to the original file's lines and columns.
func StripComments(data []byte) []byte {
	const (
		stateCode = iota
		stateString
		stateStringEscape
		stateLineComment
		stateBlockComment
	)

	out := make([]byte, 0, len(data))
	state := stateCode

	for i := 0; i < len(data); i++ {
		c := data[i]
		switch state {
		case stateCode:
			switch {
			case c == '"':
				state = stateString
				out = append(out, c)
			case c == '/' && i+1 < len(data) && data[i+1] == '/':
				state = stateLineComment
				out = append(out, ' ', ' ')
				i++
			case c == '/' && i+1 < len(data) && data[i+1] == '*':
				state = stateBlockComment
				out = append(out, ' ', ' ')
				i++
			default:
				out = append(out, c)
			}
		case stateString:
			switch c {
			case '\\':
				state = stateStringEscape
			case '"':
				state = stateCode
			}
			out = append(out, c)
		case stateStringEscape:
			state = stateString
			out = append(out, c)
		case stateLineComment:
			if c == '\n' {
				state = stateCode
				out = append(out, c)
			} else {
				out = append(out, ' ')
			}
		case stateBlockComment:
			if c == '*' && i+1 < len(data) && data[i+1] == '/' {
				state = stateCode
				out = append(out, ' ', ' ')
				i++
			} else if c == '\n' {
				out = append(out, c)
			} else {
				out = append(out, ' ')
			}
		}
	}

	return out
}
