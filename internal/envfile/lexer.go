package envfile

import (
	"errors"
	"strings"
	"unicode"
)

var (
	errNoClosingQuote = errors.New("no closing quotation")
	errNoEscapedChar  = errors.New("no escaped character")
)

// extraWordChars widen the usual shell word so paths, version specifiers
// and function-like values survive unquoted.
const extraWordChars = "_/.+-():"

func isWordChar(r rune) bool {
	if r >= '0' && r <= '9' {
		return true
	}
	return unicode.IsLetter(r) || strings.ContainsRune(extraWordChars, r)
}

func isBlank(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\n'
}

// splitWords tokenizes one line with POSIX word-splitting rules:
//   - blanks separate words
//   - '#' starts a comment, even in the middle of a word
//   - single quotes are literal, double quotes honour \" and \\
//   - a backslash outside quotes escapes the next character
//   - any other non-word character is a token of its own
func splitWords(line string) ([]string, error) {
	rs := []rune(line)

	var (
		tokens []string
		cur    strings.Builder
		open   bool // a token is in progress, possibly empty ("")
	)
	flush := func() {
		if open {
			tokens = append(tokens, cur.String())
			cur.Reset()
			open = false
		}
	}

	for i := 0; i < len(rs); i++ {
		r := rs[i]
		switch {
		case isBlank(r):
			flush()
		case r == '#':
			flush()
			return tokens, nil
		case r == '\\':
			if i+1 >= len(rs) {
				return nil, errNoEscapedChar
			}
			i++
			cur.WriteRune(rs[i])
			open = true
		case r == '\'' || r == '"':
			end, err := readQuoted(rs, i, &cur)
			if err != nil {
				return nil, err
			}
			i = end
			open = true
		case isWordChar(r):
			cur.WriteRune(r)
			open = true
		default:
			flush()
			tokens = append(tokens, string(r))
		}
	}
	flush()
	return tokens, nil
}

// readQuoted consumes the quoted section starting at rs[start] and returns
// the index of the closing quote.
func readQuoted(rs []rune, start int, out *strings.Builder) (int, error) {
	quote := rs[start]
	for i := start + 1; i < len(rs); i++ {
		r := rs[i]
		switch {
		case r == quote:
			return i, nil
		case quote == '"' && r == '\\':
			if i+1 >= len(rs) {
				return 0, errNoEscapedChar
			}
			next := rs[i+1]
			if next != '"' && next != '\\' {
				out.WriteRune('\\')
			}
			out.WriteRune(next)
			i++
		default:
			out.WriteRune(r)
		}
	}
	return 0, errNoClosingQuote
}
