package envfile

import "strings"

// Expand replaces every `$NAME` in s with env[NAME] in a single left to
// right pass. Each reference is looked up once, so the result does not
// depend on map ordering. References to unknown names, `${NAME}` and a
// lone `$` are copied through untouched.
func Expand(s string, env map[string]string) string {
	if len(env) == 0 || !strings.Contains(s, "$") {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if s[i] == '$' {
			if n := identLen(s[i+1:]); n > 0 {
				name := s[i+1 : i+1+n]
				if v, ok := env[name]; ok {
					b.WriteString(v)
				} else {
					b.WriteString(s[i : i+1+n])
				}
				i += 1 + n
				continue
			}
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}

// identLen reports the length of the identifier at the start of s.
func identLen(s string) int {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '_', c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return i
		}
	}
	return len(s)
}
