package cli

import "strings"

// windowsEscaper escapes backslash first so later substitutions are not
// escaped twice. strings.Replacer performs a single pass, which yields the
// same result as applying the substitutions one after another in this order.
var windowsEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
	"\b", `\b`,
	"\f", `\f`,
	"'", `\'`,
)

// EscapeWindows escapes backslash, double-quote, newline, carriage return,
// tab, backspace, form-feed and single-quote so the text can be embedded in a
// Windows command line.
func EscapeWindows(s string) string {
	return windowsEscaper.Replace(s)
}

// UnescapeWindows reverses EscapeWindows. Backslash sequences it does not
// produce are kept verbatim.
func UnescapeWindows(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var b strings.Builder

	b.Grow(len(s))

	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 == len(s) {
			b.WriteByte(c)

			continue
		}

		i++

		switch s[i] {
		case '\\', '"', '\'':
			b.WriteByte(s[i])
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		default:
			b.WriteByte('\\')
			b.WriteByte(s[i])
		}
	}

	return b.String()
}

// PreparePrompt escapes prompt when goos is "windows" and returns it
// unchanged otherwise.
func PreparePrompt(prompt, goos string) string {
	if goos == "windows" {
		return EscapeWindows(prompt)
	}

	return prompt
}
