package logger

import "strings"

const (
	escape = '\x1b'
	bell   = '\x07'
)

// stripAnsiCodes removes terminal styling so messages read cleanly in the
// JSON log file. It drops CSI sequences (colours, "\x1b[1;33m") and OSC
// sequences (hyperlinks, "\x1b]8;;uri\x07"), keeping the visible text.
func stripAnsiCodes(s string) string {
	if strings.IndexByte(s, escape) < 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); i++ {
		if s[i] != escape || i+1 >= len(s) {
			b.WriteByte(s[i])
			continue
		}

		switch s[i+1] {
		case '[':
			i = skipCSI(s, i+2)
		case ']':
			i = skipOSC(s, i+2)
		default:
			b.WriteByte(s[i])
		}
	}

	return b.String()
}

// skipCSI returns the index of the sequence's final byte (0x40 to 0x7e)
func skipCSI(s string, i int) int {
	for ; i < len(s); i++ {
		if s[i] >= 0x40 && s[i] <= 0x7e {
			return i
		}
	}
	return len(s)
}

// skipOSC returns the index of the terminator, BEL or ESC \
func skipOSC(s string, i int) int {
	for ; i < len(s); i++ {
		if s[i] == bell {
			return i
		}
		if s[i] == escape && i+1 < len(s) && s[i+1] == '\\' {
			return i + 1
		}
	}
	return len(s)
}
