package fileio

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"
)

// isLineBreak сообщает, завершает ли r строку.
// '\r' обрабатывается отдельно: "\r\n" и одиночный '\r' приводятся к '\n'.
func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}

// isSpace расширяет unicode.IsSpace разделителями '\x1c'..'\x1f'.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= '\x1c' && r <= '\x1f')
}

// endsWithLineBreak сообщает, заканчивается ли s распознаваемым переводом строки.
func endsWithLineBreak(s string) bool {
	r, _ := utf8.DecodeLastRuneInString(s)
	return r == '\r' || isLineBreak(r)
}

// readLine читает одну строку и возвращает её без перевода строки и сам перевод.
// У последней строки без перевода brk пустой. В конце ввода возвращается io.EOF.
// Байты вне UTF-8 переносятся в строку без изменений.
func readLine(r *bufio.Reader) (line, brk string, err error) {
	var sb strings.Builder
	for {
		c, size, err := r.ReadRune()
		if err != nil {
			if errors.Is(err, io.EOF) && sb.Len() > 0 {
				return sb.String(), "", nil
			}
			return sb.String(), "", err
		}

		switch {
		case c == utf8.RuneError && size == 1:
			_ = r.UnreadRune() //nolint:errcheck // сразу после ReadRune
			b, _ := r.ReadByte() //nolint:errcheck // байт уже в буфере
			sb.WriteByte(b)
		case c == '\r':
			next, _, nerr := r.ReadRune()
			if nerr == nil && next != '\n' {
				_ = r.UnreadRune() //nolint:errcheck // сразу после ReadRune
			}
			return sb.String(), "\n", nil
		case isLineBreak(c):
			return sb.String(), string(c), nil
		default:
			sb.WriteRune(c)
		}
	}
}

// lineFilter применяет KeepLineBreak, Strip и SkipEmpty к прочитанной строке.
// ok=false означает, что строку нужно пропустить.
func (o *options) lineFilter(line, brk string) (string, bool) {
	value := line
	if o.strip {
		value = strings.TrimFunc(value, isSpace)
	}
	if o.skipEmpty && value == "" {
		return "", false
	}
	if o.strip || !o.keepLineBreak {
		return value, true
	}
	return line + brk, true
}

// normalizeNewlines приводит "\r\n" и '\r' к '\n'.
func normalizeNewlines(s string) string {
	if !strings.Contains(s, "\r") {
		return s
	}
	return strings.ReplaceAll(strings.ReplaceAll(s, "\r\n", "\n"), "\r", "\n")
}
