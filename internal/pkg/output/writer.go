package output

import "io"

// Writer форматирует результат команды и пишет его в w.
// Реализации: JSONWriter, TextWriter.
type Writer interface {
	Write(w io.Writer, result *Result) error
}

// TextRenderer реализуют payload-ы, у которых есть собственный текстовый вид,
// например строки файла, которые печатаются как есть.
type TextRenderer interface {
	WriteText(w io.Writer) error
}
