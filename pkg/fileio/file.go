package fileio

import (
	"bufio"
	"errors"
	"io"
	"iter"
	"os"
	"runtime"

	"golang.org/x/text/encoding"

	"github.com/Kargones/textkit/pkg/apperrors"
	"github.com/Kargones/textkit/pkg/filer"
)

// Mode: режим, в котором открыт дескриптор хендла.
type Mode int

const (
	ModeClosed Mode = iota
	ModeRead
	ModeWrite
	ModeAppend
)

// String возвращает имя режима для логов.
func (m Mode) String() string {
	switch m {
	case ModeClosed:
		return "closed"
	case ModeRead:
		return "read"
	case ModeWrite:
		return "write"
	case ModeAppend:
		return "append"
	default:
		return "unknown"
	}
}

// descriptor владеет открытым файлом и его буферами.
// Вынесен из TextFile, чтобы runtime.AddCleanup мог закрыть файл
// без ссылки на сам хендл.
type descriptor struct {
	mode   Mode
	file   filer.File
	reader *bufio.Reader
	writer *bufio.Writer
	encW   io.Closer
}

// close сбрасывает буферы и закрывает файл. Повторный вызов ничего не делает.
func (d *descriptor) close() error {
	if d.file == nil {
		d.mode = ModeClosed
		return nil
	}
	var errs []error
	if d.writer != nil {
		errs = append(errs, d.writer.Flush())
	}
	if d.encW != nil {
		errs = append(errs, d.encW.Close())
	}
	errs = append(errs, d.file.Close())

	d.mode, d.file, d.reader, d.writer, d.encW = ModeClosed, nil, nil, nil, nil
	return errors.Join(errs...)
}

// TextFile: хендл текстового файла, который сам открывает файл в нужном
// режиме и переоткрывает его при смене режима. Одновременно открыт не более
// одного дескриптора.
//
// Переход в чтение всегда открывает файл заново, поэтому повторное чтение
// начинается с начала. Переход в запись или добавление переоткрывает файл,
// только если текущий режим отличается.
//
// TextFile не безопасен для одновременного использования из нескольких горутин.
// Закрывайте хендл явно; очистка при сборке мусора только страхует от утечки.
type TextFile struct {
	path string
	opts options
	enc  encoding.Encoding
	d    *descriptor
}

// NewTextFile создаёт хендл для path. Файл открывается лениво при первой операции.
// С WithRemove(true) существующий файл удаляется сразу.
func NewTextFile(path string, opts ...Option) (*TextFile, error) {
	o := newOptions(opts)
	if o.err != nil {
		return nil, o.err
	}
	if path == "" {
		return nil, apperrors.InvalidArgument("путь к файлу не задан")
	}
	enc, err := lookupEncoding(o.encoding)
	if err != nil {
		return nil, err
	}

	tf := &TextFile{path: path, opts: o, enc: enc, d: &descriptor{}}
	if o.removeFirst {
		if err := tf.remove(); err != nil {
			return nil, err
		}
	}
	runtime.AddCleanup(tf, func(d *descriptor) { _ = d.close() }, tf.d) //nolint:errcheck // ошибку закрытия некому вернуть
	return tf, nil
}

// Path возвращает путь файла.
func (f *TextFile) Path() string { return f.path }

// Mode возвращает текущий режим дескриптора.
func (f *TextFile) Mode() Mode { return f.d.mode }

// Close закрывает дескриптор. Повторный вызов безопасен.
func (f *TextFile) Close() error {
	if f.d.mode != ModeClosed {
		f.opts.logger.Debug("Файл закрыт", "path", f.path, "mode", f.d.mode.String())
	}
	if err := f.d.close(); err != nil {
		return apperrors.NewAppError(apperrors.ErrIO, "не удалось закрыть файл: "+f.path, err)
	}
	return nil
}

func (f *TextFile) remove() error {
	err := f.opts.fs.Remove(f.path)
	if err == nil || f.opts.fs.IsNotExist(err) {
		return nil
	}
	return apperrors.NewAppError(apperrors.ErrIO, "не удалось удалить файл: "+f.path, err)
}

// switchMode переводит хендл в режим target.
func (f *TextFile) switchMode(target Mode) error {
	if target != ModeRead && target == f.d.mode {
		return nil
	}
	from := f.d.mode
	if err := f.d.close(); err != nil {
		return apperrors.NewAppError(apperrors.ErrIO, "не удалось закрыть файл: "+f.path, err)
	}
	if target == ModeClosed {
		return nil
	}

	var flag int
	switch target {
	case ModeRead:
		flag = os.O_RDONLY
	case ModeWrite:
		flag = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	case ModeAppend:
		flag = os.O_WRONLY | os.O_CREATE | os.O_APPEND
	default:
		return apperrors.InvalidArgument("неизвестный режим: " + target.String())
	}

	file, err := f.opts.fs.OpenFile(f.path, flag, filer.FileMode)
	if err != nil {
		if f.opts.fs.IsNotExist(err) {
			return apperrors.NotFound(f.path, err)
		}
		return apperrors.NewAppError(apperrors.ErrIO, "не удалось открыть файл: "+f.path, err)
	}

	f.d.file, f.d.mode = file, target
	if target == ModeRead {
		f.d.reader = bufio.NewReader(decodeReader(file, f.enc))
	} else {
		enc := f.enc
		if target == ModeAppend && f.nonEmpty() {
			enc = continueEncoding(enc)
		}
		w, encCloser := encodeWriter(file, enc)
		f.d.writer, f.d.encW = bufio.NewWriter(w), encCloser
	}
	f.opts.logger.Debug("Смена режима файла", "path", f.path, "from", from.String(), "to", target.String())
	return nil
}

func (f *TextFile) nonEmpty() bool {
	info, err := f.opts.fs.Stat(f.path)
	return err == nil && info.Size() > 0
}

// writeIn переключает режим и записывает chunks, сбрасывая буфер после каждого.
// Каждый chunk фиксируется отдельно: ошибка на середине оставляет
// записанными предыдущие.
func (f *TextFile) writeIn(mode Mode, chunks ...string) error {
	if err := f.switchMode(mode); err != nil {
		return err
	}
	for _, s := range chunks {
		if _, err := f.d.writer.WriteString(s); err != nil {
			return apperrors.NewAppError(apperrors.ErrIO, "не удалось записать файл: "+f.path, err)
		}
		if err := f.d.writer.Flush(); err != nil {
			return apperrors.NewAppError(apperrors.ErrIO, "не удалось записать файл: "+f.path, err)
		}
	}
	return nil
}

// Read возвращает весь текст файла с переводами строк, приведёнными к '\n'.
func (f *TextFile) Read() (string, error) {
	if err := f.switchMode(ModeRead); err != nil {
		return "", err
	}
	data, err := io.ReadAll(f.d.reader)
	if err != nil {
		return "", apperrors.NewAppError(apperrors.ErrIO, "не удалось прочитать файл: "+f.path, err)
	}
	return normalizeNewlines(string(data)), nil
}

// Lines лениво читает строки файла с начала. Каждый запуск range открывает файл заново.
// Опции переопределяют KeepLineBreak, Strip и SkipEmpty хендла.
func (f *TextFile) Lines(opts ...Option) iter.Seq2[string, error] {
	o := f.opts
	for _, opt := range opts {
		opt(&o)
	}
	return func(yield func(string, error) bool) {
		if err := f.switchMode(ModeRead); err != nil {
			yield("", err)
			return
		}
		r := f.d.reader
		for {
			line, brk, err := readLine(r)
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield("", apperrors.NewAppError(apperrors.ErrIO, "не удалось прочитать файл: "+f.path, err))
				return
			}
			if v, ok := o.lineFilter(line, brk); ok && !yield(v, nil) {
				return
			}
		}
	}
}

// ReadLines читает все строки файла.
func (f *TextFile) ReadLines(opts ...Option) ([]string, error) {
	lines := []string{}
	for line, err := range f.Lines(opts...) {
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// Write перезаписывает файл текстом при первом переходе в запись;
// последующие вызовы в том же режиме дописывают текст.
func (f *TextFile) Write(text string) error {
	return f.writeIn(ModeWrite, text)
}

// WriteLines пишет строки, добавляя '\n' к строкам без завершающего перевода строки.
func (f *TextFile) WriteLines(lines []string) error {
	return f.writeIn(ModeWrite, withLineBreaks(lines)...)
}

// Append дописывает текст в конец файла.
func (f *TextFile) Append(text string) error {
	return f.writeIn(ModeAppend, text)
}

// AppendLine дописывает строку и '\n', если строка им не заканчивается.
func (f *TextFile) AppendLine(line string) error {
	return f.writeIn(ModeAppend, ensureNewline(line))
}

// AppendLines дописывает строки по одной. Добавление не атомарно:
// при ошибке уже записанные строки остаются в файле.
func (f *TextFile) AppendLines(lines []string) error {
	for _, line := range lines {
		if err := f.AppendLine(line); err != nil {
			return err
		}
	}
	return nil
}

func ensureNewline(line string) string {
	if len(line) > 0 && line[len(line)-1] == '\n' {
		return line
	}
	return line + "\n"
}

func withLineBreaks(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		if endsWithLineBreak(line) {
			out[i] = line
		} else {
			out[i] = line + "\n"
		}
	}
	return out
}
