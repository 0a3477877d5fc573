package fileio

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/Kargones/textkit/pkg/apperrors"
)

// lookupEncoding находит кодировку по имени. Для UTF-8 возвращается nil:
// байты читаются и пишутся без преобразования.
func lookupEncoding(name string) (encoding.Encoding, error) {
	key := strings.NewReplacer("-", "", "_", "").Replace(strings.ToLower(strings.TrimSpace(name)))
	switch key {
	case "", "utf8":
		return nil, nil
	case "utf8sig":
		return unicode.UTF8BOM, nil
	}

	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		enc, err = htmlindex.Get(name)
	}
	if err != nil || enc == nil {
		return nil, apperrors.NewAppError(apperrors.ErrInvalidArgument,
			fmt.Sprintf("неизвестная кодировка %q", name), err)
	}
	if enc == unicode.UTF8 {
		return nil, nil
	}
	return enc, nil
}

// decodeReader оборачивает r декодером enc.
func decodeReader(r io.Reader, enc encoding.Encoding) io.Reader {
	if enc == nil {
		return r
	}
	return transform.NewReader(r, enc.NewDecoder())
}

// encodeWriter оборачивает w кодировщиком enc. Возвращённый Closer
// сбрасывает незавершённые байты и должен закрываться до закрытия w.
func encodeWriter(w io.Writer, enc encoding.Encoding) (io.Writer, io.Closer) {
	if enc == nil {
		return w, nil
	}
	tw := transform.NewWriter(w, enc.NewEncoder())
	return tw, tw
}

// continueEncoding возвращает вариант enc без BOM для дозаписи в непустой файл:
// BOM уже стоит в начале файла.
func continueEncoding(enc encoding.Encoding) encoding.Encoding {
	switch enc {
	case unicode.UTF8BOM:
		return nil
	case unicode.UTF16(unicode.BigEndian, unicode.UseBOM),
		unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM):
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
	case unicode.UTF16(unicode.LittleEndian, unicode.UseBOM),
		unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM):
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
	}
	return enc
}
