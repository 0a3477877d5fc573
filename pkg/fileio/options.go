// Package fileio читает и пишет текстовые файлы построчно, файлы JSON Lines,
// JSON и INI. Свободные функции создают временный хендл на одну операцию;
// TextFile и JSONLineFile держат дескриптор между вызовами и сами меняют режим.
package fileio

import (
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/Kargones/textkit/pkg/apperrors"
	"github.com/Kargones/textkit/pkg/filer"
	"github.com/Kargones/textkit/pkg/jsonsafe"
	"github.com/Kargones/textkit/pkg/logging"
)

// DefaultEncoding: кодировка текста по умолчанию.
const DefaultEncoding = "utf-8"

// options собирает настройки всех операций пакета.
// Каждая операция читает только относящиеся к ней поля.
type options struct {
	// чтение строк
	keepLineBreak bool
	strip         bool
	skipEmpty     bool

	// общие
	encoding string
	fs       filer.FileSystem
	logger   logging.Logger

	// JSON
	serializer jsonsafe.Hook
	schemaPath string

	// добавление и конструктор хендла
	removeFirst bool

	// ListDir
	suffix    string
	recursive bool
	filesOnly bool

	// первая ошибка, обнаруженная при применении опций
	err error
}

// Option настраивает операции чтения, записи и хендлы файлов.
type Option func(*options)

var (
	defaultFSOnce sync.Once
	defaultFS     filer.FileSystem
)

// DefaultFileSystem возвращает дисковую файловую систему без ограничения корнем.
func DefaultFileSystem() filer.FileSystem {
	defaultFSOnce.Do(func() {
		dfs, err := filer.NewDiskFileSystem(filer.DefaultConfig())
		if err != nil {
			panic(fmt.Sprintf("fileio: дисковая файловая система недоступна: %v", err))
		}
		defaultFS = dfs
	})
	return defaultFS
}

func newOptions(opts []Option) options {
	o := options{encoding: DefaultEncoding}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.fs == nil {
		o.fs = DefaultFileSystem()
	}
	if o.logger == nil {
		o.logger = logging.NewNopLogger()
	}
	return o
}

// KeepLineBreak сохраняет завершающий перевод строки в каждой прочитанной строке.
func KeepLineBreak() Option {
	return func(o *options) { o.keepLineBreak = true }
}

// Strip обрезает пробельные символы в начале и в конце каждой строки.
func Strip() Option {
	return func(o *options) { o.strip = true }
}

// SkipEmpty пропускает строки, пустые после обработки переводов строк и Strip.
func SkipEmpty() Option {
	return func(o *options) { o.skipEmpty = true }
}

// WithEncoding задаёт кодировку текста по имени IANA или WHATWG ("utf-8", "windows-1251", "koi8-r").
func WithEncoding(name string) Option {
	return func(o *options) {
		if strings.TrimSpace(name) != "" {
			o.encoding = name
		}
	}
}

// WithFS задаёт файловую систему. По умолчанию используется диск.
func WithFS(fs filer.FileSystem) Option {
	return func(o *options) { o.fs = fs }
}

// WithLogger задаёт логгер для предупреждений и смены режимов хендла.
func WithLogger(l logging.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithSerializer задаёт хук для значений, которые encoding/json не кодирует.
// Хук вызывается только после неудачи кодировщика по умолчанию.
func WithSerializer(hook func(any) (string, error)) Option {
	return func(o *options) { o.serializer = hook }
}

// WithSchema включает проверку каждой прочитанной записи JSON-схемой из файла path.
func WithSchema(path string) Option {
	return func(o *options) { o.schemaPath = path }
}

// RemoveFirst удаляет файл назначения перед добавлением строк или записей.
func RemoveFirst() Option {
	return func(o *options) { o.removeFirst = true }
}

// WithRemove удаляет существующий файл при создании хендла.
func WithRemove(remove bool) Option {
	return func(o *options) { o.removeFirst = remove }
}

// WithRemoveFlag принимает флаг удаления произвольного типа, например из
// разобранной конфигурации. Значение не типа bool даёт ARG.INVALID при создании хендла.
func WithRemoveFlag(flag any) Option {
	return func(o *options) {
		b, ok := flag.(bool)
		if !ok {
			if o.err == nil {
				o.err = apperrors.InvalidArgument(fmt.Sprintf("флаг удаления должен быть bool, получено %T", flag))
			}
			return
		}
		o.removeFirst = b
	}
}

// WithSuffix оставляет в ListDir только имена с суффиксом suffix.
func WithSuffix(suffix string) Option {
	return func(o *options) { o.suffix = suffix }
}

// Recursive включает обход поддиректорий в ListDir.
func Recursive() Option {
	return func(o *options) { o.recursive = true }
}

// FilesOnly исключает директории из результата ListDir.
func FilesOnly() Option {
	return func(o *options) { o.filesOnly = true }
}

// compileSchema загружает JSON-схему через файловую систему операции.
func (o *options) compileSchema() (*jsonschema.Schema, error) {
	if o.schemaPath == "" {
		return nil, nil
	}
	data, err := o.fs.ReadFile(o.schemaPath)
	if err != nil {
		if o.fs.IsNotExist(err) {
			return nil, apperrors.NotFound(o.schemaPath, err)
		}
		return nil, apperrors.NewAppError(apperrors.ErrIO, "не удалось прочитать схему: "+o.schemaPath, err)
	}
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(string(data)))
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrDecode, "схема не является JSON: "+o.schemaPath, err)
	}

	c := jsonschema.NewCompiler()
	url := "file:///" + strings.TrimLeft(o.schemaPath, "/")
	if err := c.AddResource(url, doc); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrDecode, "не удалось загрузить схему: "+o.schemaPath, err)
	}
	sch, err := c.Compile(url)
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrDecode, "не удалось скомпилировать схему: "+o.schemaPath, err)
	}
	return sch, nil
}
