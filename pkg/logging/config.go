package logging

// Поддерживаемые форматы вывода логов.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// Поддерживаемые уровни логирования.
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// Поддерживаемые типы вывода логов.
const (
	OutputStderr = "stderr"
	OutputFile   = "file"
)

// Значения по умолчанию для Config.
// Используются в ProvideLogger и в config.getDefaultLoggingConfig.
const (
	DefaultLevel      = LevelInfo
	DefaultFormat     = FormatText
	DefaultOutput     = OutputStderr
	DefaultFilePath   = "/var/log/textkit.log"
	DefaultMaxSize    = 100 // MB
	DefaultMaxBackups = 3
	DefaultMaxAge     = 7 // days
	DefaultCompress   = true
)

// DefaultConfig возвращает Config со значениями по умолчанию.
func DefaultConfig() Config {
	return Config{
		Level:      DefaultLevel,
		Format:     DefaultFormat,
		Output:     DefaultOutput,
		FilePath:   DefaultFilePath,
		MaxSize:    DefaultMaxSize,
		MaxBackups: DefaultMaxBackups,
		MaxAge:     DefaultMaxAge,
		Compress:   DefaultCompress,
	}
}

// Config содержит настройки логирования.
type Config struct {
	// Format: "json" или "text". По умолчанию "text".
	Format string

	// Level: минимальный уровень: "debug", "info", "warn", "error".
	Level string

	// Output: "stderr" или "file".
	Output string

	// FilePath: путь к файлу логов при Output="file".
	FilePath string

	// MaxSize: размер файла в мегабайтах до ротации.
	MaxSize int

	// MaxBackups: сколько старых файлов хранить.
	MaxBackups int

	// MaxAge: сколько дней хранить старые файлы.
	MaxAge int

	// Compress: сжимать ли старые файлы в gzip.
	Compress bool
}
