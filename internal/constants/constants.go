// Package constants содержит константы CLI textkit.
// Константы сгруппированы по назначению.
package constants

// Константы сообщений приложения
const (
	// MsgAppExit - сообщение о завершении работы программы
	MsgAppExit = "Завершение работы программы"
	// MsgErrProcessing - ключ лога при обработке ошибки
	MsgErrProcessing = "Обработка ошибки"
)

// Константы действий (команд)
const (
	// ActHelp - список команд
	ActHelp = "help"
	// ActVersion - версия приложения
	ActVersion = "version"
	// ActReadLines - чтение текстового файла построчно
	ActReadLines = "read-lines"
	// ActWriteLines - перезапись файла строками
	ActWriteLines = "write-lines"
	// ActAppendLines - добавление строк в конец файла
	ActAppendLines = "append-lines"
	// ActJSONLChunks - чтение JSONL файла чанками
	ActJSONLChunks = "jsonl-chunks"
	// ActJSONLAppend - добавление записей в JSONL файл
	ActJSONLAppend = "jsonl-append"
	// ActINIGet - чтение INI файла
	ActINIGet = "ini-get"
	// ActINISet - запись ключа в INI файл
	ActINISet = "ini-set"
	// ActListDir - список файлов директории
	ActListDir = "list-dir"
	// ActJSONLIndex - индекс записей JSONL по полю
	ActJSONLIndex = "jsonl-index"
	// ActJSONLToJSON - преобразование JSONL в JSON-массив
	ActJSONLToJSON = "jsonl-to-json"
	// ActJSONToJSONL - преобразование JSON-массива в JSONL
	ActJSONToJSONL = "json-to-jsonl"
)

// Прежние snake_case имена команд, сохранённые как deprecated-алиасы.
const (
	AliasReadLines      = "read_lines"
	AliasWriteLines     = "write_lines"
	AliasAppendLines    = "append_lines"
	AliasJSONLineChunks = "get_jsonline_chunk"
	AliasAppendJSONL    = "append_jsonlines"
	AliasReadINI        = "read_ini"
	AliasWriteINI       = "write_ini"
)

// Константы API
const (
	// APIVersion - версия формата JSON-вывода
	APIVersion = "v1"
	// AppName - имя приложения в выводе и метаданных
	AppName = "textkit"
)

// Коды завершения процесса.
const (
	ExitOK            = 0
	ExitCommandFailed = 1
	ExitUsage         = 2
	ExitConfig        = 5
)

// Переменные окружения режимов выполнения
const (
	// EnvDryRun - TK_DRY_RUN=true: изменяющие команды выводят план без записи
	EnvDryRun = "TK_DRY_RUN"
)
