// Package smoketest содержит smoke-тесты системной целостности textkit.
//
// Smoke-тесты проверяют:
//   - Регистрацию всех команд и устаревших имён в глобальном реестре
//   - Валидность Name() и Description() каждого handler
//   - Что каждая команда отвечает структурированным JSON по схеме Result
//
// Unit-тесты отдельных команд находятся в handler_test.go каждого handler-пакета.
package smoketest
