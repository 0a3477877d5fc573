package apperrors

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCodeConstants(t *testing.T) {
	tests := []struct {
		name     string
		constant string
		expected string
	}{
		{"ErrNotFound", ErrNotFound, "IO.NOT_FOUND"},
		{"ErrIO", ErrIO, "IO.FAILED"},
		{"ErrInvalidArgument", ErrInvalidArgument, "ARG.INVALID"},
		{"ErrTypeMismatch", ErrTypeMismatch, "TYPE.MISMATCH"},
		{"ErrSerialization", ErrSerialization, "JSON.SERIALIZE_FAILED"},
		{"ErrDecode", ErrDecode, "JSON.DECODE_FAILED"},
		{"ErrINIKeyNotFound", ErrINIKeyNotFound, "INI.NOT_FOUND"},
		{"ErrConfigLoad", ErrConfigLoad, "CONFIG.LOAD_FAILED"},
		{"ErrCommandNotFound", ErrCommandNotFound, "COMMAND.NOT_FOUND"},
		{"ErrOutputFormat", ErrOutputFormat, "OUTPUT.FORMAT_FAILED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.constant)
		})
	}
}

func TestAppError_Error_WithCause(t *testing.T) {
	cause := errors.New("оригинальная ошибка")
	appErr := &AppError{
		Code:    ErrNotFound,
		Message: "файл не найден: data.txt",
		Cause:   cause,
	}

	expected := "IO.NOT_FOUND: файл не найден: data.txt (оригинальная ошибка)"
	assert.Equal(t, expected, appErr.Error())
}

func TestAppError_Error_WithoutCause(t *testing.T) {
	appErr := InvalidArgument("no lines to write")
	assert.Equal(t, "ARG.INVALID: no lines to write", appErr.Error())
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("оригинальная ошибка")
	appErr := NewAppError(ErrIO, "ошибка записи", cause)
	assert.Equal(t, cause, appErr.Unwrap())
	assert.Nil(t, InvalidArgument("x").Unwrap())
}

func TestNotFound_KeepsFsErrNotExist(t *testing.T) {
	err := NotFound("missing.txt", fmt.Errorf("open missing.txt: %w", fs.ErrNotExist))

	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.True(t, IsCode(err, ErrNotFound))
	assert.False(t, IsCode(err, ErrInvalidArgument))
}

func TestIsCode_ThroughWrapping(t *testing.T) {
	err := fmt.Errorf("read-lines: %w", TypeMismatch("items не итерируемый"))

	assert.True(t, IsCode(err, ErrTypeMismatch))
	assert.Equal(t, ErrTypeMismatch, Code(err))
	assert.Equal(t, "", Code(errors.New("plain")))
	assert.False(t, IsCode(nil, ErrTypeMismatch))
}

func TestAppError_Is_ComparesCodeOnly(t *testing.T) {
	a := Serialization("первое", nil)
	b := Serialization("второе", errors.New("x"))

	assert.True(t, errors.Is(a, b))
	assert.False(t, errors.Is(a, InvalidArgument("первое")))
}

func TestNewAppError(t *testing.T) {
	cause := errors.New("оригинальная ошибка")
	appErr := NewAppError(ErrConfigLoad, "не удалось загрузить конфигурацию", cause)

	require.NotNil(t, appErr)
	assert.Equal(t, ErrConfigLoad, appErr.Code)
	assert.Equal(t, "не удалось загрузить конфигурацию", appErr.Message)
	assert.Equal(t, cause, appErr.Cause)
}

func TestAppError_JSON_Serialization(t *testing.T) {
	appErr := NewAppError(ErrSerialization, "значение не сериализуется", errors.New("complex128"))

	data, err := json.Marshal(appErr)
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(data, &parsed))

	assert.Equal(t, ErrSerialization, parsed["code"])
	assert.Equal(t, "значение не сериализуется", parsed["message"])

	// Cause не должен сериализоваться (json:"-")
	_, hasCause := parsed["cause"]
	assert.False(t, hasCause, "Cause не должен сериализоваться в JSON")
}
