package testutil

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// CaptureStdout выполняет fn и возвращает всё, что команды напечатали в stdout.
func CaptureStdout(t *testing.T, fn func()) string {
	t.Helper()
	stop := redirect(t, &os.Stdout)
	fn()
	return stop()
}

// CaptureStderr выполняет fn и возвращает вывод в stderr: логи до
// инициализации приложения и предупреждения deprecated-алиасов.
func CaptureStderr(t *testing.T, fn func()) string {
	t.Helper()
	stop := redirect(t, &os.Stderr)
	fn()
	return stop()
}

// CaptureOutput перехватывает stdout и stderr одного вызова fn.
func CaptureOutput(t *testing.T, fn func()) (stdout, stderr string) {
	t.Helper()
	stopErr := redirect(t, &os.Stderr)
	stopOut := redirect(t, &os.Stdout)
	fn()
	stdout = stopOut()
	stderr = stopErr()
	return stdout, stderr
}

// redirect подменяет *target концом pipe. Pipe вычитывается параллельно,
// поэтому вывод больше буфера pipe не блокирует fn. Возвращённая функция
// восстанавливает *target и отдаёт накопленный вывод.
func redirect(t *testing.T, target **os.File) func() string {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err, "не удалось создать pipe")

	orig := *target
	*target = w

	done := make(chan []byte, 1)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r) //nolint:errcheck // pipe закрывается вызывающей стороной
		done <- buf.Bytes()
	}()

	restored := false
	restore := func() string {
		if restored {
			return ""
		}
		restored = true
		*target = orig
		_ = w.Close() //nolint:errcheck // test helper pipe close
		out := <-done
		_ = r.Close() //nolint:errcheck // test helper pipe close
		return string(out)
	}
	t.Cleanup(func() { restore() })
	return restore
}
