package testutil

import (
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCaptureStdout(t *testing.T) {
	orig := os.Stdout
	out := CaptureStdout(t, func() {
		fmt.Print("read-lines: success\n")
	})
	assert.Equal(t, "read-lines: success\n", out)
	assert.Same(t, orig, os.Stdout, "stdout должен быть восстановлен")
}

func TestCaptureStdout_LargerThanPipeBuffer(t *testing.T) {
	line := strings.Repeat("x", 1023) + "\n"
	out := CaptureStdout(t, func() {
		for range 256 {
			fmt.Print(line)
		}
	})
	assert.Len(t, out, 256*1024)
}

func TestCaptureOutput_SeparatesStreams(t *testing.T) {
	origOut, origErr := os.Stdout, os.Stderr
	stdout, stderr := CaptureOutput(t, func() {
		fmt.Fprint(os.Stdout, "data\n")
		fmt.Fprint(os.Stderr, "WARNING: deprecated\n")
	})
	assert.Equal(t, "data\n", stdout)
	assert.Equal(t, "WARNING: deprecated\n", stderr)
	assert.Same(t, origOut, os.Stdout)
	assert.Same(t, origErr, os.Stderr)
}

func TestCaptureStderr_RestoredOnPanic(t *testing.T) {
	orig := os.Stderr
	t.Run("panic", func(t *testing.T) {
		defer func() { _ = recover() }()
		CaptureStderr(t, func() { panic("boom") })
	})
	assert.Same(t, orig, os.Stderr)
}
