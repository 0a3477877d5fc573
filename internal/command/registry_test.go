package command

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kargones/textkit/internal/di"
)

// mockHandler: тестовый обработчик команды.
type mockHandler struct {
	name       string
	executeErr error
	executeCnt int
}

func (m *mockHandler) Name() string        { return m.name }
func (m *mockHandler) Description() string { return "mock: " + m.name }
func (m *mockHandler) Execute(_ context.Context, _ *di.App) error {
	m.executeCnt++
	return m.executeErr
}

var _ Handler = (*mockHandler)(nil)

func TestRegister_Success(t *testing.T) {
	clearRegistry()

	h := &mockHandler{name: "read-lines"}
	require.NoError(t, Register(h))

	got, ok := Get("read-lines")
	assert.True(t, ok)
	assert.Same(t, h, got)
}

func TestRegister_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler Handler
		wantErr error
	}{
		{"nil handler", nil, ErrNilHandler},
		{"пустое имя", &mockHandler{name: ""}, ErrEmptyName},
		{"пробел", &mockHandler{name: "read lines"}, ErrInvalidName},
		{"заглавные буквы", &mockHandler{name: "ReadLines"}, ErrInvalidName},
		{"начинается с цифры", &mockHandler{name: "1cmd"}, ErrInvalidName},
		{"начинается с дефиса", &mockHandler{name: "-cmd"}, ErrInvalidName},
		{"подчёркивание", &mockHandler{name: "read_lines"}, ErrInvalidName},
		{"завершающий дефис", &mockHandler{name: "cmd-"}, ErrInvalidName},
		{"двойной дефис", &mockHandler{name: "read--lines"}, ErrInvalidName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearRegistry()
			err := Register(tt.handler)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, Names())
		})
	}
}

func TestRegister_ValidNames(t *testing.T) {
	clearRegistry()
	for _, name := range []string{"help", "read-lines", "jsonl-chunks", "v2", "ini-get"} {
		assert.NoError(t, Register(&mockHandler{name: name}), name)
	}
}

func TestRegister_Duplicate(t *testing.T) {
	clearRegistry()

	require.NoError(t, Register(&mockHandler{name: "dup-command"}))
	err := Register(&mockHandler{name: "dup-command"})
	assert.ErrorIs(t, err, ErrDuplicateHandler)
	assert.Contains(t, err.Error(), "dup-command")
}

func TestGet_NotFound(t *testing.T) {
	clearRegistry()

	got, ok := Get("non-existent")
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestAllReturnsCopy(t *testing.T) {
	clearRegistry()
	require.NoError(t, Register(&mockHandler{name: "one"}))

	all := All()
	delete(all, "one")
	all["two"] = &mockHandler{name: "two"}

	_, ok := Get("one")
	assert.True(t, ok)
	_, ok = Get("two")
	assert.False(t, ok)
}

func TestNames_Sorted(t *testing.T) {
	clearRegistry()
	for _, name := range []string{"write-lines", "append-lines", "list-dir"} {
		require.NoError(t, Register(&mockHandler{name: name}))
	}

	assert.Equal(t, []string{"append-lines", "list-dir", "write-lines"}, Names())
}

func TestConcurrentAccess(t *testing.T) {
	clearRegistry()

	const numGoroutines = 50
	var wg sync.WaitGroup
	for i := range numGoroutines {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = Register(&mockHandler{name: fmt.Sprintf("concurrent-cmd-%d", i)})
		}()
		go func() {
			defer wg.Done()
			Get(fmt.Sprintf("concurrent-cmd-%d", i))
		}()
	}
	wg.Wait()

	assert.Len(t, Names(), numGoroutines)
}

func TestRegisterWithAlias(t *testing.T) {
	clearRegistry()

	h := &mockHandler{name: "read-lines"}
	require.NoError(t, RegisterWithAlias(h, "read_lines"))

	got, ok := Get("read-lines")
	require.True(t, ok)
	assert.Same(t, h, got)

	alias, ok := Get("read_lines")
	require.True(t, ok)
	bridge, ok := alias.(*DeprecatedBridge)
	require.True(t, ok)
	assert.Equal(t, "read-lines", bridge.NewName())
	assert.Equal(t, []string{"read-lines", "read_lines"}, Names())
}

func TestRegisterWithAlias_Empty(t *testing.T) {
	clearRegistry()

	require.NoError(t, RegisterWithAlias(&mockHandler{name: "list-dir"}, ""))
	assert.Equal(t, []string{"list-dir"}, Names())
}

func TestRegisterWithAlias_Errors(t *testing.T) {
	t.Run("nil handler", func(t *testing.T) {
		clearRegistry()
		assert.ErrorIs(t, RegisterWithAlias(nil, "x"), ErrNilHandler)
	})

	t.Run("алиас совпадает с именем", func(t *testing.T) {
		clearRegistry()
		err := RegisterWithAlias(&mockHandler{name: "ini-get"}, "ini-get")
		assert.ErrorIs(t, err, ErrAliasSameAsName)
	})

	t.Run("алиас уже занят", func(t *testing.T) {
		clearRegistry()
		require.NoError(t, Register(&mockHandler{name: "taken"}))
		err := RegisterWithAlias(&mockHandler{name: "ini-set"}, "taken")
		assert.ErrorIs(t, err, ErrDuplicateHandler)
	})
}

func TestListAllWithAliases(t *testing.T) {
	clearRegistry()

	require.NoError(t, RegisterWithAlias(&mockHandler{name: "write-lines"}, "write_lines"))
	require.NoError(t, Register(&mockHandler{name: "help"}))
	require.NoError(t, RegisterWithAlias(&mockHandler{name: "append-lines"}, "append_lines"))

	assert.Equal(t, []Info{
		{Name: "append-lines", DeprecatedAlias: "append_lines"},
		{Name: "help"},
		{Name: "write-lines", DeprecatedAlias: "write_lines"},
	}, ListAllWithAliases())
}
