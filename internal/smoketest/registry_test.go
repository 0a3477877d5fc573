package smoketest

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kargones/textkit/internal/command"
	"github.com/Kargones/textkit/internal/command/handlers"
	"github.com/Kargones/textkit/internal/constants"
)

func init() {
	if err := handlers.RegisterAll(); err != nil {
		panic("smoketest: failed to register handlers: " + err.Error())
	}
}

var allCommands = []string{
	constants.ActHelp,
	constants.ActVersion,
	constants.ActReadLines,
	constants.ActWriteLines,
	constants.ActAppendLines,
	constants.ActJSONLChunks,
	constants.ActJSONLAppend,
	constants.ActINIGet,
	constants.ActINISet,
	constants.ActListDir,
	constants.ActJSONLIndex,
	constants.ActJSONLToJSON,
	constants.ActJSONToJSONL,
}

var deprecatedAliases = []struct {
	deprecated string
	newName    string
}{
	{constants.AliasReadLines, constants.ActReadLines},
	{constants.AliasWriteLines, constants.ActWriteLines},
	{constants.AliasAppendLines, constants.ActAppendLines},
	{constants.AliasJSONLineChunks, constants.ActJSONLChunks},
	{constants.AliasAppendJSONL, constants.ActJSONLAppend},
	{constants.AliasReadINI, constants.ActINIGet},
	{constants.AliasWriteINI, constants.ActINISet},
}

var kebabCase = regexp.MustCompile(`^[a-z][a-z0-9]*(-[a-z0-9]+)*$`)

func TestSmoke_AllCommandsRegistered(t *testing.T) {
	for _, name := range allCommands {
		t.Run(name, func(t *testing.T) {
			h, ok := command.Get(name)
			require.True(t, ok, "команда %s должна быть зарегистрирована", name)
			assert.Equal(t, name, h.Name())
			assert.NotEmpty(t, h.Description())
			assert.Regexp(t, kebabCase, h.Name())

			_, isBridge := h.(*command.DeprecatedBridge)
			assert.False(t, isBridge, "основное имя не должно быть deprecated")
		})
	}
}

func TestSmoke_DeprecatedAliases(t *testing.T) {
	for _, tt := range deprecatedAliases {
		t.Run(tt.deprecated, func(t *testing.T) {
			h, ok := command.Get(tt.deprecated)
			require.True(t, ok)

			dep, ok := h.(command.Deprecatable)
			require.True(t, ok, "%s должен реализовывать Deprecatable", tt.deprecated)
			assert.True(t, dep.IsDeprecated())
			assert.Equal(t, tt.newName, dep.NewName())

			actual, ok := command.Get(dep.NewName())
			require.True(t, ok, "алиас указывает на незарегистрированную команду")
			assert.Equal(t, actual.Description(), h.Description())
		})
	}
}

func TestSmoke_RegistryIsComplete(t *testing.T) {
	infos := command.ListAllWithAliases()

	names := make([]string, 0, len(infos))
	for _, info := range infos {
		names = append(names, info.Name)
	}
	assert.ElementsMatch(t, allCommands, names, "в реестре не должно быть лишних команд")
	assert.Len(t, command.Names(), len(allCommands)+len(deprecatedAliases))
}
