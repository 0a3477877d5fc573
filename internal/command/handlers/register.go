// Package handlers provides explicit registration of all command handlers.
// Registration is explicit rather than init()-based, so the dependency graph
// stays visible and importing a handler package has no side effects.
package handlers

import (
	"github.com/Kargones/textkit/internal/command/handlers/appendlineshandler"
	"github.com/Kargones/textkit/internal/command/handlers/help"
	"github.com/Kargones/textkit/internal/command/handlers/inigethandler"
	"github.com/Kargones/textkit/internal/command/handlers/inisethandler"
	"github.com/Kargones/textkit/internal/command/handlers/jsonlappendhandler"
	"github.com/Kargones/textkit/internal/command/handlers/jsonlchunkshandler"
	"github.com/Kargones/textkit/internal/command/handlers/jsonlindexhandler"
	"github.com/Kargones/textkit/internal/command/handlers/jsonltojsonhandler"
	"github.com/Kargones/textkit/internal/command/handlers/jsontojsonlhandler"
	"github.com/Kargones/textkit/internal/command/handlers/listdirhandler"
	"github.com/Kargones/textkit/internal/command/handlers/readlineshandler"
	"github.com/Kargones/textkit/internal/command/handlers/version"
	"github.com/Kargones/textkit/internal/command/handlers/writelineshandler"
)

// registrations lists every handler's RegisterCmd in help order.
var registrations = []func() error{
	help.RegisterCmd,
	version.RegisterCmd,
	readlineshandler.RegisterCmd,
	writelineshandler.RegisterCmd,
	appendlineshandler.RegisterCmd,
	jsonlchunkshandler.RegisterCmd,
	jsonlappendhandler.RegisterCmd,
	jsonlindexhandler.RegisterCmd,
	jsonltojsonhandler.RegisterCmd,
	jsontojsonlhandler.RegisterCmd,
	inigethandler.RegisterCmd,
	inisethandler.RegisterCmd,
	listdirhandler.RegisterCmd,
}

// RegisterAll explicitly registers all command handlers in the global registry.
// Call this once from main() before using any commands.
// Returns the first registration error.
func RegisterAll() error {
	for _, register := range registrations {
		if err := register(); err != nil {
			return err
		}
	}
	return nil
}
