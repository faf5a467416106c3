package main

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/JaMeS-18-18/ForPluto/storage/database"
)

var (
	runMigrationsFunc = database.RunMigrations // mockable

	errNoSQLStore = errors.New("migrate needs a SQL store (store.driver: sqlite or postgres)")

	migrateCommands = map[string]bool{
		"up": true, "up-by-one": true, "up-to": true,
		"down": true, "down-to": true,
		"redo": true, "reset": true, "status": true, "version": true,
	}
)

func (cli *commandLine) migrate(args []string) error {
	if len(args) == 0 || !migrateCommands[args[0]] {
		fmt.Fprintln(cli.out, "Usage:")
		fmt.Fprintln(cli.out, "  migrate up|up-by-one|up-to VERSION|down|down-to VERSION|redo|reset|status|version")
		return errHelp
	}
	if cli.db == nil {
		return errNoSQLStore
	}
	return runMigrationsFunc(cli.db, args[0], args[1:]...)
}
