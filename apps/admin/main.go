package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/JaMeS-18-18/ForPluto/core"
	"github.com/JaMeS-18-18/ForPluto/core/roster"
	exportsvc "github.com/JaMeS-18-18/ForPluto/services/export"
	logsvc "github.com/JaMeS-18-18/ForPluto/services/logger"
	sharesvc "github.com/JaMeS-18-18/ForPluto/services/share"
	"github.com/JaMeS-18-18/ForPluto/storage"
	"github.com/JaMeS-18-18/ForPluto/storage/database"
)

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	conf, err := core.NewConfig()
	if err != nil {
		log.Printf("error: %s", err)
		return 1
	}
	// logs go to stderr, command output to stdout
	logger := logsvc.New(os.Stderr, "ROSTER : ", conf)
	defer logger.Close()

	cli := commandLine{conf: conf, out: os.Stdout}
	if len(args) > 1 && args[1] == "migrate" {
		if conf.Store.Driver == database.DriverSQLite || conf.Store.Driver == database.DriverPostgres {
			db, err := database.Open(conf.Store)
			if err != nil {
				logger.Error("opening database", err)
				return 1
			}
			defer db.Close()
			cli.db = db
		}
	} else {
		kv, err := storage.Open(conf.Store)
		if err != nil {
			logger.Error("opening store", err)
			return 1
		}
		defer kv.Close()

		cli.svc = roster.NewService(roster.NewStore(kv, conf.Store.Key, logger), logger)
		cli.svc.Init(context.Background())
		if conf.TestMode {
			cli.shareSvc = sharesvc.NewConsoleService(logger)
		} else {
			cli.shareSvc = sharesvc.NewBrowserService(logger)
		}
		cli.exportSvc = exportsvc.NewFileService(conf.Export.Dir)
	}

	if err := cli.run(args); err != nil {
		if err != errHelp {
			fmt.Fprintf(os.Stderr, "error: %s\n", err)
		}
		return 1
	}
	return 0
}
