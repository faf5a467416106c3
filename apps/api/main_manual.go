package main

import (
	"context"
	"log"
	"os"

	echoapi "github.com/JaMeS-18-18/ForPluto/apps/api/echo"
	"github.com/JaMeS-18-18/ForPluto/core"
	"github.com/JaMeS-18-18/ForPluto/core/roster"
	logsvc "github.com/JaMeS-18-18/ForPluto/services/logger"
	sharesvc "github.com/JaMeS-18-18/ForPluto/services/share"
	"github.com/JaMeS-18-18/ForPluto/storage"
)

func startManual() {
	// =========================================================================
	// Set up Dependencies

	conf, err := core.NewConfig()
	if err != nil {
		log.Fatal(err)
	}

	// set up loggers
	logger := logsvc.New(os.Stdout, "API : ", conf)
	defer logger.Close()
	storeLogger := logsvc.New(os.Stdout, "STORE : ", conf)

	// set up store
	kv, err := storage.Open(conf.Store)
	if err != nil {
		logger.Fatal("opening store: "+err.Error(), err)
	}

	// set up services
	var shareSvc core.ShareService
	if conf.TestMode {
		shareSvc = sharesvc.NewConsoleService(logger)
	} else {
		shareSvc = sharesvc.NewBrowserService(logger)
	}
	rosterSvc := roster.NewService(roster.NewStore(kv, conf.Store.Key, storeLogger), logger)
	rosterSvc.Init(context.Background())

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(&echoapi.Options{
		Address:        conf.Server.Address,
		Debug:          conf.Debug,
		TestMode:       conf.TestMode,
		DisableReqLogs: conf.Server.DisableReqLogs,
		AppName:        conf.AppName,
		Logger:         logger,
		RosterSvc:      rosterSvc,
		ShareSvc:       shareSvc,
		Share:          conf.Share,
		Export:         conf.Export,
	})
	serve(conf, logger, kv, server)
}
