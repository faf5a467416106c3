package main

import (
	"context"
	"flag"
	"fmt"

	echoapi "github.com/JaMeS-18-18/ForPluto/apps/api/echo"
	"github.com/JaMeS-18-18/ForPluto/core"
)

func main() {
	manual := flag.Bool("manual", false, "wire the dependencies by hand instead of using the dig container")
	flag.Parse()

	if *manual {
		startManual()
		return
	}
	startWithDig()
}

// serve runs server until it fails or a shutdown signal is received, then closes the store.
func serve(conf *core.Config, logger core.Logger, kv core.KVStore, server *echoapi.Server) {
	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")
	defer func() {
		if err := kv.Close(); err != nil {
			logger.Error("closing store", err)
		}
	}()

	// =========================================================================
	// Start API Service

	server.Start()
	logger.Info(fmt.Sprintf("API listening on %s (store: %s)", conf.Server.Address, conf.Store.Driver))

	// =========================================================================
	// Shutdown

	select {
	case err := <-server.Errors():
		logger.Error(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shut down and shed load
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Error(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}
