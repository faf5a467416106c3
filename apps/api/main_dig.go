package main

import (
	"log"

	dig_container "github.com/JaMeS-18-18/ForPluto/apps/api/di/dig"
	echoapi "github.com/JaMeS-18-18/ForPluto/apps/api/echo"
	"github.com/JaMeS-18-18/ForPluto/core"
)

func startWithDig() {
	c := dig_container.New()

	must(c.Invoke(func(
		conf *core.Config,
		apiLogger core.Logger,
		kv core.KVStore,
		server *echoapi.Server,
	) {
		serve(conf, apiLogger, kv, server)
	}))
}

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
