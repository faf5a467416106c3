package dig_container

import (
	"context"
	"log"
	"os"

	"github.com/pkg/errors"
	"go.uber.org/dig"

	echoapi "github.com/JaMeS-18-18/ForPluto/apps/api/echo"
	"github.com/JaMeS-18-18/ForPluto/core"
	"github.com/JaMeS-18-18/ForPluto/core/roster"
	logsvc "github.com/JaMeS-18-18/ForPluto/services/logger"
	sharesvc "github.com/JaMeS-18-18/ForPluto/services/share"
	"github.com/JaMeS-18-18/ForPluto/storage"
)

type StoreLoggerParam struct {
	dig.In
	Logger core.Logger `name:"storeLogger"`
}

func newLogger(conf *core.Config) core.Logger {
	return logsvc.New(os.Stdout, "API : ", conf)
}

func newStoreLogger(conf *core.Config) core.Logger {
	return logsvc.New(os.Stdout, "STORE : ", conf)
}

func newKVStore(conf *core.Config, loggerParam StoreLoggerParam) core.KVStore {
	kv, err := storage.Open(conf.Store)
	if err != nil {
		loggerParam.Logger.Fatal("opening store: "+err.Error(), err)
	}
	return kv
}

func newRepository(conf *core.Config, kv core.KVStore, loggerParam StoreLoggerParam) *roster.Store {
	return roster.NewStore(kv, conf.Store.Key, loggerParam.Logger)
}

func newRosterService(repo roster.Repository, logger core.Logger) *roster.Service {
	svc := roster.NewService(repo, logger)
	svc.Init(context.Background())
	return svc
}

func newShareService(conf *core.Config, logger core.Logger) core.ShareService {
	if conf.TestMode {
		return sharesvc.NewConsoleService(logger)
	}
	return sharesvc.NewBrowserService(logger)
}

func newServer(conf *core.Config, logger core.Logger, svc *roster.Service, shareSvc core.ShareService) *echoapi.Server {
	return echoapi.NewServer(&echoapi.Options{
		Address:        conf.Server.Address,
		Debug:          conf.Debug,
		TestMode:       conf.TestMode,
		DisableReqLogs: conf.Server.DisableReqLogs,
		AppName:        conf.AppName,
		Logger:         logger,
		RosterSvc:      svc,
		ShareSvc:       shareSvc,
		Share:          conf.Share,
		Export:         conf.Export,
	})
}

// New returns a new dependency injection dig.Container
func New() *dig.Container {
	c := dig.New()

	must(c.Provide(core.NewConfig))
	must(c.Provide(newLogger))
	must(c.Provide(newStoreLogger, dig.Name("storeLogger")))
	must(c.Provide(newKVStore))
	must(c.Provide(newRepository, dig.As(new(roster.Repository))))
	must(c.Provide(newRosterService))
	must(c.Provide(newShareService))
	must(c.Provide(newServer))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.New(os.Stderr, "API : ", log.LstdFlags).Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
