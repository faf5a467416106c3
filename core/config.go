package core

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type (
	ServerConfig struct {
		Address         string
		ShutdownTimeout time.Duration
		DisableReqLogs  bool
	}

	StoreConfig struct {
		Driver string // memory | file | sqlite | postgres
		Key    string // storage key holding the groups snapshot
		Dir    string // file driver only
		DSN    string // sqlite & postgres drivers only
	}

	ShareConfig struct {
		BaseURL string
		Handle  string
	}

	ExportConfig struct {
		Dir    string
		Prefix string
	}

	Config struct {
		Env          string
		Debug        bool
		TestMode     bool
		AppName      string
		Build        string
		RollbarToken string

		Server ServerConfig
		Store  StoreConfig
		Share  ShareConfig
		Export ExportConfig
	}
)

// NewConfig reads the configuration from the environment (and `config/.env.<env>` if it exists).
// ENV selects the environment: DEV (default), TEST, QA, PROD; it is also the prefix of every variable,
// eg. DEV_STORE_DRIVER=sqlite.
func NewConfig() (*Config, error) {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("appName", "Roster")
	v.SetDefault("build", "dev")
	v.SetDefault("rollbarToken", "")
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.shutdownTimeout", 10*time.Second)
	v.SetDefault("server.disableReqLogs", false)
	v.SetDefault("store.driver", "file")
	v.SetDefault("store.key", "groups")
	v.SetDefault("store.dir", "data")
	v.SetDefault("store.dsn", "")
	v.SetDefault("share.baseURL", "https://t.me")
	v.SetDefault("share.handle", "online_xakker")
	v.SetDefault("export.dir", ".")
	v.SetDefault("export.prefix", "students-")

	env := strings.ToUpper(os.Getenv("ENV"))
	if env == "" {
		env = "DEV"
	}
	if env == "TEST" {
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			return nil, errors.Wrapf(err, "loading %s", dotEnvPath)
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "checking %s", dotEnvPath)
	}
	v.AutomaticEnv()

	conf := &Config{
		Env:          env,
		Debug:        v.GetBool("debug"),
		TestMode:     v.GetBool("testMode"),
		AppName:      v.GetString("appName"),
		Build:        v.GetString("build"),
		RollbarToken: v.GetString("rollbarToken"),
		Server: ServerConfig{
			Address:         v.GetString("server.address"),
			ShutdownTimeout: v.GetDuration("server.shutdownTimeout"),
			DisableReqLogs:  v.GetBool("server.disableReqLogs"),
		},
		Store: StoreConfig{
			Driver: CleanString(v.GetString("store.driver"), true /* lower */),
			Key:    CleanString(v.GetString("store.key")),
			Dir:    v.GetString("store.dir"),
			DSN:    v.GetString("store.dsn"),
		},
		Share: ShareConfig{
			BaseURL: strings.TrimRight(v.GetString("share.baseURL"), "/"),
			Handle:  strings.TrimPrefix(CleanString(v.GetString("share.handle")), "@"),
		},
		Export: ExportConfig{
			Dir:    v.GetString("export.dir"),
			Prefix: v.GetString("export.prefix"),
		},
	}
	if conf.Store.Key == "" {
		return nil, errors.New("store key must not be empty")
	}
	return conf, nil
}
