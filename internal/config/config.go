package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	cerr "github.com/saeidalz13/battle-of-warships/internal/error"
)

const (
	StageProd = "prod"
	StageDev  = "dev"

	StorageNone     = "none"
	StoragePostgres = "postgres"
	StorageSqlite   = "sqlite"

	configName = "warships"
	envPrefix  = "WARSHIPS"
)

type SpectatorConfig struct {
	Enabled        bool     `json:"enabled" mapstructure:"enabled"`
	Port           string   `json:"port" mapstructure:"port"`
	AllowedOrigins []string `json:"allowedOrigins" mapstructure:"allowedOrigins"`
}

type StorageConfig struct {
	Type        string `json:"type" mapstructure:"type"`
	PostgresUrl string `json:"postgresUrl" mapstructure:"postgresUrl"`
	SqlitePath  string `json:"sqlitePath" mapstructure:"sqlitePath"`
}

type Config struct {
	Stage      string          `json:"stage" mapstructure:"stage"`
	LogLevel   string          `json:"logLevel" mapstructure:"logLevel"`
	LogFile    string          `json:"logFile" mapstructure:"logFile"`
	PlayerName string          `json:"playerName" mapstructure:"playerName"`
	Seed       uint64          `json:"seed" mapstructure:"seed"`
	Spectator  SpectatorConfig `json:"spectator" mapstructure:"spectator"`
	Storage    StorageConfig   `json:"storage" mapstructure:"storage"`
}

// flag name -> config key
var flagKeys = map[string]string{
	"stage":          "stage",
	"log-level":      "logLevel",
	"log-file":       "logFile",
	"name":           "playerName",
	"seed":           "seed",
	"spectate":       "spectator.enabled",
	"spectator-port": "spectator.port",
	"storage":        "storage.type",
	"postgres-url":   "storage.postgresUrl",
	"sqlite-path":    "storage.sqlitePath",
}

// NewFlagSet declares the command line flags understood by Load.
func NewFlagSet(name string) *pflag.FlagSet {
	flags := pflag.NewFlagSet(name, pflag.ContinueOnError)
	flags.String("stage", StageDev, "dev or prod")
	flags.String("log-level", "warn", "trace, debug, info, warn or error")
	flags.String("log-file", "", "also write logs to this file")
	flags.StringP("name", "n", "Player", "your name on the scoreboard")
	flags.Uint64("seed", 0, "random seed, 0 picks one from the clock")
	flags.Bool("spectate", false, "serve a read-only websocket feed of the match")
	flags.String("spectator-port", "8000", "port of the spectator feed")
	flags.String("storage", StorageNone, "where match results go: none, postgres or sqlite")
	flags.String("postgres-url", "", "postgres connection url")
	flags.String("sqlite-path", "warships.db", "sqlite file for match results")
	return flags
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("stage", StageDev)
	v.SetDefault("logLevel", "warn")
	v.SetDefault("logFile", "")
	v.SetDefault("playerName", "Player")
	v.SetDefault("seed", 0)

	v.SetDefault("spectator.enabled", false)
	v.SetDefault("spectator.port", "8000")
	v.SetDefault("spectator.allowedOrigins", []string{})

	v.SetDefault("storage.type", StorageNone)
	v.SetDefault("storage.postgresUrl", "")
	v.SetDefault("storage.sqlitePath", "warships.db")
}

// Load resolves the configuration from, lowest precedence first: defaults,
// warships.json in configDir, WARSHIPS_* environment variables and flags
// that were set explicitly. Outside prod a .env file in configDir is
// loaded into the environment first.
func Load(configDir string, flags *pflag.FlagSet) (Config, error) {
	if os.Getenv(envPrefix+"_STAGE") != StageProd {
		if err := godotenv.Load(filepath.Join(configDir, ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, err
		}
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigName(configName)
	v.SetConfigType("json")
	v.AddConfigPath(configDir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, err
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for flagName, key := range flagKeys {
			if flag := flags.Lookup(flagName); flag != nil {
				if err := v.BindPFlag(key, flag); err != nil {
					return Config{}, err
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Stage != StageDev && c.Stage != StageProd {
		return cerr.ErrStage(c.Stage)
	}

	switch c.Storage.Type {
	case StorageNone, StorageSqlite:
	case StoragePostgres:
		if c.Storage.PostgresUrl == "" {
			return cerr.ErrStorageType(c.Storage.Type + " without postgresUrl")
		}
	default:
		return cerr.ErrStorageType(c.Storage.Type)
	}
	return nil
}
