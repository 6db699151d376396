package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	StorageConfig struct {
		Engine        string // memory, bolt, redis, postgres, sqlite3
		Path          string // bolt file
		Bucket        string // bolt bucket
		RedisAddr     string
		RedisPassword string
		RedisDB       int
		RedisPrefix   string
		DSN           string // sql engines
	}

	AuthConfig struct {
		HashPasswords  bool
		PasswordPolicy bool // enforce user.ValidatePassword on new passwords
	}

	Config struct {
		Env          string
		Debug        bool
		TestMode     bool
		AppName      string
		Build        string
		WorkDir      string
		RollbarToken string
		Storage      StorageConfig
		Auth         AuthConfig
	}
)

// NewConfig loads the configuration from defaults, an optional `config/.env.<env>` file
// and the environment (prefixed with the env name, eg. `DEV_STORAGE_ENGINE`).
func NewConfig() *Config {
	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("debug", true)
	conf.SetDefault("testMode", false)
	conf.SetDefault("appName", "Classroom")
	conf.SetDefault("build", "dev")
	conf.SetDefault("rollbarToken", "")
	conf.SetDefault("storage.engine", "bolt")
	conf.SetDefault("storage.path", filepath.Join("data", "classroom.db"))
	conf.SetDefault("storage.bucket", "localStorage")
	conf.SetDefault("storage.redisAddr", "localhost:6379")
	conf.SetDefault("storage.redisPassword", "")
	conf.SetDefault("storage.redisDB", 0)
	conf.SetDefault("storage.redisPrefix", "classroom")
	conf.SetDefault("storage.dsn", "")
	conf.SetDefault("auth.hashPasswords", false)
	conf.SetDefault("auth.passwordPolicy", false)

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		conf.SetDefault("testMode", true)
		conf.SetDefault("storage.engine", "memory")
	}
	conf.SetEnvPrefix(env)
	conf.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	wd, err := os.Getwd()
	if err != nil {
		log.Fatalf("config.os.Getwd(): %v", err)
	}

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(wd, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	conf.AutomaticEnv()

	return &Config{
		Env:          env,
		Debug:        conf.GetBool("debug"),
		TestMode:     conf.GetBool("testMode"),
		AppName:      conf.GetString("appName"),
		Build:        conf.GetString("build"),
		WorkDir:      wd,
		RollbarToken: conf.GetString("rollbarToken"),
		Storage: StorageConfig{
			Engine:        strings.ToLower(conf.GetString("storage.engine")),
			Path:          conf.GetString("storage.path"),
			Bucket:        conf.GetString("storage.bucket"),
			RedisAddr:     conf.GetString("storage.redisAddr"),
			RedisPassword: conf.GetString("storage.redisPassword"),
			RedisDB:       conf.GetInt("storage.redisDB"),
			RedisPrefix:   conf.GetString("storage.redisPrefix"),
			DSN:           conf.GetString("storage.dsn"),
		},
		Auth: AuthConfig{
			HashPasswords:  conf.GetBool("auth.hashPasswords"),
			PasswordPolicy: conf.GetBool("auth.passwordPolicy"),
		},
	}
}
