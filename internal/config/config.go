// Package config loads the process configuration from the environment.
package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port             string   // Port the HTTP server listens on
	DBPath           string   // Path of the sqlite database file
	GinMode          string   // gin mode, one of debug, release, test
	LogFormat        string   // "human" for console output, anything else logs JSON
	CORSAllowOrigins []string // Origins that are allowed to use the API from a browser
	EnablePprof      bool     // Serve pprof profiles under /debug/pprof
}

// Load reads the configuration from the environment, applying defaults
// for everything that is not set.
func Load() *Config {
	v := viper.New()

	v.SetDefault("port", "8080")
	v.SetDefault("db_path", "data/gorm.db")
	// gin uses debug as the default mode, we use release for
	// security reasons
	v.SetDefault("gin_mode", "release")
	v.SetDefault("log_format", "")
	v.SetDefault("cors_allow_origins", "")
	v.SetDefault("enable_pprof", false)

	v.AutomaticEnv()

	return &Config{
		Port:             v.GetString("port"),
		DBPath:           v.GetString("db_path"),
		GinMode:          v.GetString("gin_mode"),
		LogFormat:        v.GetString("log_format"),
		CORSAllowOrigins: strings.Fields(v.GetString("cors_allow_origins")),
		EnablePprof:      v.GetBool("enable_pprof"),
	}
}
