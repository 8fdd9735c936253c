package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	EnvConfigPath = "LIFTSIM_CONFIG"
	EnvLogLevel   = "LIFTSIM_LOG_LEVEL"
	EnvLogFile    = "LIFTSIM_LOG_FILE"
	EnvSeed       = "LIFTSIM_SEED"
)

// Env holds the settings that may come from a .env file or the process environment.
type Env struct {
	ConfigPath string
	LogLevel   string
	LogFile    string
	Seed       uint64
	HasSeed    bool
}

// ResolveEnv reads path with godotenv (a missing file is not an error) and
// lets variables already set in the process environment win.
func ResolveEnv(path string) (Env, error) {
	values := map[string]string{}
	if path != "" {
		read, err := godotenv.Read(path)
		switch {
		case err == nil:
			values = read
		case errors.Is(err, fs.ErrNotExist):
		default:
			return Env{}, fmt.Errorf("read env file %s: %w", path, err)
		}
	}
	for _, key := range []string{EnvConfigPath, EnvLogLevel, EnvLogFile, EnvSeed} {
		if v, ok := os.LookupEnv(key); ok {
			values[key] = v
		}
	}

	env := Env{
		ConfigPath: values[EnvConfigPath],
		LogLevel:   values[EnvLogLevel],
		LogFile:    values[EnvLogFile],
	}
	if raw := values[EnvSeed]; raw != "" {
		seed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return env, fmt.Errorf("%s=%q: %w", EnvSeed, raw, err)
		}
		env.Seed = seed
		env.HasSeed = true
	}
	return env, nil
}
