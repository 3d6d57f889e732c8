package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

const (
	DataDirEnv     = "TRACKSIM_DATA"
	DefaultDataDir = ".tracksim"
)

// LoadEnv reads KEY=value lines from path into the environment. Variables
// already set win. A missing file is not an error.
func LoadEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return godotenv.Load(path)
}

// DataDir is where runs are stored unless --data says otherwise.
func DataDir() string {
	if dir := os.Getenv(DataDirEnv); dir != "" {
		return dir
	}
	return DefaultDataDir
}
