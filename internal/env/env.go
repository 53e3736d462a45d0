package env

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

const (
	defaultXDGConfigDirname = ".config"
	defaultXDGDataDirname   = ".local/share"

	dotenvFilename = "xcom.env"
)

var (
	XCOM_CONFIG_PATH string

	XCOM_LOG_PATH string
)

func init() {
	// Variables already present in the environment win over the dotenv file
	_ = godotenv.Load(ExecutableDir(dotenvFilename))

	XCOM_CONFIG_PATH = os.Getenv("XCOM_CONFIG_PATH")
	if XCOM_CONFIG_PATH == "" {
		configDir := os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			configDir = filepath.Join(homeDir(), defaultXDGConfigDirname)
		}
		XCOM_CONFIG_PATH = filepath.Join(configDir, "xcom", "config.yaml")
	}

	XCOM_LOG_PATH = os.Getenv("XCOM_LOG_PATH")
	if XCOM_LOG_PATH == "" {
		dataDir := os.Getenv("XDG_DATA_HOME")
		if dataDir == "" {
			dataDir = filepath.Join(homeDir(), defaultXDGDataDirname)
		}
		XCOM_LOG_PATH = filepath.Join(dataDir, "xcom", "debug.log")
	}
}

// ExecutableDir joins name onto the directory of the running executable.
// It falls back to the bare name (i.e. the current directory) when the
// executable location cannot be determined.
func ExecutableDir(name string) string {
	exe, err := os.Executable()
	if err != nil {
		return name
	}
	dir := filepath.Dir(exe)
	if dir == "" {
		return name
	}
	return filepath.Join(dir, name)
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		// Windows services and some CI sandboxes have no profile
		return "."
	}
	return home
}
