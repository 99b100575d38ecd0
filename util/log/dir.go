package log

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/dixieflatline76/wallflower/config"
)

// Dir is where release builds keep log files: the user cache directory on
// Windows, a dot directory in the home directory elsewhere.
func Dir() (string, error) {
	if runtime.GOOS == "windows" {
		cache, err := os.UserCacheDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(cache, config.LogWinSubDir), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, config.LogSubDir), nil
}
