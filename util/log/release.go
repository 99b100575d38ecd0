//go:build release

package log

import (
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/dixieflatline76/wallflower/config"
	"gopkg.in/natefinch/lumberjack.v2"
)

const debugEnabled = false

func init() {
	dir, err := Dir()
	if err != nil {
		std.Printf("File logging disabled: %v", err)
		return
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		std.Printf("File logging disabled: %v", err)
		return
	}

	// Progress still goes to the terminal; the file keeps history across runs.
	rotator := &lumberjack.Logger{
		Filename:   filepath.Join(dir, config.LogFileName()),
		MaxSize:    config.LogMaxSizeMB,
		MaxBackups: config.LogMaxBackups,
		MaxAge:     config.LogMaxAgeDays,
		Compress:   true,
	}
	std.SetOutput(io.MultiWriter(os.Stderr, rotator))
	std.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
}
