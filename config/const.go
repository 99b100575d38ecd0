package config

import "strings"

// AppVersion is the version of the application, set at build time.
var AppVersion = "dev"

// AppName is the name of the application.
const AppName = "Wallflower"

// LogWinSubDir is the sub directory for the log files on windows.
var LogWinSubDir = AppName

// LogSubDir is the sub directory for the log files.
var LogSubDir = "." + strings.ToLower(AppName)

// LogExt is the extension for the log files.
var LogExt = ".log"

// Log rotation limits for release builds.
const (
	LogMaxSizeMB  = 10
	LogMaxBackups = 2
	LogMaxAgeDays = 28
)

// LogFileName returns the base name of the log file.
func LogFileName() string {
	return strings.ToLower(AppName) + LogExt
}

// Token store backends.
const (
	TokenStoreFile    = "file"
	TokenStoreKeyring = "keyring"
)

// Defaults, taken from how the slideshow has always mirrored a photostream.
const (
	DefaultPhotoDir      = "photos"
	DefaultCredentialKey = ".flickr-data.json"
	DefaultWorkers       = 8
	DefaultMaxPages      = 3
	DefaultPerPage       = 100
	DefaultMinTakenDate  = "1388494800" // 2014-01-01
	DefaultContentType   = "1"          // photos only
	DefaultPhotoSize     = "k"          // large 2048
	DefaultPerms         = "read"
)

// EnvFiles are loaded, if present, before the environment is read.
var EnvFiles = []string{".env", ".local.env"}
