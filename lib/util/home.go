// Package util holds small helpers shared by the sntp binary.
package util

import (
	"os"

	"github.com/go-i2p/logger"
)

var log = logger.GetGoI2PLogger()

// UserHome returns the current user's home directory. Falls back to $HOME
// (or USERPROFILE on Windows) if os.UserHomeDir fails, and as a last resort
// uses the current working directory rather than panicking, so the binary
// still runs in containerized environments where $HOME may be unset.
func UserHome() string {
	homeDir, err := os.UserHomeDir()
	if err == nil {
		return homeDir
	}
	if home := os.Getenv("HOME"); home != "" {
		log.WithError(err).Warn("os.UserHomeDir failed, falling back to $HOME")
		return home
	}
	if home := os.Getenv("USERPROFILE"); home != "" {
		log.WithError(err).Warn("os.UserHomeDir failed, falling back to USERPROFILE")
		return home
	}
	wd, wdErr := os.Getwd()
	if wdErr != nil {
		panic("sntp: unable to determine home directory; set $HOME")
	}
	log.WithError(err).Warn("no home directory available, falling back to working directory")
	return wd
}
