// logger/zaplogger_logpath.go

package logger

import (
	"os"
	"path/filepath"
	"time"
)

// EnsureLogFilePath prepares logPath for use as a log export target.
// A directory (existing or not) gets a timestamped "onenote_<ts>.log" filename appended; an
// existing file is used as is. An empty path resolves to the current directory.
// Parent directories are created.
func EnsureLogFilePath(logPath string) (string, error) {
	filename := "onenote_" + time.Now().Format("20060102_150405") + ".log"

	if logPath == "" {
		logPath = filepath.Join(".", filename)
	} else {
		info, err := os.Stat(logPath)
		switch {
		case os.IsNotExist(err), err == nil && info.IsDir():
			logPath = filepath.Join(logPath, filename)
		case err != nil:
			return "", err
		}
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return "", err
	}

	return logPath, nil
}
