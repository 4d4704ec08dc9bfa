package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

// InitLogger configures the shared logger. Log lines always go to stderr; when logFile is set they
// are also appended to that file. The returned closer releases the log file, if any.
func InitLogger(verbose bool, logFile string) (io.Closer, error) {
	var out io.Writer = os.Stderr
	var closer io.Closer = nopCloser{}

	if logFile != "" {
		file, err := os.OpenFile(GetLogFilePath(logFile), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return closer, fmt.Errorf("failed to open log file %s: %w", logFile, err)
		}
		out = io.MultiWriter(os.Stderr, file)
		closer = file
	}

	Log.SetOutput(out)
	Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if verbose {
		Log.SetLevel(logrus.DebugLevel)
		Log.Debugln("Verbose (debug) logging enabled")
	} else {
		Log.SetLevel(logrus.InfoLevel)
	}
	return closer, nil
}

func GetLogFilePath(logFile string) string {
	path, err := filepath.Abs(logFile)
	if err != nil {
		return logFile
	}
	return path
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
