package ext

import (
	"os"
	"path/filepath"
	"strings"
)

// ReplaceHomeDirWithTilde replaces the home directory in an absolute path with ~
func ReplaceHomeDirWithTilde(path string) string {
	homeDir, err := os.UserHomeDir()
	if err != nil || homeDir == "" {
		return path
	}
	return replaceHomeDir(path, homeDir)
}

func replaceHomeDir(path, homeDir string) string {
	homeDir = filepath.Clean(homeDir)
	cleaned := filepath.Clean(path)
	if cleaned == homeDir {
		return "~"
	}
	if strings.HasPrefix(cleaned, homeDir+string(filepath.Separator)) {
		return "~" + strings.TrimPrefix(cleaned, homeDir)
	}
	return path
}
