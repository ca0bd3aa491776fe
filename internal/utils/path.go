package utils

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/log"
)

const appDirName = "autocomplete"

// PathResolver locates corpus files and the config directory relative to
// the running binary, the working directory and the user's home.
type PathResolver struct {
	executableDir string
	homeDir       string
	configDir     string
}

// NewPathResolver creates a resolver anchored at the current executable
func NewPathResolver() (*PathResolver, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, err
	}
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return nil, err
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Warnf("Could not determine home directory: %v", err)
		homeDir = os.TempDir()
	}
	return NewPathResolverAt(filepath.Dir(execPath), homeDir), nil
}

// NewPathResolverAt creates a resolver with explicit anchor directories
func NewPathResolverAt(executableDir, homeDir string) *PathResolver {
	pr := &PathResolver{
		executableDir: executableDir,
		homeDir:       homeDir,
		configDir:     getConfigDir(homeDir),
	}
	log.Debugf("PathResolver initialized: execDir=%s, configDir=%s", executableDir, pr.configDir)
	return pr
}

// getConfigDir returns the appropriate config directory for the platform
func getConfigDir(homeDir string) string {
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(homeDir, ".config", appDirName)
	case "linux":
		if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
			return filepath.Join(configHome, appDirName)
		}
		return filepath.Join(homeDir, ".config", appDirName)
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, appDirName)
		}
		return filepath.Join(homeDir, "AppData", "Roaming", appDirName)
	default:
		return filepath.Join(homeDir, "."+appDirName)
	}
}

// ResolveCorpus finds a corpus file or chunk directory.
// Candidates are tried in order:
// 1. the path itself (absolute or relative to the working directory)
// 2. relative to the executable directory
// 3. relative to the config directory
// When nothing matches, the path is returned unchanged so the caller reports the error.
func (pr *PathResolver) ResolveCorpus(userPath string) string {
	for _, path := range pr.corpusCandidates(userPath) {
		if isValidCorpus(path) {
			log.Debugf("Found corpus: %s", path)
			return path
		}
		log.Debugf("Corpus candidate not valid: %s", path)
	}
	return userPath
}

func (pr *PathResolver) corpusCandidates(userPath string) []string {
	candidates := []string{userPath}
	if filepath.IsAbs(userPath) {
		return candidates
	}
	return append(candidates,
		filepath.Join(pr.executableDir, userPath),
		filepath.Join(pr.configDir, userPath),
	)
}

// isValidCorpus accepts a regular file or a directory holding dict_*.bin chunks
func isValidCorpus(path string) bool {
	stat, err := os.Stat(path)
	if err != nil {
		return false
	}
	if !stat.IsDir() {
		return true
	}
	matches, err := filepath.Glob(filepath.Join(path, "dict_*.bin"))
	return err == nil && len(matches) > 0
}

// GetConfigPath returns the full path for a config file.
// Falls back to a temp directory when the config directory is not writable.
func (pr *PathResolver) GetConfigPath(filename string) string {
	if WritableDir(pr.configDir) {
		return filepath.Join(pr.configDir, filename)
	}
	fallback := filepath.Join(os.TempDir(), appDirName)
	if WritableDir(fallback) {
		path := filepath.Join(fallback, filename)
		log.Warnf("Using fallback config location: %s", path)
		return path
	}
	tempPath := filepath.Join(os.TempDir(), filename)
	log.Warnf("Using temporary config file: %s", tempPath)
	return tempPath
}
