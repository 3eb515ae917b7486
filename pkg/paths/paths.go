package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// Environment variable names
const (
	EnvStateDir        = "DRAWABLES_STATE_DIR"
	EnvCacheDir        = "DRAWABLES_CACHE_DIR"
	EnvLocalRepository = "DRAWABLES_LOCAL_REPOSITORY"
)

// Default directories and files
const (
	// AppDirName is the directory name used under the XDG roots
	AppDirName = "drawables"

	// LogFileName is the name of the log file
	LogFileName = "drawables.log"

	// LocalRepositoryDir is the local repository location relative to the home directory
	LocalRepositoryDir = ".m2/repository"
)

// Paths resolves the directories drawables uses outside the project tree
type Paths struct {
	stateDir string
	cacheDir string
	home     string
}

// New creates a Paths instance from the current environment
func New() *Paths {
	// xdg caches its values at init; tests and wrappers change the env later
	xdg.Reload()

	p := &Paths{home: xdg.Home}

	if dir := os.Getenv(EnvStateDir); dir != "" {
		p.stateDir = dir
	} else {
		p.stateDir = filepath.Join(xdg.StateHome, AppDirName)
	}

	if dir := os.Getenv(EnvCacheDir); dir != "" {
		p.cacheDir = dir
	} else {
		p.cacheDir = filepath.Join(xdg.CacheHome, AppDirName)
	}

	return p
}

// StateDir returns the state directory
func (p *Paths) StateDir() string {
	return p.stateDir
}

// CacheDir returns the cache directory
func (p *Paths) CacheDir() string {
	return p.cacheDir
}

// LogFilePath returns the path of the log file
func (p *Paths) LogFilePath() string {
	return filepath.Join(p.stateDir, LogFileName)
}

// LocalRepository returns the default local artifact repository
func (p *Paths) LocalRepository() string {
	if dir := os.Getenv(EnvLocalRepository); dir != "" {
		return p.Expand(dir)
	}
	return filepath.Join(p.home, filepath.FromSlash(LocalRepositoryDir))
}

// Expand replaces a leading ~ with the home directory and cleans the path
func (p *Paths) Expand(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		return p.home
	}
	if strings.HasPrefix(path, "~/") || strings.HasPrefix(path, `~\`) {
		return filepath.Join(p.home, path[2:])
	}
	return filepath.Clean(path)
}
