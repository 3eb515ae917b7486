// Package paths provides centralized path handling for drawables.
//
// It implements the XDG Base Directory specification for the files
// drawables keeps outside a project (the log file and the download cache)
// and knows the conventional location of the local artifact repository.
//
// # Environment Variables
//
//   - DRAWABLES_STATE_DIR: Override the state directory (default: $XDG_STATE_HOME/drawables)
//   - DRAWABLES_CACHE_DIR: Override the cache directory (default: $XDG_CACHE_HOME/drawables)
//   - DRAWABLES_LOCAL_REPOSITORY: Override the local repository (default: ~/.m2/repository)
package paths
