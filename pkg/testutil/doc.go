// Package testutil provides fixtures for drawables tests: declarative file
// trees on real or in-memory filesystems, zip archives and SVG documents.
//
// Usage guidelines:
//   - walk and copy logic is tested against NewTestFS (in-memory)
//   - anything involving symlinks or the resolver uses t.TempDir()
//   - all test data is defined inline, not in external files
package testutil
