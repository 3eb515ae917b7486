package filesystem

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/arthur-debert/drawables/pkg/types"
	"github.com/google/uuid"
)

// DirPerm is the mode used for every directory drawables creates
const DirPerm = 0755

// WriteAtomic streams the content produced by write into a temporary file
// next to dst and renames it into place, replacing any existing file. The
// temporary file is removed when write or the rename fails.
func WriteAtomic(fsys types.FS, dst string, write func(w io.Writer) error) (err error) {
	if err := fsys.MkdirAll(filepath.Dir(dst), DirPerm); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", dst, err)
	}

	tmp := dst + ".tmp-" + uuid.NewString()
	w, err := fsys.Create(tmp)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = fsys.Remove(tmp)
		}
	}()

	if err = write(w); err != nil {
		_ = w.Close()
		return err
	}
	if err = w.Close(); err != nil {
		return err
	}
	return fsys.Rename(tmp, dst)
}

// CopyFile copies src to dst through WriteAtomic. The source handle is
// closed before CopyFile returns.
func CopyFile(fsys types.FS, src, dst string) error {
	in, err := fsys.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	return WriteAtomic(fsys, dst, func(w io.Writer) error {
		_, err := io.Copy(w, in)
		return err
	})
}

// Exists reports whether name exists
func Exists(fsys types.FS, name string) bool {
	_, err := fsys.Stat(name)
	return err == nil
}

// IsDir reports whether name exists and is a directory
func IsDir(fsys types.FS, name string) bool {
	info, err := fsys.Stat(name)
	return err == nil && info.IsDir()
}
