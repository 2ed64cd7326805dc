package fs

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/fwojciec/sigstub"
)

// namePath joins dir with name+ext, rejecting names that would escape dir.
func namePath(dir, name, ext string) (string, error) {
	if name == "" {
		return "", sigstub.Errorf(sigstub.EINVALID, "name required")
	}
	clean := path.Clean(name)
	if path.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", sigstub.Errorf(sigstub.EINVALID, "path traversal in name %q", name)
	}
	return filepath.Join(dir, filepath.FromSlash(clean)+ext), nil
}
