// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package baseline

import (
	"fmt"
	"os"
	"path/filepath"
)

const defaultListMode os.FileMode = 0o644

// WriteFile replaces the definition list at path with list. The list is
// staged next to path and renamed into place, so readers see either the old
// list or the new one. An existing list keeps its permission bits.
func WriteFile(path string, list []byte) error {
	mode := defaultListMode
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating list directory %s: %w", dir, err)
	}

	staged, err := stage(dir, list, mode)
	if err != nil {
		return fmt.Errorf("staging definition list for %s: %w", path, err)
	}
	if err := os.Rename(staged, path); err != nil {
		os.Remove(staged)
		return fmt.Errorf("replacing definition list %s: %w", path, err)
	}
	return nil
}

// stage writes list to a new hidden file in dir and returns its name. The
// file is removed when any step fails.
func stage(dir string, list []byte, mode os.FileMode) (string, error) {
	f, err := os.CreateTemp(dir, ".deflist-*.tmp")
	if err != nil {
		return "", err
	}
	name := f.Name()

	_, err = f.Write(list)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Chmod(name, mode)
	}
	if err != nil {
		os.Remove(name)
		return "", err
	}
	return name, nil
}
