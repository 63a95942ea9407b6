// Package envpath puts the bundled tool directories on the search path.
package envpath

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var once sync.Once

// Augment prepends root and root/ffmpeg to PATH. Only the first call in a
// process has any effect.
func Augment(root string) {
	once.Do(func() {
		_ = os.Setenv("PATH", Prepend(os.Getenv("PATH"), Dirs(root)...))
	})
}

// Dirs lists the directories Augment adds, in search order.
func Dirs(root string) []string {
	if strings.TrimSpace(root) == "" {
		return nil
	}
	return []string{root, filepath.Join(root, "ffmpeg")}
}

// Prepend returns path with dirs in front. Entries already present are
// moved rather than duplicated.
func Prepend(path string, dirs ...string) string {
	head := make([]string, 0, len(dirs))
	seen := make(map[string]struct{}, len(dirs))
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if _, ok := seen[dir]; ok {
			continue
		}
		seen[dir] = struct{}{}
		head = append(head, dir)
	}

	out := head
	for _, entry := range filepath.SplitList(path) {
		if entry == "" {
			continue
		}
		if _, ok := seen[entry]; ok {
			continue
		}
		out = append(out, entry)
	}
	return strings.Join(out, string(os.PathListSeparator))
}
