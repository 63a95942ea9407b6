package envpath

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func join(parts ...string) string {
	return strings.Join(parts, string(os.PathListSeparator))
}

func TestPrependPutsDirsFirst(t *testing.T) {
	got := Prepend(join("/usr/bin", "/bin"), "/opt/vtrans", "/opt/vtrans/ffmpeg")
	require.Equal(t, join("/opt/vtrans", "/opt/vtrans/ffmpeg", "/usr/bin", "/bin"), got)
}

func TestPrependMovesExistingEntries(t *testing.T) {
	got := Prepend(join("/usr/bin", "/opt/vtrans", ""), "/opt/vtrans", "", "/opt/vtrans")
	require.Equal(t, join("/opt/vtrans", "/usr/bin"), got)
}

func TestPrependEmptyPath(t *testing.T) {
	require.Equal(t, "/opt/vtrans", Prepend("", "/opt/vtrans"))
}

func TestDirs(t *testing.T) {
	require.Nil(t, Dirs(" "))
	require.Equal(t, []string{"/opt/vtrans", filepath.Join("/opt/vtrans", "ffmpeg")}, Dirs("/opt/vtrans"))
}

func TestAugmentRunsOnce(t *testing.T) {
	t.Setenv("PATH", "/usr/bin")
	root := t.TempDir()

	Augment(root)
	Augment(filepath.Join(root, "other"))

	entries := filepath.SplitList(os.Getenv("PATH"))
	require.Equal(t, []string{root, filepath.Join(root, "ffmpeg"), "/usr/bin"}, entries)
}
