package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildFixtureTree recreates the canonical test layout: per extension, file 1
// has no pattern occurrences, file 2 is unreadable, files 3 and 4 (one of
// them nested) each contain the pattern on two lines.
func buildFixtureTree(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	nested := filepath.Join(root, "test_data2")
	require.NoError(t, os.Mkdir(nested, 0o755))

	for _, ext := range []string{".php", ".html", ".txt"} {
		files := map[string]string{
			filepath.Join(root, "1"+ext):   "test test\ntest\n",
			filepath.Join(root, "2"+ext):   "test find test\nfind test\n",
			filepath.Join(root, "3"+ext):   "test find test\nfind test\n",
			filepath.Join(nested, "4"+ext): "test find test\nfind test\n",
		}

		for path, content := range files {
			require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		}

		sealed := filepath.Join(root, "2"+ext)
		require.NoError(t, os.Chmod(sealed, 0o111))
		t.Cleanup(func() { _ = os.Chmod(sealed, 0o644) })
	}

	return root
}

func TestRootCmd_EndToEnd(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}

	t.Run("literal replace over filtered tree", func(t *testing.T) {
		root := buildFixtureTree(t)

		var out bytes.Buffer

		cmd := newRootCmd()
		cmd.SetOut(&out)
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"--quiet", root, "find ", "found ", "*.php", "*.html"})
		require.NoError(t, cmd.Execute())

		expected := "Occurrences replaced: 8\n" +
			"Files skipped (Permission denied): 2\n" +
			"Total files searched: 8\n"
		assert.Equal(t, expected, out.String())

		assert.Equal(t, "test found test\nfound test\n", readTestFile(t, filepath.Join(root, "3.php")))
		assert.Equal(t, "test found test\nfound test\n", readTestFile(t, filepath.Join(root, "test_data2", "4.html")))
		assert.Equal(t, "test find test\nfind test\n", readTestFile(t, filepath.Join(root, "3.txt")), "filtered extension stays untouched")
		assert.Equal(t, "test test\ntest\n", readTestFile(t, filepath.Join(root, "1.php")))
	})

	t.Run("regex replace matches the literal outcome", func(t *testing.T) {
		root := buildFixtureTree(t)

		var out bytes.Buffer

		cmd := newRootCmd()
		cmd.SetOut(&out)
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"--quiet", "--regex", root, `f[i,o]n?d\s`, "found ", "*.php", "*.html"})
		require.NoError(t, cmd.Execute())

		assert.Contains(t, out.String(), "Occurrences replaced: 8\n")
		assert.Equal(t, "test found test\nfound test\n", readTestFile(t, filepath.Join(root, "3.html")))
	})

	t.Run("no patterns prints the advisory and touches every readable file", func(t *testing.T) {
		root := buildFixtureTree(t)

		var out bytes.Buffer

		cmd := newRootCmd()
		cmd.SetOut(&out)
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"--quiet", root, "find ", "found "})
		require.NoError(t, cmd.Execute())

		assert.Contains(t, out.String(), "** Consider using file patterns to speed up the process **")
		assert.Contains(t, out.String(), "Occurrences replaced: 12\n")
		assert.Contains(t, out.String(), "Files skipped (Permission denied): 3\n")
		assert.Contains(t, out.String(), "Total files searched: 12\n")
	})
}

func readTestFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	return string(data)
}
