package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the root command against a config path that does not exist,
// so defaults and the environment apply.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	t.Setenv("SQLITE_STORAGE_PATH", filepath.Join(t.TempDir(), "playground.db"))

	cmd := NewRootCommand()

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append(args, "--config", filepath.Join(t.TempDir(), "missing.yml")))

	err := cmd.Execute()

	return out.String(), err
}

func TestMoveCommand(t *testing.T) {
	t.Run("Prints the blocking cell for O", func(t *testing.T) {
		out, err := run(t, "", "move", "XX.O.....")

		require.NoError(t, err)
		assert.Equal(t, "2\n", out)
	})

	t.Run("Mark flag", func(t *testing.T) {
		out, err := run(t, "", "move", "OO.XX....", "--mark", "x")

		require.NoError(t, err)
		assert.Equal(t, "5\n", out)
	})

	t.Run("Show draws the board", func(t *testing.T) {
		out, err := run(t, "", "move", ".........", "--show")

		require.NoError(t, err)
		assert.Contains(t, out, "O")
		assert.True(t, strings.HasSuffix(out, "0\n"))
	})

	t.Run("Rejects bad boards", func(t *testing.T) {
		_, err := run(t, "", "move", "XXX")
		require.Error(t, err)

		_, err = run(t, "", "move", "XXXOO....")
		require.Error(t, err)
	})
}

func TestRenderCommand(t *testing.T) {
	t.Run("Reads stdin", func(t *testing.T) {
		out, err := run(t, "**bold**", "render")

		require.NoError(t, err)
		assert.Contains(t, out, "<strong>bold</strong>")
	})

	t.Run("Reads a file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "doc.md")
		require.NoError(t, os.WriteFile(path, []byte("# Title"), 0o600))

		out, err := run(t, "", "render", path)

		require.NoError(t, err)
		assert.Contains(t, out, "Title</h1>")
	})

	t.Run("Ansi output", func(t *testing.T) {
		t.Setenv("MARKDOWN_TERMINAL_STYLE", "notty")

		out, err := run(t, "# Title", "render", "--format", "ansi")

		require.NoError(t, err)
		assert.Contains(t, out, "Title")
		assert.NotContains(t, out, "<h1")
	})

	t.Run("Unknown format", func(t *testing.T) {
		_, err := run(t, "x", "render", "--format", "pdf")

		require.Error(t, err)
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := run(t, "", "render", filepath.Join(t.TempDir(), "nope.md"))

		require.Error(t, err)
	})
}

func TestPlayCommand(t *testing.T) {
	t.Run("Plays a full game and keeps score", func(t *testing.T) {
		// Given: input that tries every cell in order, skipping taken ones
		input := "oops\n0\n1\n2\n3\n4\n5\n6\n7\n8\n"

		// When: playing the hard bot
		out, err := run(t, input, "play", "--difficulty", "hard")

		// Then: the game ends without a player win and the score is printed
		require.NoError(t, err)
		assert.Contains(t, out, "Enter a cell number from 0 to 8.")
		assert.NotContains(t, out, "You win!")
		assert.Contains(t, out, "Score: you 0")
	})

	t.Run("Quit", func(t *testing.T) {
		out, err := run(t, "q\n", "play")

		require.NoError(t, err)
		assert.NotContains(t, out, "Score:")
	})

	t.Run("Unknown difficulty", func(t *testing.T) {
		_, err := run(t, "", "play", "--difficulty", "impossible")

		require.Error(t, err)
	})
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	logger := NewLogger("warn", &buf)
	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
}
