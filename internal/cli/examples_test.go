package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExamplesCmd(t *testing.T) {
	t.Run("all commands in text format", func(t *testing.T) {
		globals, stdout, _ := testGlobals("text")
		require.NoError(t, (&ExamplesCmd{}).Run(globals))

		out := stdout.String()
		assert.Contains(t, out, "analyze -")
		assert.Contains(t, out, "latest -")
		assert.Contains(t, out, "config -")
		assert.Contains(t, out, "loglens analyze app.log")
	})

	t.Run("single command", func(t *testing.T) {
		globals, stdout, _ := testGlobals("text")
		require.NoError(t, (&ExamplesCmd{Command: "latest"}).Run(globals))

		out := stdout.String()
		assert.Contains(t, out, "loglens latest /var/log/myapp")
		assert.NotContains(t, out, "loglens analyze")
	})

	t.Run("command lookup is case-insensitive", func(t *testing.T) {
		globals, stdout, _ := testGlobals("text")
		require.NoError(t, (&ExamplesCmd{Command: "ANALYZE"}).Run(globals))
		assert.Contains(t, stdout.String(), "loglens analyze app.log")
	})

	t.Run("unknown command", func(t *testing.T) {
		globals, _, _ := testGlobals("text")

		err := (&ExamplesCmd{Command: "bogus"}).Run(globals)
		var cliErr *CLIError
		require.ErrorAs(t, err, &cliErr)
		assert.Equal(t, "UNKNOWN_COMMAND", cliErr.Code)
	})

	t.Run("json output", func(t *testing.T) {
		globals, stdout, _ := testGlobals("text")
		require.NoError(t, (&ExamplesCmd{JSON: true}).Run(globals))

		var out struct {
			Type     string            `json:"type"`
			Commands []CommandExamples `json:"commands"`
		}
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &out))
		assert.Equal(t, "examples", out.Type)
		require.Len(t, out.Commands, 3)
		assert.Equal(t, "analyze", out.Commands[0].Name)
	})
}

func TestConfigCmds(t *testing.T) {
	t.Run("show text", func(t *testing.T) {
		globals, stdout, _ := testGlobals("text")
		require.NoError(t, (&ConfigShowCmd{}).Run(globals))

		out := stdout.String()
		assert.Contains(t, out, "Current Configuration:")
		assert.Contains(t, out, "bucket:         1h")
		assert.Contains(t, out, "top_k:          10")
	})

	t.Run("show ndjson", func(t *testing.T) {
		globals, stdout, _ := testGlobals("ndjson")
		require.NoError(t, (&ConfigShowCmd{}).Run(globals))

		var out map[string]any
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &out))
		assert.Equal(t, "config", out["type"])
	})

	t.Run("generate emits parseable yaml", func(t *testing.T) {
		globals, stdout, _ := testGlobals("text")
		require.NoError(t, (&ConfigGenerateCmd{}).Run(globals))

		out := stdout.String()
		assert.Contains(t, out, "analyze:")
		assert.Contains(t, out, "top_k: 10")
		assert.Contains(t, out, "max_error_rate: 0.8")
	})
}
