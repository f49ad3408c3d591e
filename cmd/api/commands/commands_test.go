package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/responder/core/internal/domain/entities"
)

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func useTempStore(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "questions.json")
	t.Setenv("STORAGE_DRIVER", "file")
	t.Setenv("STORAGE_FILE_PATH", path)
	t.Setenv("LOG_LEVEL", "error")
	return path
}

func TestQuestionsImportAndList(t *testing.T) {
	path := useTempStore(t)

	importFile := filepath.Join(t.TempDir(), "seed.json")
	seed := `[
		{"id": "Q1", "author": "Jack London", "summary": "What is my name?", "answers": []},
		{"id": "Q1", "author": "Jack London", "summary": "duplicate"},
		{"id": "Q2", "author": "Tim Doods", "summary": "Who are you?", "answers": [{"id": "A1", "author": "Ann", "summary": "Tim"}]}
	]`
	require.NoError(t, os.WriteFile(importFile, []byte(seed), 0o644))

	out, err := execute(t, NewQuestionsCommand(), "import", importFile)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported: 2")
	assert.Contains(t, out, "Skipped: 1")
	assert.FileExists(t, path)

	out, err = execute(t, NewQuestionsCommand(), "list")
	require.NoError(t, err)

	var listed []entities.Question
	require.NoError(t, json.Unmarshal([]byte(out), &listed))
	require.Len(t, listed, 2)
	assert.Equal(t, "Q1", listed[0].ID)
	assert.Equal(t, "A1", listed[1].Answers[0].ID)
}

func TestQuestionsImport_BadFile(t *testing.T) {
	useTempStore(t)

	_, err := execute(t, NewQuestionsCommand(), "import", filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)

	notArray := filepath.Join(t.TempDir(), "object.json")
	require.NoError(t, os.WriteFile(notArray, []byte(`{"id":"Q1"}`), 0o644))
	_, err = execute(t, NewQuestionsCommand(), "import", notArray)
	assert.Error(t, err)
}

func TestQuestionsList_CorruptedStore(t *testing.T) {
	path := useTempStore(t)
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))

	_, err := execute(t, NewQuestionsCommand(), "list")
	assert.ErrorIs(t, err, entities.ErrStorageCorrupted)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, NewVersionCommand())
	require.NoError(t, err)
	assert.Contains(t, out, "Responder v"+Version)
}
