package e2e_test

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	redisURL   string
}

func newCLIRunner(t *testing.T, redisURL string) *cliRunner {
	t.Helper()

	// Find project root (where go.mod is)
	projectRoot := findProjectRoot(t)

	// Build the CLI binary
	binaryPath := filepath.Join(t.TempDir(), "battlekeep-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/battlekeep")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	return &cliRunner{
		binaryPath: binaryPath,
		redisURL:   redisURL,
	}
}

func (r *cliRunner) run(args ...string) (string, error) {
	fullArgs := append([]string{
		"--redis-url", r.redisURL,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	// Keep the environment out of it; the flags carry the configuration.
	cmd.Env = append(os.Environ(), "BATTLEKEEP_REDIS_URL=", "BATTLEKEEP_OUTPUT=")
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

func writeEntityFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestCLIAccountEntityRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test in short mode")
	}

	mini := miniredis.RunT(t)
	runner := newCLIRunner(t, "redis://"+mini.Addr())

	// Login creates the account
	loginOut, err := runner.run("account", "login", "--patreon-id", "pat-1", "--standing", "pledge")
	require.NoError(t, err, loginOut)

	var account struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal([]byte(loginOut), &account))
	require.NotEmpty(t, account.ID)

	// Save an entity from a file
	dir := t.TempDir()
	goblin := writeEntityFile(t, dir, "goblin.json",
		`{"Id":"g1","Name":"Goblin","Path":"/monsters","Version":"1","HP":{"Value":7,"Notes":"(2d6)"}}`)

	saveOut, err := runner.run("entity", "save", account.ID, "-c", "statblocks", "--file", goblin)
	require.NoError(t, err, saveOut)

	// The entity lists under its collection
	listOut, err := runner.run("entity", "list", account.ID, "-c", "statblocks")
	require.NoError(t, err, listOut)
	var ids []string
	require.NoError(t, json.Unmarshal([]byte(listOut), &ids))
	assert.Equal(t, []string{"g1"}, ids)

	// The directory view carries the listing with its link
	showOut, err := runner.run("account", "show", account.ID)
	require.NoError(t, err, showOut)
	var listings struct {
		StatBlocks []struct {
			Name string `json:"Name"`
			Link string `json:"Link"`
		} `json:"statblocks"`
	}
	require.NoError(t, json.Unmarshal([]byte(showOut), &listings))
	require.Len(t, listings.StatBlocks, 1)
	assert.Equal(t, "Goblin", listings.StatBlocks[0].Name)
	assert.Equal(t, "/my/statblocks/g1", listings.StatBlocks[0].Link)

	// Fetching the entity returns the default-merged document
	getOut, err := runner.run("entity", "get", account.ID, "g1", "-c", "statblocks")
	require.NoError(t, err, getOut)
	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(getOut), &doc))
	assert.JSONEq(t, `{"Value":7,"Notes":"(2d6)"}`, string(doc["HP"]))
	assert.JSONEq(t, `{"Value":10,"Notes":""}`, string(doc["AC"]))

	// Deleting twice is fine
	_, err = runner.run("entity", "delete", account.ID, "g1", "-c", "statblocks")
	require.NoError(t, err)
	_, err = runner.run("entity", "delete", account.ID, "g1", "-c", "statblocks")
	require.NoError(t, err)

	// Account deletion removes the aggregate
	delOut, err := runner.run("account", "delete", account.ID)
	require.NoError(t, err, delOut)

	_, err = runner.run("account", "show", account.ID)
	assert.Error(t, err)
}

func TestCLIBulkImport(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test in short mode")
	}

	mini := miniredis.RunT(t)
	runner := newCLIRunner(t, "redis://"+mini.Addr())

	loginOut, err := runner.run("account", "login", "--google-id", "goog-1")
	require.NoError(t, err, loginOut)
	var account struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal([]byte(loginOut), &account))

	dir := t.TempDir()
	writeEntityFile(t, dir, "fireball.json", `{"Id":"s1","Name":"Fireball","Version":"1"}`)
	writeEntityFile(t, dir, "shield.json", `{"Id":"s2","Name":"Shield","Version":"1"}`)

	importOut, err := runner.run("entity", "import", account.ID, "-c", "spells", "--dir", dir)
	require.NoError(t, err, importOut)

	listOut, err := runner.run("entity", "list", account.ID, "-c", "spells")
	require.NoError(t, err, listOut)
	var ids []string
	require.NoError(t, json.Unmarshal([]byte(listOut), &ids))
	assert.ElementsMatch(t, []string{"s1", "s2"}, ids)
}

func TestCLIWithoutStoreConfigured(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test in short mode")
	}

	runner := newCLIRunner(t, "")
	runner.redisURL = ""

	// The process starts fine; the operation itself reports the missing
	// store configuration.
	output, err := runner.run("account", "show", "u1")
	require.Error(t, err)
	assert.Contains(t, output, "no store connection configured")
}
