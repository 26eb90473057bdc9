package main_test

import (
	"bytes"
	"context"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/fwojciec/sitechat"
	main "github.com/fwojciec/sitechat/cmd/sitechat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var addedID = regexp.MustCompile(`\(([0-9a-f-]{36})\)`)

// run executes one CLI invocation against the database at path.
func run(t *testing.T, path string, args ...string) (string, string, error) {
	t.Helper()

	m := main.NewMain()
	m.DBPath = path

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	err := m.Run(context.Background(), args, stdout, stderr)
	return stdout.String(), stderr.String(), err
}

func TestMain_Run_Website(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "test.db")

	out, _, err := run(t, path, "website", "add", "docs", "https://example.com/docs", "--depth", "2")
	require.NoError(t, err)
	assert.Contains(t, out, `Added website "docs"`)
	m := addedID.FindStringSubmatch(out)
	require.Len(t, m, 2)
	id := m[1]

	out, _, err = run(t, path, "website", "list")
	require.NoError(t, err)
	assert.Contains(t, out, id)
	assert.Contains(t, out, "https://example.com/docs")
	assert.Contains(t, out, "pending")

	out, _, err = run(t, path, "status", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Status:    pending")
	assert.Contains(t, out, "Documents: 0")
}

func TestMain_Run_WebsiteDuplicateURL(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "test.db")

	_, _, err := run(t, path, "website", "add", "docs", "https://example.com/")
	require.NoError(t, err)

	_, stderr, err := run(t, path, "website", "add", "again", "https://example.com/")
	require.Error(t, err)
	assert.Equal(t, sitechat.ECONFLICT, sitechat.ErrorCode(err))
	assert.Contains(t, stderr, "error:")
}

func TestMain_Run_User(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "test.db")

	out, _, err := run(t, path, "user", "add", "alice")
	require.NoError(t, err)
	assert.Contains(t, out, `Added user "alice"`)
	m := addedID.FindStringSubmatch(out)
	require.Len(t, m, 2)

	out, _, err = run(t, path, "history", m[1])
	require.NoError(t, err)
	assert.Contains(t, out, "No dialogues found.")
}

func TestMain_Run_CrawlUnknownWebsite(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "test.db")

	_, _, err := run(t, path, "crawl", "missing")

	require.Error(t, err)
	assert.Equal(t, sitechat.ENOTFOUND, sitechat.ErrorCode(err))
}

func TestMain_Run_Purge(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "test.db")

	out, _, err := run(t, path, "website", "add", "docs", "https://example.com/")
	require.NoError(t, err)
	id := addedID.FindStringSubmatch(out)[1]

	_, stderr, err := run(t, path, "purge", id)
	require.Error(t, err)
	assert.Contains(t, stderr, "--force")

	out, _, err = run(t, path, "purge", id, "--force")
	require.NoError(t, err)
	assert.Contains(t, out, `Deleted documents of "docs"`)
}
