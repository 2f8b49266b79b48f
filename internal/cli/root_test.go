package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GiovannaDuccini08/Sistema-CRUD/internal/common"
	"github.com/GiovannaDuccini08/Sistema-CRUD/internal/config"
)

func stubEnv(t *testing.T, m map[string]string) {
	t.Helper()
	orig := getenv
	getenv = func(k string) string { return m[k] }
	t.Cleanup(func() { getenv = orig })
}

type result struct {
	out, errOut string
	err         error
}

func run(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return result{out: out.String(), errOut: errOut.String(), err: err}
}

func TestRoot_OneShotCommands(t *testing.T) {
	stubEnv(t, nil)
	data := filepath.Join(t.TempDir(), "usuarios.json")

	r := run(t, "abc123\n", "-f", data, "register", "--name", "Ana", "--email", "ana@example.com")
	require.NoError(t, r.err)
	assert.Contains(t, r.out, "User registered with id 1.")

	r = run(t, "xyz789\n", "-f", data, "register", "--name", "Bea", "--email", "bea@example.com")
	require.NoError(t, r.err)
	assert.Contains(t, r.out, "User registered with id 2.")

	r = run(t, "pw\n", "-f", data, "register", "--name", "Dup", "--email", "ana@example.com")
	assert.True(t, common.IsValidation(r.err, common.ReasonDuplicateEmail))

	r = run(t, "abc123\n", "-f", data, "login", "--email", "ana@example.com")
	require.NoError(t, r.err)
	assert.Contains(t, r.out, "Welcome, Ana! (id 1)")

	r = run(t, "wrong\n", "-f", data, "login", "--email", "ana@example.com")
	require.ErrorIs(t, r.err, common.ErrAuthentication)

	r = run(t, "", "-f", data, "rename", "2", "Bea", "Souza")
	require.NoError(t, r.err)

	r = run(t, "", "-f", data, "delete", "1")
	require.NoError(t, r.err)

	r = run(t, "", "-f", data, "delete", "1")
	require.ErrorIs(t, r.err, common.ErrNotFound)

	r = run(t, "", "-f", data, "list", "-o", "json")
	require.NoError(t, r.err)

	var listed []map[string]any
	require.NoError(t, json.Unmarshal([]byte(r.out), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, float64(2), listed[0]["id"])
	assert.Equal(t, "Bea Souza", listed[0]["name"])
	assert.NotContains(t, r.out, "senha")

	dst := filepath.Join(t.TempDir(), "backup.json")
	r = run(t, "", "-f", data, "backup", dst)
	require.NoError(t, r.err)
	want, _ := os.ReadFile(data)
	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestRoot_ShellSession(t *testing.T) {
	stubEnv(t, nil)
	data := filepath.Join(t.TempDir(), "usuarios.json")

	stdin := strings.Join([]string{
		"register", "Ana", "ana@example.com", "abc123",
		"register", "Bea", "bea@example.com", "xyz789",
		"login", "ana@example.com", "wrong",
		"login", "ana@example.com", "abc123",
		"list",
		"delete 1",
		"exit",
	}, "\n") + "\n"

	r := run(t, stdin, "--data-file", data)
	require.NoError(t, r.err)

	assert.Contains(t, r.out, "User registered with id 1.")
	assert.Contains(t, r.out, "User registered with id 2.")
	assert.Contains(t, r.out, "Error: invalid email or password")
	assert.Contains(t, r.out, "Welcome, Ana!")
	assert.Contains(t, r.out, "ID: 2 | Name: Bea | Email: bea@example.com")
	assert.Contains(t, r.out, "Your account was removed; logged out.")
	assert.Contains(t, r.out, "Bye!")

	r = run(t, "", "-f", data, "list")
	require.NoError(t, r.err)
	assert.Equal(t, "ID: 2 | Name: Bea | Email: bea@example.com\n", r.out)
}

func TestRoot_EnvSelectsDataFile(t *testing.T) {
	data := filepath.Join(t.TempDir(), "env.json")
	stubEnv(t, map[string]string{config.EnvDataFile: data})

	r := run(t, "pw\n", "register", "--name", "Ana", "--email", "ana@example.com")
	require.NoError(t, r.err)

	_, err := os.Stat(data)
	require.NoError(t, err)
}

func TestRoot_MalformedFileFailsFast(t *testing.T) {
	stubEnv(t, nil)
	data := filepath.Join(t.TempDir(), "usuarios.json")
	require.NoError(t, os.WriteFile(data, []byte("{not json"), 0o600))

	r := run(t, "", "-f", data, "list")

	var se *common.StorageError
	require.ErrorAs(t, r.err, &se)
}

func TestRoot_HelpAndCompletionSkipTheDataFile(t *testing.T) {
	stubEnv(t, nil)
	data := filepath.Join(t.TempDir(), "usuarios.json")
	require.NoError(t, os.WriteFile(data, []byte("{not json"), 0o600))

	r := run(t, "", "-f", data, "help")
	require.NoError(t, r.err)
	assert.Contains(t, r.out, "usercrud")

	r = run(t, "", "-f", data, "help", "list")
	require.NoError(t, r.err)

	r = run(t, "", "-f", data, "completion", "bash")
	require.NoError(t, r.err)
	assert.NotEmpty(t, r.out)
}

func TestRoot_CancelledShellExitsInterrupted(t *testing.T) {
	stubEnv(t, nil)
	data := filepath.Join(t.TempDir(), "usuarios.json")

	in, w := io.Pipe()
	t.Cleanup(func() { _ = in.Close(); _ = w.Close() })

	cmd := NewRootCmd()
	cmd.SetIn(in)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"-f", data})

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)

	err := cmd.ExecuteContext(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, ExitInterrupted, exitCode(err))
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, exitCode(nil))
	assert.Equal(t, 1, exitCode(common.ErrNotFound))
	assert.Equal(t, ExitInterrupted, exitCode(fmt.Errorf("shell: %w", context.Canceled)))
}

func TestRoot_InvalidConfig(t *testing.T) {
	stubEnv(t, nil)
	data := filepath.Join(t.TempDir(), "usuarios.json")

	r := run(t, "", "-f", data, "--hash", "md5", "list")
	require.Error(t, r.err)

	r = run(t, "", "-f", data, "list", "-o", "yaml")
	require.Error(t, r.err)
}

func TestRoot_LogsGoToStderr(t *testing.T) {
	stubEnv(t, nil)
	data := filepath.Join(t.TempDir(), "usuarios.json")

	r := run(t, "abc123\n", "-f", data, "--log-level", "info", "--log-format", "json",
		"register", "--name", "Ana", "--email", "ana@example.com")
	require.NoError(t, r.err)

	assert.Contains(t, r.errOut, `"msg":"user registered"`)
	assert.NotContains(t, r.errOut, "abc123")
	assert.NotContains(t, r.out, "user registered")
}
