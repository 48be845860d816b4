package cli

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RomanHargrave/lyrebird/pkg/errclass"
	"github.com/RomanHargrave/lyrebird/pkg/model"
)

type logLine struct {
	Type string          `json:"type"`
	Time string          `json:"time"`
	PID  uint32          `json:"pid"`
	User *string         `json:"user"`
	Cmd  []string        `json:"cmd"`
	Data json.RawMessage `json:"data"`
}

// testEnv isolates a test from the user's configuration and default log.
type testEnv struct {
	dir    string
	log    string
	config string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	return &testEnv{
		dir:    dir,
		log:    filepath.Join(dir, "actions.log"),
		config: filepath.Join(dir, "config.yaml"),
	}
}

func (e *testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(append([]string{"--log", e.log, "--config", e.config, "--no-color"}, args...))
	err := root.Execute()
	return out.String(), err
}

func (e *testEnv) lines(t *testing.T) []logLine {
	t.Helper()
	f, err := os.Open(e.log)
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(t, err)
	defer f.Close()

	var out []logLine
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var l logLine
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &l), "line %q", scanner.Text())
		out = append(out, l)
	}
	require.NoError(t, scanner.Err())
	return out
}

func TestRootCommand_Help(t *testing.T) {
	env := newTestEnv(t)
	stdout, err := env.run(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, stdout, "append-only log")
}

func TestFileCreate_WritesOneLine(t *testing.T) {
	env := newTestEnv(t)
	path := filepath.Join(env.dir, "created.txt")

	stdout, err := env.run(t, "file", "create", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Hello from Lyrebird!\n", string(data))

	lines := env.lines(t)
	require.Len(t, lines, 1)
	l := lines[0]
	assert.Equal(t, "File", l.Type)
	assert.Equal(t, uint32(os.Getpid()), l.PID)
	assert.Equal(t, os.Args, l.Cmd)
	assert.True(t, strings.HasSuffix(l.Time, "Z"))
	_, err = time.Parse(time.RFC3339Nano, l.Time)
	assert.NoError(t, err)

	var fa model.FileAction
	require.NoError(t, json.Unmarshal(l.Data, &fa))
	assert.Equal(t, model.FileAction{Action: model.FileCreate, File: path}, fa)
}

func TestFileLifecycle_AppendsInOrder(t *testing.T) {
	env := newTestEnv(t)
	path := filepath.Join(env.dir, "f.txt")

	_, err := env.run(t, "file", "create", path, "--content", "a")
	require.NoError(t, err)
	_, err = env.run(t, "file", "modify", path, "-c", "b")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "ab", string(data))

	_, err = env.run(t, "file", "delete", path)
	require.NoError(t, err)

	lines := env.lines(t)
	require.Len(t, lines, 3)
	for i, op := range []model.FileOp{model.FileCreate, model.FileModify, model.FileDelete} {
		var fa model.FileAction
		require.NoError(t, json.Unmarshal(lines[i].Data, &fa))
		assert.Equal(t, op, fa.Action)
		assert.Equal(t, path, fa.File)
	}
}

func TestFileCreate_ExistingFileFails(t *testing.T) {
	env := newTestEnv(t)
	path := filepath.Join(env.dir, "exists.txt")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	_, err := env.run(t, "file", "create", path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errclass.ErrActionFailed))
	assert.Empty(t, env.lines(t))
}

func TestFileCreate_JSONOutput(t *testing.T) {
	env := newTestEnv(t)
	path := filepath.Join(env.dir, "j.txt")

	stdout, err := env.run(t, "--json", "file", "create", path)
	require.NoError(t, err)

	var fa model.FileAction
	require.NoError(t, json.Unmarshal([]byte(stdout), &fa))
	assert.Equal(t, path, fa.File)
	assert.Equal(t, model.FileCreate, fa.Action)
}

func TestExec_Wait(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX userland")
	}
	exe, err := exec.LookPath("true")
	if err != nil {
		t.Skip("true not found")
	}
	env := newTestEnv(t)

	_, err = env.run(t, "exec", "--wait", exe, "--not-a-lyrebird-flag")
	require.NoError(t, err)

	lines := env.lines(t)
	require.Len(t, lines, 1)
	assert.Equal(t, "StartProcess", lines[0].Type)

	var ps model.ProcessStart
	require.NoError(t, json.Unmarshal(lines[0].Data, &ps))
	assert.Equal(t, exe, ps.Cmd)
	assert.Equal(t, []string{"--not-a-lyrebird-flag"}, ps.Args)
	assert.Positive(t, ps.PID)
}

func TestNetTCP(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	go func() {
		conn, err := ln.Accept()
		if err == nil {
			io.Copy(io.Discard, conn)
			conn.Close()
		}
	}()

	env := newTestEnv(t)
	_, err = env.run(t, "net", "tcp", ln.Addr().String(), "-t", "5")
	require.NoError(t, err)

	lines := env.lines(t)
	require.Len(t, lines, 1)
	assert.Equal(t, "NetSend", lines[0].Type)

	var ns model.NetSend
	require.NoError(t, json.Unmarshal(lines[0].Data, &ns))
	assert.Equal(t, "TCP", ns.Proto)
	assert.Equal(t, len("Ping from Lyrebird!"), ns.Bytes)
	assert.Equal(t, ln.Addr().(*net.TCPAddr).Port, ns.DstPort)
}

func TestNetUDP_CustomData(t *testing.T) {
	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	defer pc.Close()

	env := newTestEnv(t)
	_, err = env.run(t, "net", "udp", pc.LocalAddr().String(), "abc")
	require.NoError(t, err)

	var ns model.NetSend
	require.NoError(t, json.Unmarshal(env.lines(t)[0].Data, &ns))
	assert.Equal(t, "UDP", ns.Proto)
	assert.Equal(t, 3, ns.Bytes)
}

func TestWhoami(t *testing.T) {
	env := newTestEnv(t)
	stdout, err := env.run(t, "whoami")
	require.NoError(t, err)
	assert.NotEmpty(t, strings.TrimSpace(stdout))
	assert.Empty(t, env.lines(t))
}

func TestConfigInitAndShow(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run(t, "config", "init", env.config)
	require.NoError(t, err)
	_, err = os.Stat(env.config)
	require.NoError(t, err)

	_, err = env.run(t, "config", "init", env.config)
	assert.Error(t, err)
	_, err = env.run(t, "config", "init", "--force", env.config)
	assert.NoError(t, err)

	t.Setenv("LYREBIRD_NET_MESSAGE", "from env")
	stdout, err := env.run(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, "message: from env")
	assert.Contains(t, stdout, "log: "+env.log)
	assert.Contains(t, stdout, "timeout: 10")
}

func TestInvalidLogLevel(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run(t, "--log-level", "loud", "whoami")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errclass.ErrConfigInvalid))
}

func TestDiscardTarget(t *testing.T) {
	env := newTestEnv(t)
	path := filepath.Join(env.dir, "d.txt")

	root := newRootCmd()
	root.SetOut(io.Discard)
	root.SetArgs([]string{"--config", env.config, "--log", "discard", "file", "create", path})
	require.NoError(t, root.Execute())

	_, err := os.Stat(path)
	assert.NoError(t, err)
	assert.Empty(t, env.lines(t))
}

func TestLogFromEnvironment(t *testing.T) {
	env := newTestEnv(t)
	alt := filepath.Join(env.dir, "env.log")
	t.Setenv("LYREBIRD_LOG", alt)

	root := newRootCmd()
	root.SetOut(io.Discard)
	root.SetArgs([]string{"--config", env.config, "file", "create", filepath.Join(env.dir, "e.txt")})
	require.NoError(t, root.Execute())

	data, err := os.ReadFile(alt)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), "\n"))
}
