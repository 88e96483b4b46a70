package e2e_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mveale/worddragon/internal/api"
	"github.com/mveale/worddragon/internal/factory"
	"github.com/mveale/worddragon/internal/services/auth"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
	tokenFile  string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	// Find project root (where go.mod is)
	projectRoot := findProjectRoot(t)

	// Build the CLI binary
	binaryPath := filepath.Join(projectRoot, "bin", "worddragon-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/cli")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	// Create temp token file
	tokenFile := filepath.Join(t.TempDir(), "token")

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
		tokenFile:  tokenFile,
	}
}

// sibling returns a runner sharing the built binary but with its own
// token file, for driving a second player.
func (r *cliRunner) sibling(t *testing.T) *cliRunner {
	t.Helper()
	return &cliRunner{
		binaryPath: r.binaryPath,
		serverURL:  r.serverURL,
		tokenFile:  filepath.Join(t.TempDir(), "token"),
	}
}

func (r *cliRunner) run(args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--token-file", r.tokenFile,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
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

// testServer manages a real HTTP server for e2e tests
type testServer struct {
	addr     string
	shutdown func()
}

func startTestServer(t *testing.T) *testServer {
	t.Helper()

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	// Create application
	app, err := factory.New(factory.Config{
		AuthConfig: auth.Config{Secret: "e2e-secret"},
	})
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	router := api.NewRouter(api.RouterConfig{
		Logger:          logger,
		AuthService:     app.AuthService,
		LobbyController: app.LobbyController,
		GameController:  app.GameController,
		HubManager:      app.HubManager,
	})

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server
	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			t.Logf("server error: %v", err)
		}
	}()

	// Wait for server to be ready
	serverURL := "http://" + addr
	waitForServer(t, serverURL+"/api/v1/health")

	return &testServer{
		addr: serverURL,
		shutdown: func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(ctx)
		},
	}
}

func waitForServer(t *testing.T, url string) {
	t.Helper()

	client := &http.Client{Timeout: 100 * time.Millisecond}
	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatal("server did not become ready in time")
}

// Response types for JSON parsing

type snapshotResponse struct {
	GameID  string `json:"game_id"`
	Phase   string `json:"phase"`
	Players []struct {
		ID       string `json:"id"`
		Nickname string `json:"nickname"`
		IsAlive  bool   `json:"is_alive"`
		IsHost   bool   `json:"is_host"`
		Role     string `json:"role"`
	} `json:"players"`
	You struct {
		ID        string `json:"id"`
		Nickname  string `json:"nickname"`
		IsHost    bool   `json:"is_host"`
		KnowsWord bool   `json:"knows_word"`
		Word      string `json:"word"`
	} `json:"you"`
	AliveCount   int    `json:"alive_count"`
	Winner       string `json:"winner"`
	VillagerWord string `json:"villager_word"`
}

type joinedResponse struct {
	GameID   string            `json:"game_id"`
	PlayerID string            `json:"player_id"`
	Token    string            `json:"token"`
	State    *snapshotResponse `json:"state"`
}

type stateResponse struct {
	State *snapshotResponse `json:"state"`
}

type healthResponse struct {
	Status string `json:"status"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Tests

func TestCLI_HealthCheck(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("health")
	require.NoError(t, err, "output: %s", output)

	var resp healthResponse
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestCLI_GameLifecycle(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	host := newCLIRunner(t, ts.addr)
	bob := host.sibling(t)

	// Alice creates a game; the token lands in her token file
	output, err := host.run("game", "create", "Alice")
	require.NoError(t, err, "output: %s", output)

	var created joinedResponse
	require.NoError(t, json.Unmarshal([]byte(output), &created))
	assert.Len(t, created.GameID, 12)
	assert.NotEmpty(t, created.Token)
	require.NotNil(t, created.State)
	assert.Equal(t, "lobby", created.State.Phase)
	assert.True(t, created.State.You.IsHost)
	gameID := created.GameID

	// Bob joins with his own token file
	output, err = bob.run("game", "join", gameID, "Bob")
	require.NoError(t, err, "output: %s", output)

	var joined joinedResponse
	require.NoError(t, json.Unmarshal([]byte(output), &joined))
	assert.Len(t, joined.State.Players, 2)
	assert.False(t, joined.State.You.IsHost)

	// Host sets the voting timer
	output, err = host.run("game", "timer", gameID, "60")
	require.NoError(t, err, "output: %s", output)

	// Bob cannot
	output, err = bob.run("game", "timer", gameID, "90")
	assert.Error(t, err, "non-host should not set the timer")
	assert.Contains(t, strings.ToLower(output), "host")

	// Bob leaves
	output, err = bob.run("game", "leave", gameID)
	require.NoError(t, err, "output: %s", output)

	var msgResp messageResponse
	require.NoError(t, json.Unmarshal([]byte(output), &msgResp))
	assert.Contains(t, msgResp.Message, "Left game")

	// Roster shrinks back to the host
	output, err = host.run("game", "get", gameID)
	require.NoError(t, err, "output: %s", output)

	var state stateResponse
	require.NoError(t, json.Unmarshal([]byte(output), &state))
	assert.Len(t, state.State.Players, 1)
}

func TestCLI_FullGameFlow(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	host := newCLIRunner(t, ts.addr)
	runners := map[string]*cliRunner{"Alice": host}
	for _, name := range []string{"Bob", "Carol"} {
		runners[name] = host.sibling(t)
	}

	// Alice creates, the others join
	output, err := host.run("game", "create", "Alice")
	require.NoError(t, err, "output: %s", output)
	var created joinedResponse
	require.NoError(t, json.Unmarshal([]byte(output), &created))
	gameID := created.GameID

	for _, name := range []string{"Bob", "Carol"} {
		output, err = runners[name].run("game", "join", gameID, name)
		require.NoError(t, err, "join %s: %s", name, output)
	}

	// Alice starts the game
	output, err = host.run("game", "start", gameID)
	require.NoError(t, err, "output: %s", output)
	var state stateResponse
	require.NoError(t, json.Unmarshal([]byte(output), &state))
	assert.Equal(t, "playing", state.State.Phase)

	// Find the dragon: the one player who does not know the word
	var dragonName, dragonID string
	for name, r := range runners {
		output, err = r.run("game", "get", gameID)
		require.NoError(t, err, "get %s: %s", name, output)
		require.NoError(t, json.Unmarshal([]byte(output), &state))
		if !state.State.You.KnowsWord {
			dragonName = name
			dragonID = state.State.You.ID
		}
	}
	require.NotEmpty(t, dragonName, "one player must be the dragon")
	t.Logf("dragon is %s", dragonName)

	// Host opens voting, everyone votes out the dragon
	output, err = host.run("play", "voting", gameID)
	require.NoError(t, err, "output: %s", output)

	for name, r := range runners {
		output, err = r.run("play", "vote", gameID, dragonID)
		require.NoError(t, err, "vote %s: %s", name, output)
	}
	require.NoError(t, json.Unmarshal([]byte(output), &state))
	assert.Equal(t, "dragon_guess", state.State.Phase)

	// A non-dragon cannot guess
	for name, r := range runners {
		if name == dragonName {
			continue
		}
		output, err = r.run("play", "guess", gameID, "anything")
		assert.Error(t, err, "non-dragon guess should fail")
		assert.Contains(t, strings.ToLower(output), "dragon")
		break
	}

	// The dragon guesses wrong and the villagers win
	output, err = runners[dragonName].run("play", "guess", gameID, "chimney")
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &state))
	assert.Equal(t, "finished", state.State.Phase)
	assert.Equal(t, "villagers", state.State.Winner)
	assert.NotEmpty(t, state.State.VillagerWord)

	// Roles are revealed after the finish
	for _, p := range state.State.Players {
		assert.NotEmpty(t, p.Role)
	}
}

func TestCLI_ErrorHandling(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Reads require a token
	output, err := cli.run("game", "get", "MISSINGGAME0")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "authentication")

	// Bad nicknames are rejected
	output, err = cli.run("game", "create", "Al!ce")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "nickname")
}
