package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/soliskit/tetris/internal/storage"
)

// execute runs the root command with args and returns its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	flagDBPath = filepath.Join(t.TempDir(), "test.db")
	flagConfig = ""
	flagDifficulty = ""
	flagClear = false
	flagPlayer = ""
	flagLimit = 10
	flagClearScores = false
	flagScoresPlayer = ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "--db", flagDBPath))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestConfigCommand(t *testing.T) {
	out, err := execute(t, "config", "--difficulty", "hard")
	if err != nil {
		t.Fatalf("config failed: %v", err)
	}
	if !strings.Contains(out, "standard_drop_ms: 450") {
		t.Errorf("expected the hard preset in output, got:\n%s", out)
	}
}

func TestConfigCommandRejectsUnknownDifficulty(t *testing.T) {
	if _, err := execute(t, "config", "--difficulty", "brutal"); err == nil {
		t.Error("expected an error for an unknown difficulty")
	}
}

func TestScoresCommandEmpty(t *testing.T) {
	out, err := execute(t, "scores")
	if err != nil {
		t.Fatalf("scores failed: %v", err)
	}
	if !strings.Contains(out, "No scores recorded yet.") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestSessionCommandWithoutSession(t *testing.T) {
	out, err := execute(t, "session")
	if err != nil {
		t.Fatalf("session failed: %v", err)
	}
	if !strings.Contains(out, "No saved session.") {
		t.Errorf("unexpected output:\n%s", out)
	}

	out, err = execute(t, "session", "--clear")
	if err != nil {
		t.Fatalf("session --clear failed: %v", err)
	}
	if !strings.Contains(out, "Saved session cleared.") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestScoresCommandListsEntries(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "scores.db")
	store, err := storage.Open(dbPath)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if _, err := store.SaveScore(storage.ScoreEntry{RunID: "r", Player: "alice", Score: 900, Level: 1, Lines: 5}); err != nil {
		t.Fatalf("SaveScore failed: %v", err)
	}
	store.Close()
	flagClearScores = false
	flagScoresPlayer = ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"scores", "--db", dbPath, "--limit", "5"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("scores failed: %v", err)
	}
	for _, want := range []string{"alice", "900", "Best: 900"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output should contain %q:\n%s", want, out.String())
		}
	}
}

func TestScoresCommandPlayerFilter(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "scores.db")
	store, err := storage.Open(dbPath)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	store.SaveScore(storage.ScoreEntry{RunID: "a", Player: "alice", Score: 900})
	store.SaveScore(storage.ScoreEntry{RunID: "b", Player: "bob", Score: 1500})
	store.Close()
	flagClearScores = false
	flagLimit = 10

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"scores", "--db", dbPath, "--player", "alice"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("scores --player failed: %v", err)
	}
	flagScoresPlayer = ""

	got := out.String()
	if strings.Contains(got, "bob") || strings.Contains(got, "1500") {
		t.Errorf("filtered output should not list other players:\n%s", got)
	}
	if !strings.Contains(got, "Best: 900  Games: 1") {
		t.Errorf("filtered stats missing:\n%s", got)
	}
}

func TestScoresCommandClear(t *testing.T) {
	out, err := execute(t, "scores", "--clear")
	if err != nil {
		t.Fatalf("scores --clear failed: %v", err)
	}
	if !strings.Contains(out, "Score history cleared.") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestPort(t *testing.T) {
	if got := port(":23234"); got != "23234" {
		t.Errorf("port = %q, expected 23234", got)
	}
	if got := port("localhost:2222"); got != "2222" {
		t.Errorf("port = %q, expected 2222", got)
	}
}
