package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	skerrors "github.com/skeinlab/skein/pkg/errors"
)

func TestLoggerContext(t *testing.T) {
	l := newLogger(io.Discard, log.DebugLevel)
	ctx := withLogger(context.Background(), l)
	if got := loggerFromContext(ctx); got != l {
		t.Error("loggerFromContext should return the attached logger")
	}
	if got := loggerFromContext(context.Background()); got != log.Default() {
		t.Error("loggerFromContext should fall back to log.Default")
	}
}

func TestResolveDiagram(t *testing.T) {
	t.Run("named", func(t *testing.T) {
		d, err := resolveDiagram("trefoil")
		if err != nil {
			t.Fatalf("resolveDiagram: %v", err)
		}
		if d.Size() != 3 {
			t.Errorf("Size = %d, want 3", d.Size())
		}
	})

	t.Run("signature", func(t *testing.T) {
		d, err := resolveDiagram("s02:;s13:")
		if err != nil {
			t.Fatalf("resolveDiagram: %v", err)
		}
		if d.Strings() != 2 {
			t.Errorf("Strings = %d, want 2", d.Strings())
		}
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := resolveDiagram("not a diagram!")
		if err == nil {
			t.Fatal("resolveDiagram succeeded on garbage")
		}
		if !skerrors.Is(err, skerrors.ErrCodeInvalidSignature) {
			t.Errorf("err = %v, want an INVALID_SIGNATURE error", err)
		}
	})

	t.Run("well-formed but inconsistent", func(t *testing.T) {
		_, err := resolveDiagram("c:0+l")
		if !skerrors.Is(err, skerrors.ErrCodeInvalidSignature) {
			t.Errorf("err = %v, want an INVALID_SIGNATURE error", err)
		}
	})
}

func TestLoadConfig(t *testing.T) {
	t.Run("defaults when absent", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())
		cfg := LoadConfig()
		if cfg.MaxSize != 8 {
			t.Errorf("MaxSize = %d, want 8", cfg.MaxSize)
		}
		if cfg.MongoDatabase != appName {
			t.Errorf("MongoDatabase = %q, want %q", cfg.MongoDatabase, appName)
		}
	})

	t.Run("reads file", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", dir)
		path := filepath.Join(dir, appName, "config.toml")
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		content := "workers = 4\nmax_size = 12\ncache_dir = \"/tmp/skein-test\"\n"
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}

		cfg := LoadConfig()
		if cfg.Workers != 4 || cfg.MaxSize != 12 || cfg.CacheDir != "/tmp/skein-test" {
			t.Errorf("cfg = %+v", cfg)
		}
		// Unset fields keep their defaults.
		if cfg.MongoDatabase != appName {
			t.Errorf("MongoDatabase = %q, want %q", cfg.MongoDatabase, appName)
		}
	})

	t.Run("malformed file falls back", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", dir)
		path := filepath.Join(dir, appName, "config.toml")
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("max_size = \"many\""), 0o644); err != nil {
			t.Fatal(err)
		}

		cfg := LoadConfig()
		if cfg.MaxSize != 8 {
			t.Errorf("MaxSize = %d, want the default 8", cfg.MaxSize)
		}
	})
}

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")
	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir: %v", err)
	}
	if dir != filepath.Join("/tmp/xdg-cache", appName) {
		t.Errorf("cacheDir = %q", dir)
	}
}

func TestNewCensusStore(t *testing.T) {
	c := &CLI{Config: DefaultConfig()}
	ctx := context.Background()

	t.Run("memory by default", func(t *testing.T) {
		store, err := c.newCensusStore(ctx, "", "")
		if err != nil {
			t.Fatalf("newCensusStore: %v", err)
		}
		defer store.Close(ctx)
		if n, err := store.Count(ctx); err != nil || n != 0 {
			t.Errorf("Count = %d, %v", n, err)
		}
	})

	t.Run("file when output given", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "census.jsonl")
		store, err := c.newCensusStore(ctx, path, "")
		if err != nil {
			t.Fatalf("newCensusStore: %v", err)
		}
		if err := store.Close(ctx); err != nil {
			t.Errorf("Close: %v", err)
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("census file not created: %v", err)
		}
	})

	t.Run("rejects traversal paths", func(t *testing.T) {
		_, err := c.newCensusStore(ctx, "../census.jsonl", "")
		if err == nil {
			t.Fatal("newCensusStore accepted a traversal path")
		}
		var serr *skerrors.Error
		if !errors.As(err, &serr) || serr.Code != skerrors.ErrCodeInvalidInput {
			t.Errorf("err = %v, want INVALID_INPUT", err)
		}
	})
}

func TestRootCommandWiring(t *testing.T) {
	c := &CLI{Config: DefaultConfig()}
	root := c.RootCommand()

	want := []string{"explore", "simplify", "render", "info", "serve", "cache", "completion"}
	for _, name := range want {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}
