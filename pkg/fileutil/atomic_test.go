package fileutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestAtomicWriteFile(t *testing.T) {
	t.Run("creates new file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "out.txt")

		if err := AtomicWriteFile(path, []byte("content"), 0644); err != nil {
			t.Fatalf("AtomicWriteFile() error = %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}
		if string(data) != "content" {
			t.Errorf("content = %q, want %q", data, "content")
		}
	})

	t.Run("replaces existing file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "out.txt")

		if err := os.WriteFile(path, []byte("old"), 0644); err != nil {
			t.Fatal(err)
		}
		if err := AtomicWriteFile(path, []byte("new"), 0644); err != nil {
			t.Fatalf("AtomicWriteFile() error = %v", err)
		}

		data, _ := os.ReadFile(path)
		if string(data) != "new" {
			t.Errorf("content = %q, want %q", data, "new")
		}
	})

	t.Run("applies permissions", func(t *testing.T) {
		if runtime.GOOS == "windows" {
			t.Skip("unix permissions")
		}
		dir := t.TempDir()
		path := filepath.Join(dir, "out.txt")

		if err := AtomicWriteFile(path, []byte("x"), 0600); err != nil {
			t.Fatalf("AtomicWriteFile() error = %v", err)
		}

		info, _ := os.Stat(path)
		if info.Mode().Perm() != 0600 {
			t.Errorf("perm = %04o, want 0600", info.Mode().Perm())
		}
	})

	t.Run("leaves no temp files behind", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "out.txt")

		if err := AtomicWriteFile(path, []byte("x"), 0644); err != nil {
			t.Fatalf("AtomicWriteFile() error = %v", err)
		}

		entries, _ := os.ReadDir(dir)
		for _, e := range entries {
			if strings.Contains(e.Name(), "atomic") {
				t.Errorf("temp file %q left behind", e.Name())
			}
		}
	})
}

func TestAtomicWriteJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.json")

	v := map[string]any{"score": 92, "canProceed": true}
	if err := AtomicWriteJSON(path, v); err != nil {
		t.Fatalf("AtomicWriteJSON() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if data[len(data)-1] != '\n' {
		t.Error("missing trailing newline")
	}

	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if got["canProceed"] != true {
		t.Errorf("canProceed = %v, want true", got["canProceed"])
	}
}

func TestAtomicWriteYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.yaml")

	v := map[string][]string{"lts": {"18", "20", "22"}}
	if err := AtomicWriteYAML(path, v); err != nil {
		t.Fatalf("AtomicWriteYAML() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var got map[string][]string
	if err := yaml.Unmarshal(data, &got); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if len(got["lts"]) != 3 {
		t.Errorf("lts = %v, want 3 entries", got["lts"])
	}
}

func TestReadFileWithLimit(t *testing.T) {
	t.Run("reads small file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "small.txt")
		if err := os.WriteFile(path, []byte("ok"), 0644); err != nil {
			t.Fatal(err)
		}

		data, err := ReadFileWithLimit(path)
		if err != nil {
			t.Fatalf("ReadFileWithLimit() error = %v", err)
		}
		if string(data) != "ok" {
			t.Errorf("data = %q, want %q", data, "ok")
		}
	})

	t.Run("rejects oversized file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "big.txt")
		if err := os.WriteFile(path, make([]byte, MaxFileSize+1), 0644); err != nil {
			t.Fatal(err)
		}

		if _, err := ReadFileWithLimit(path); err == nil {
			t.Error("ReadFileWithLimit() = nil error for oversized file")
		}
	})

	t.Run("missing file returns error", func(t *testing.T) {
		if _, err := ReadFileWithLimit(filepath.Join(t.TempDir(), "missing")); err == nil {
			t.Error("ReadFileWithLimit() = nil error for missing file")
		}
	})
}
