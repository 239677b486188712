package remedy

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/saga95/amplify-doctor/internal/errors"
	"github.com/saga95/amplify-doctor/internal/logging"
)

func newTestDispatcher(t *testing.T) (*Dispatcher, string) {
	t.Helper()
	root := t.TempDir()
	return NewDispatcher(root, logging.ForTest(t)), root
}

func TestApply_UnknownAction(t *testing.T) {
	d, _ := newTestDispatcher(t)

	err := d.Apply(context.Background(), "no-such-action", nil)
	if !errors.Is(err, errors.ErrUnknownAction) {
		t.Errorf("Apply() error = %v, want ErrUnknownAction", err)
	}
}

func TestActions_SortedAndComplete(t *testing.T) {
	d, _ := newTestDispatcher(t)

	want := []string{ActionAppendFile, ActionRegexReplace, ActionRunCommand, ActionWriteFile}
	got := d.Actions()
	if len(got) != len(want) {
		t.Fatalf("Actions() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Actions()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestWriteFile(t *testing.T) {
	t.Run("writes content", func(t *testing.T) {
		d, root := newTestDispatcher(t)

		err := d.Apply(context.Background(), ActionWriteFile, map[string]string{
			ParamPath:    ".nvmrc",
			ParamContent: "22\n",
		})
		if err != nil {
			t.Fatalf("Apply() error = %v", err)
		}

		data, _ := os.ReadFile(filepath.Join(root, ".nvmrc"))
		if string(data) != "22\n" {
			t.Errorf("content = %q, want %q", data, "22\n")
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		d, root := newTestDispatcher(t)
		params := map[string]string{ParamPath: ".nvmrc", ParamContent: "22\n"}

		if err := d.Apply(context.Background(), ActionWriteFile, params); err != nil {
			t.Fatal(err)
		}
		first, _ := os.ReadFile(filepath.Join(root, ".nvmrc"))

		if err := d.Apply(context.Background(), ActionWriteFile, params); err != nil {
			t.Fatal(err)
		}
		second, _ := os.ReadFile(filepath.Join(root, ".nvmrc"))

		if string(first) != string(second) {
			t.Errorf("second apply changed file: %q vs %q", first, second)
		}
	})

	t.Run("missing content param", func(t *testing.T) {
		d, _ := newTestDispatcher(t)

		err := d.Apply(context.Background(), ActionWriteFile, map[string]string{ParamPath: "x"})
		if err == nil {
			t.Error("Apply() error = nil, want missing parameter error")
		}
	})
}

func TestAppendFile(t *testing.T) {
	t.Run("appends to existing file", func(t *testing.T) {
		d, root := newTestDispatcher(t)
		path := filepath.Join(root, ".gitignore")
		if err := os.WriteFile(path, []byte("node_modules/\n"), 0o644); err != nil {
			t.Fatal(err)
		}

		err := d.Apply(context.Background(), ActionAppendFile, map[string]string{
			ParamPath:    ".gitignore",
			ParamContent: ".env\n",
		})
		if err != nil {
			t.Fatalf("Apply() error = %v", err)
		}

		data, _ := os.ReadFile(path)
		if string(data) != "node_modules/\n.env\n" {
			t.Errorf("content = %q", data)
		}
	})

	t.Run("creates missing file", func(t *testing.T) {
		d, root := newTestDispatcher(t)

		err := d.Apply(context.Background(), ActionAppendFile, map[string]string{
			ParamPath:    ".gitignore",
			ParamContent: ".env",
		})
		if err != nil {
			t.Fatalf("Apply() error = %v", err)
		}

		data, _ := os.ReadFile(filepath.Join(root, ".gitignore"))
		if string(data) != ".env\n" {
			t.Errorf("content = %q, want %q", data, ".env\n")
		}
	})

	t.Run("double apply is byte identical", func(t *testing.T) {
		d, root := newTestDispatcher(t)
		params := map[string]string{ParamPath: ".gitignore", ParamContent: ".env\n"}

		if err := d.Apply(context.Background(), ActionAppendFile, params); err != nil {
			t.Fatal(err)
		}
		first, _ := os.ReadFile(filepath.Join(root, ".gitignore"))

		if err := d.Apply(context.Background(), ActionAppendFile, params); err != nil {
			t.Fatal(err)
		}
		second, _ := os.ReadFile(filepath.Join(root, ".gitignore"))

		if string(first) != string(second) {
			t.Errorf("second apply duplicated content: %q vs %q", first, second)
		}
	})

	t.Run("marker suppresses duplicate section", func(t *testing.T) {
		d, root := newTestDispatcher(t)
		path := filepath.Join(root, "amplify.yml")
		original := "version: 1\ncache:\n  paths:\n    - node_modules/**/*\n"
		if err := os.WriteFile(path, []byte(original), 0o644); err != nil {
			t.Fatal(err)
		}

		err := d.Apply(context.Background(), ActionAppendFile, map[string]string{
			ParamPath:    "amplify.yml",
			ParamContent: "cache:\n  paths:\n    - node_modules/**/*\n",
			ParamMarker:  "cache:",
		})
		if err != nil {
			t.Fatalf("Apply() error = %v", err)
		}

		data, _ := os.ReadFile(path)
		if string(data) != original {
			t.Errorf("marker present but file changed: %q", data)
		}
	})
}

func TestRegexReplace(t *testing.T) {
	t.Run("replaces matches", func(t *testing.T) {
		d, root := newTestDispatcher(t)
		path := filepath.Join(root, "amplify.yml")
		if err := os.WriteFile(path, []byte("commands:\n  - nvm use 16\n"), 0o644); err != nil {
			t.Fatal(err)
		}

		err := d.Apply(context.Background(), ActionRegexReplace, map[string]string{
			ParamPath:        "amplify.yml",
			ParamPattern:     `nvm use \S+`,
			ParamReplacement: "nvm use 20",
		})
		if err != nil {
			t.Fatalf("Apply() error = %v", err)
		}

		data, _ := os.ReadFile(path)
		if string(data) != "commands:\n  - nvm use 20\n" {
			t.Errorf("content = %q", data)
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		d, root := newTestDispatcher(t)
		path := filepath.Join(root, "amplify.yml")
		if err := os.WriteFile(path, []byte("nvm use 16\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		params := map[string]string{
			ParamPath:        "amplify.yml",
			ParamPattern:     `nvm use \S+`,
			ParamReplacement: "nvm use 20",
		}

		if err := d.Apply(context.Background(), ActionRegexReplace, params); err != nil {
			t.Fatal(err)
		}
		first, _ := os.ReadFile(path)

		if err := d.Apply(context.Background(), ActionRegexReplace, params); err != nil {
			t.Fatal(err)
		}
		second, _ := os.ReadFile(path)

		if string(first) != string(second) {
			t.Errorf("second apply changed file: %q vs %q", first, second)
		}
	})

	t.Run("invalid pattern", func(t *testing.T) {
		d, root := newTestDispatcher(t)
		if err := os.WriteFile(filepath.Join(root, "f"), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}

		err := d.Apply(context.Background(), ActionRegexReplace, map[string]string{
			ParamPath:        "f",
			ParamPattern:     "(",
			ParamReplacement: "y",
		})
		if err == nil {
			t.Error("Apply() error = nil for invalid pattern")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		d, _ := newTestDispatcher(t)

		err := d.Apply(context.Background(), ActionRegexReplace, map[string]string{
			ParamPath:        "missing.yml",
			ParamPattern:     "a",
			ParamReplacement: "b",
		})
		if err == nil {
			t.Error("Apply() error = nil for missing file")
		}
		var remErr *Error
		if !errors.As(err, &remErr) {
			t.Errorf("error %v is not a remediation Error", err)
		}
	})
}

func TestResolvePath_RejectsEscapes(t *testing.T) {
	d, _ := newTestDispatcher(t)

	tests := []struct {
		name string
		path string
	}{
		{"absolute path", "/etc/passwd"},
		{"parent escape", "../outside.txt"},
		{"nested escape", "a/../../outside.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := d.Apply(context.Background(), ActionWriteFile, map[string]string{
				ParamPath:    tt.path,
				ParamContent: "x",
			})
			if err == nil {
				t.Errorf("Apply() accepted path %q", tt.path)
			}
		})
	}
}

func TestMutating(t *testing.T) {
	tests := []struct {
		actionID string
		want     bool
	}{
		{ActionWriteFile, true},
		{ActionAppendFile, true},
		{ActionRegexReplace, true},
		{ActionRunCommand, false},
		{"unknown", false},
	}

	for _, tt := range tests {
		if got := Mutating(tt.actionID); got != tt.want {
			t.Errorf("Mutating(%q) = %v, want %v", tt.actionID, got, tt.want)
		}
	}
}

func TestRunCommand_MissingParam(t *testing.T) {
	d, _ := newTestDispatcher(t)

	if err := d.Apply(context.Background(), ActionRunCommand, nil); err == nil {
		t.Error("Apply() error = nil without command param")
	}
}
