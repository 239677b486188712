package nodever

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultTable_Valid(t *testing.T) {
	if err := DefaultTable().Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestClassify(t *testing.T) {
	table := DefaultTable()

	tests := []struct {
		major string
		want  Class
	}{
		{"18", ClassLTS},
		{"20", ClassLTS},
		{"22", ClassLTS},
		{"24", ClassCurrent},
		{"16", ClassDeprecated},
		{"14", ClassDeprecated},
		{"25", ClassExperimental},
		{"99", ClassUnsupported},
		{"latest", ClassUnsupported},
		{"", ClassUnsupported},
	}

	for _, tt := range tests {
		if got := table.Classify(tt.major); got != tt.want {
			t.Errorf("Classify(%q) = %q, want %q", tt.major, got, tt.want)
		}
	}
}

func TestClass_Supported(t *testing.T) {
	tests := []struct {
		class Class
		want  bool
	}{
		{ClassLTS, true},
		{ClassCurrent, true},
		{ClassDeprecated, false},
		{ClassExperimental, false},
		{ClassUnsupported, false},
	}

	for _, tt := range tests {
		if got := tt.class.Supported(); got != tt.want {
			t.Errorf("%q.Supported() = %v, want %v", tt.class, got, tt.want)
		}
	}
}

func TestLoadTable(t *testing.T) {
	t.Run("missing file falls back to default", func(t *testing.T) {
		table, err := LoadTable(filepath.Join(t.TempDir(), "missing.yaml"))
		if err != nil {
			t.Fatalf("LoadTable() error = %v", err)
		}
		if table.Recommended != DefaultTable().Recommended {
			t.Errorf("Recommended = %q, want default", table.Recommended)
		}
	})

	t.Run("override file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "table.yaml")
		content := "lts: [\"20\", \"22\"]\ncurrent: [\"24\"]\ndeprecated: [\"18\"]\nexperimental: []\ndefault: \"20\"\nrecommended: \"22\"\n"
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}

		table, err := LoadTable(path)
		if err != nil {
			t.Fatalf("LoadTable() error = %v", err)
		}
		if got := table.Classify("18"); got != ClassDeprecated {
			t.Errorf("Classify(18) = %q, want deprecated with override", got)
		}
	})

	t.Run("invalid yaml is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "table.yaml")
		if err := os.WriteFile(path, []byte("lts: [unclosed"), 0o644); err != nil {
			t.Fatal(err)
		}

		if _, err := LoadTable(path); err == nil {
			t.Error("LoadTable() error = nil for invalid yaml")
		}
	})

	t.Run("incomplete table is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "table.yaml")
		if err := os.WriteFile(path, []byte("lts: [\"20\"]\n"), 0o644); err != nil {
			t.Fatal(err)
		}

		if _, err := LoadTable(path); err == nil {
			t.Error("LoadTable() error = nil for table without default")
		}
	})
}

func TestTable_SaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.yaml")
	orig := DefaultTable()

	if err := orig.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := LoadTable(path)
	if err != nil {
		t.Fatalf("LoadTable() error = %v", err)
	}
	if loaded.Default != orig.Default || loaded.Recommended != orig.Recommended {
		t.Errorf("round trip changed table: %+v", loaded)
	}
	if got := loaded.Classify("16"); got != ClassDeprecated {
		t.Errorf("Classify(16) after round trip = %q", got)
	}
}
