package engine

import (
	"encoding/json"
	"testing"
)

func TestStatus_JSONRoundTrip(t *testing.T) {
	for _, s := range []Status{StatusPass, StatusInfo, StatusWarn, StatusFail, StatusSkip} {
		data, err := json.Marshal(s)
		if err != nil {
			t.Fatalf("Marshal(%v) error = %v", s, err)
		}
		if string(data) != `"`+s.String()+`"` {
			t.Errorf("Marshal(%v) = %s, want string form", s, data)
		}

		var decoded Status
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("Unmarshal(%s) error = %v", data, err)
		}
		if decoded != s {
			t.Errorf("round trip %v -> %v", s, decoded)
		}
	}

	var s Status
	if err := json.Unmarshal([]byte(`"bogus"`), &s); err == nil {
		t.Error("Unmarshal accepted unknown status")
	}
}

func TestImpact_JSONRoundTrip(t *testing.T) {
	for _, i := range []Impact{ImpactLow, ImpactMedium, ImpactHigh} {
		data, err := json.Marshal(i)
		if err != nil {
			t.Fatalf("Marshal(%v) error = %v", i, err)
		}

		var decoded Impact
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("Unmarshal(%s) error = %v", data, err)
		}
		if decoded != i {
			t.Errorf("round trip %v -> %v", i, decoded)
		}
	}
}

func TestFinding_IsBlockingFailure(t *testing.T) {
	tests := []struct {
		name    string
		finding Finding
		want    bool
	}{
		{"blocking fail", Finding{Status: StatusFail, Blocking: true}, true},
		{"non-blocking fail", Finding{Status: StatusFail}, false},
		{"blocking warn", Finding{Status: StatusWarn, Blocking: true}, false},
		{"pass", Finding{Status: StatusPass}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.finding.IsBlockingFailure(); got != tt.want {
				t.Errorf("IsBlockingFailure() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCategories_FixedOrder(t *testing.T) {
	want := []Category{CategoryBuild, CategoryDependencies, CategoryConfig, CategoryEnv, CategoryGit}
	got := Categories()
	if len(got) != len(want) {
		t.Fatalf("Categories() has %d entries, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Categories()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
