package testutil

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/pmezard/go-difflib/difflib"
)

// JSONEq compares two JSON payloads structurally and reports a readable
// unified diff on mismatch.
func JSONEq(t *testing.T, want, got []byte) {
	t.Helper()

	var w, g interface{}
	if err := json.Unmarshal(want, &w); err != nil {
		t.Fatalf("JSONEq() failed to parse want: %v", err)
	}
	if err := json.Unmarshal(got, &g); err != nil {
		t.Fatalf("JSONEq() failed to parse got: %v", err)
	}
	if reflect.DeepEqual(w, g) {
		return
	}

	wantPretty, _ := json.MarshalIndent(w, "", "  ")
	gotPretty, _ := json.MarshalIndent(g, "", "  ")
	diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(wantPretty)),
		B:        difflib.SplitLines(string(gotPretty)),
		FromFile: "want",
		ToFile:   "got",
		Context:  3,
	})
	t.Errorf("JSON payloads differ:\n%s", diff)
}
