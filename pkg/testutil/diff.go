package testutil

import (
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/pmezard/go-difflib/difflib"
)

//nolint:gochecknoglobals // Would be 'const'.
var spewConfig = spew.ConfigState{
	Indent:                  "  ",
	DisableMethods:          true,
	DisableCapacities:       true,
	DisablePointerAddresses: true,
	SortKeys:                true,
}

// DumpValue renders a value in a stable, diffable form.
func DumpValue(val interface{}) string {
	return spewConfig.Sdump(val)
}

func textDiff(exp, act string) string {
	diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(exp),
		B:        difflib.SplitLines(act),
		FromFile: "Expected",
		FromDate: "",
		ToFile:   "Actual",
		ToDate:   "",
		Context:  1,
	})
	return diff
}

// AssertEqualText compares two multi-line strings, reporting any mismatch
// as a unified diff rather than a pair of opaque blobs.
func AssertEqualText(t *testing.T, exp, act string) bool {
	t.Helper()
	if exp == act {
		return true
	}
	t.Errorf("Text diff:\n%s", textDiff(exp, act))
	return false
}

// AssertEqual compares two values of any type, reporting any mismatch as a
// unified diff of their dumped forms.
func AssertEqual(t *testing.T, exp, act interface{}) bool {
	t.Helper()
	expStr := DumpValue(exp)
	actStr := DumpValue(act)
	if expStr == actStr {
		return true
	}
	if !strings.Contains(expStr, "\n") && !strings.Contains(actStr, "\n") {
		t.Errorf("Not equal:\nexpected: %s\nactual  : %s", expStr, actStr)
		return false
	}
	t.Errorf("Value diff:\n%s", textDiff(expStr, actStr))
	return false
}
