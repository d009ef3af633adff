package parser

import (
	"testing"

	"github.com/gosmithy/gosmithy/internal/ast"
	"github.com/gosmithy/gosmithy/internal/testutil"
	"github.com/gosmithy/gosmithy/internal/types"
)

func parseTestNode(t *testing.T, source string) ast.Node {
	t.Helper()
	n, diag := newTestParser(source).parseNode()
	if diag != nil {
		t.Fatalf("unexpected parse error: %s", diag.Message)
	}
	return n
}

func TestParseScalarNodes(t *testing.T) {
	str := parseTestNode(t, `"hi"`).(*ast.StringNode)
	testutil.Equal(t, "hi", str.Value, "string")

	num := parseTestNode(t, "12").(*ast.NumberNode)
	testutil.Equal(t, int64(12), num.Int, "integer")

	num = parseTestNode(t, "-3.5e2").(*ast.NumberNode)
	testutil.True(t, num.IsFloat, "float")
	testutil.Equal(t, -350.0, num.Float, "float value")
}

func TestParseHugeIntegerFallsBackToFloat(t *testing.T) {
	num := parseTestNode(t, "99999999999999999999").(*ast.NumberNode)
	testutil.True(t, num.IsFloat, "out-of-range integer becomes float")
	testutil.Equal(t, 1e20, num.Float, "approximate value")
}

func TestParseEmptyObject(t *testing.T) {
	obj := parseTestNode(t, "{}").(*ast.ObjectNode)
	testutil.Len(t, obj.Entries, 0, "no entries")
}

func TestParseObjectPreservesOrder(t *testing.T) {
	obj := parseTestNode(t, `{z: 1, a: 2, m: 3}`).(*ast.ObjectNode)
	keys := make([]string, len(obj.Entries))
	for i, e := range obj.Entries {
		keys[i] = e.Key.Value
	}
	testutil.SliceEqual(t, []string{"z", "a", "m"}, keys, "source order")
}

func TestParseObjectStringKeys(t *testing.T) {
	obj := parseTestNode(t, `{"a key": 1}`).(*ast.ObjectNode)
	testutil.Equal(t, "a key", obj.Entries[0].Key.Value, "quoted key")
}

func TestParseNestedArrays(t *testing.T) {
	arr := parseTestNode(t, `[1, [2, 3], "x"]`).(*ast.ArrayNode)
	testutil.Len(t, arr.Elems, 3, "outer elements")
	inner := arr.Elems[1].(*ast.ArrayNode)
	testutil.Len(t, inner.Elems, 2, "inner elements")
}

func TestParseUnclosedArray(t *testing.T) {
	_, diag := newTestParser(`[1, 2`).parseNode()
	testutil.NotNil(t, diag, "unclosed array must fail")
	testutil.Contains(t, diag.Message, "unclosed array", "message")
}

func TestParseObjectMissingColon(t *testing.T) {
	_, diag := newTestParser(`{a 1}`).parseNode()
	testutil.NotNil(t, diag, "missing colon must fail")
	testutil.Equal(t, types.DiagSyntax, diag.Code, "code")
}

func TestParseObjectBadKey(t *testing.T) {
	_, diag := newTestParser(`{1: 2}`).parseNode()
	testutil.NotNil(t, diag, "numeric key must fail")
	testutil.Contains(t, diag.Message, "expected one of", "names accepted kinds")
}
