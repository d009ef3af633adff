package parser

import (
	"testing"

	"github.com/gosmithy/gosmithy/internal/testutil"
)

func parseTestShapeID(t *testing.T, source string) string {
	t.Helper()
	id, _, diag := newTestParser(source).parseShapeID()
	if diag != nil {
		t.Fatalf("unexpected parse error: %s", diag.Message)
	}
	return id
}

func TestRelativeShapeID(t *testing.T) {
	testutil.Equal(t, "Weather", parseTestShapeID(t, "Weather"), "bare name")
}

func TestAbsoluteShapeID(t *testing.T) {
	testutil.Equal(t, "example.weather#Forecast",
		parseTestShapeID(t, "example.weather#Forecast"), "namespace and name")
}

func TestShapeIDWithMember(t *testing.T) {
	testutil.Equal(t, "Forecast$chanceOfRain",
		parseTestShapeID(t, "Forecast$chanceOfRain"), "relative with member")
	testutil.Equal(t, "example.weather#Forecast$chanceOfRain",
		parseTestShapeID(t, "example.weather#Forecast$chanceOfRain"), "absolute with member")
}

func TestShapeIDStopsAtWhitespace(t *testing.T) {
	p := newTestParser("foo .bar")
	id, _, diag := p.parseShapeID()
	testutil.Nil(t, diag, "no error")
	testutil.Equal(t, "foo", id, "whitespace ends the ID")
}

func TestDottedNamespaceNeedsPound(t *testing.T) {
	_, _, diag := newTestParser("example.weather Forecast").parseShapeID()
	testutil.NotNil(t, diag, "dotted prefix without '#' must fail")
	testutil.Contains(t, diag.Message, "expected '#' after namespace", "message")
}

func TestShapeIDTrailingDot(t *testing.T) {
	_, _, diag := newTestParser("example.").parseShapeID()
	testutil.NotNil(t, diag, "trailing dot must fail")
}

func TestNamespaceName(t *testing.T) {
	name, _, diag := newTestParser("example.weather.v2 ").parseNamespaceName()
	testutil.Nil(t, diag, "no error")
	testutil.Equal(t, "example.weather.v2", name, "dotted namespace")
}

func TestSplitShapeID(t *testing.T) {
	ns, name, member := splitShapeID("example.weather#Forecast$rain")
	testutil.Equal(t, "example.weather", ns, "namespace")
	testutil.Equal(t, "Forecast", name, "name")
	testutil.Equal(t, "rain", member, "member")

	ns, name, member = splitShapeID("Forecast")
	testutil.Equal(t, "", ns, "relative namespace")
	testutil.Equal(t, "Forecast", name, "relative name")
	testutil.Equal(t, "", member, "no member")
}
