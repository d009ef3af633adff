// Package integration loads complete models from testdata and checks the
// assembled result end to end.
package integration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gosmithy/gosmithy"
	"github.com/gosmithy/gosmithy/model"
)

func loadWeather(t *testing.T) *model.Model {
	t.Helper()
	src, err := gosmithy.DirTree("testdata/weather")
	require.NoError(t, err)
	m, err := gosmithy.Load(src)
	require.NoError(t, err)
	require.Empty(t, m.Diagnostics, "weather model must load cleanly")
	return m
}

func TestLoadWeatherModel(t *testing.T) {
	m := loadWeather(t)

	assert.Equal(t, "2.0", m.Version)
	assert.Equal(t, 6, m.NumShapes())
	assert.Equal(t,
		[]string{"example.weather", "example.weather.types"},
		m.Namespaces())

	authors, ok := m.Metadata["authors"]
	require.True(t, ok, "metadata authors missing")
	arr, ok := authors.(model.ArrayNode)
	require.True(t, ok)
	require.Len(t, arr.Elems, 1)
	assert.Equal(t, model.StringNode{Value: "weather-team"}, arr.Elems[0])
}

func TestServiceShape(t *testing.T) {
	m := loadWeather(t)

	svc := m.Shape(model.ParseShapeID("example.weather#Weather"))
	require.NotNil(t, svc)
	assert.Equal(t, model.ShapeTypeService, svc.Type)
	assert.Equal(t, "Provides weather forecasts.", svc.Documentation())

	title := svc.Trait(model.ParseShapeID("smithy.api#title"))
	require.NotNil(t, title)
	assert.Equal(t, model.StringNode{Value: "Weather Service"}, title.Value)

	version := svc.Property("version")
	require.NotNil(t, version)
	assert.Equal(t, model.StringNode{Value: "2024-08-30"}, version)

	// Forward references inside property values resolve to absolute IDs.
	ops, ok := svc.Property("operations").(model.ArrayNode)
	require.True(t, ok)
	require.Len(t, ops.Elems, 1)
	assert.Equal(t,
		model.StringNode{Value: "example.weather#GetForecast", IsShapeRef: true},
		ops.Elems[0])
}

func TestUseResolvesAcrossFiles(t *testing.T) {
	m := loadWeather(t)

	input := m.Shape(model.ParseShapeID("example.weather#GetForecastInput"))
	require.NotNil(t, input)
	cityID := input.Member("cityId")
	require.NotNil(t, cityID)
	assert.Equal(t, "example.weather.types#CityId", cityID.Target.String())
	assert.True(t, cityID.Traits[0].ID == model.ParseShapeID("smithy.api#required"))

	output := m.Shape(model.ParseShapeID("example.weather#GetForecastOutput"))
	require.NotNil(t, output)
	rain := output.Member("chanceOfRain")
	require.NotNil(t, rain)
	assert.Equal(t, "smithy.api#Float", rain.Target.String())
}

func TestApplyStatement(t *testing.T) {
	m := loadWeather(t)

	cityID := m.Shape(model.ParseShapeID("example.weather.types#CityId"))
	require.NotNil(t, cityID)
	assert.Equal(t, "A unique identifier for a city.", cityID.Documentation())
	assert.True(t, cityID.HasTrait(model.ParseShapeID("smithy.api#pattern")))
	assert.True(t, cityID.HasTrait(model.ParseShapeID("smithy.api#sensitive")),
		"apply statement must attach the sensitive trait")
}

func TestEnumShape(t *testing.T) {
	m := loadWeather(t)

	enum := m.Shape(model.ParseShapeID("example.weather#Precipitation"))
	require.NotNil(t, enum)
	assert.Equal(t, model.ShapeTypeEnum, enum.Type)
	require.Len(t, enum.Members, 3)

	assert.Nil(t, enum.Member("RAIN").EnumValue)
	snow := enum.Member("SNOW")
	require.NotNil(t, snow)
	assert.Equal(t, model.StringNode{Value: "snow"}, snow.EnumValue)
}

func TestLoadInvalidModel(t *testing.T) {
	src, err := gosmithy.Dir("testdata/invalid")
	require.NoError(t, err)
	m, err := gosmithy.Load(src)
	require.NoError(t, err, "diagnostics are not load errors")
	require.True(t, m.HasErrors())

	codes := make(map[string]int)
	for _, d := range m.Diagnostics {
		codes[d.Code]++
	}
	assert.Equal(t, 2, codes["duplicate-member"],
		"one duplicate structure member plus one duplicate trait key")
	assert.NotZero(t, codes["unresolved-shape"])

	// The valid parts of the file still assemble.
	pair := m.Shape(model.ParseShapeID("example.broken#Pair"))
	require.NotNil(t, pair)
	assert.Len(t, pair.Members, 1, "second definition of a member is dropped")
}
