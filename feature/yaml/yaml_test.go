package yaml

import (
	"testing"

	"github.com/grovekit/grove/feature"
	"github.com/stretchr/testify/require"
)

const metadata = `
features:
  height: continuous
  color:
    - blue
    - red
  doors:
    - 2
    - 4
`

func TestReadFeatures(t *testing.T) {
	features, err := ReadFeatures([]byte(metadata))
	require.NoError(t, err)
	require.Len(t, features, 3)

	byName := map[string]feature.Feature{}
	for _, f := range features {
		byName[f.Name()] = f
	}

	_, ok := byName["height"].(*feature.ContinuousFeature)
	require.True(t, ok)

	color, ok := byName["color"].(*feature.DiscreteFeature)
	require.True(t, ok)
	require.Equal(t, []string{"blue", "red"}, color.AvailableValues())

	// non-string values are stringified
	doors, ok := byName["doors"].(*feature.DiscreteFeature)
	require.True(t, ok)
	require.Equal(t, []string{"2", "4"}, doors.AvailableValues())
}

func TestReadFeaturesWithoutFeatureSection(t *testing.T) {
	_, err := ReadFeatures([]byte("other: thing"))
	require.Error(t, err)
}

func TestReadFeaturesInvalidYAML(t *testing.T) {
	_, err := ReadFeatures([]byte("features: [unclosed"))
	require.Error(t, err)
}
