package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mixit-kr/gateway/internal/config"
)

func TestInitDisabledWithoutEndpoint(t *testing.T) {
	tp, err := Init(&config.Config{Environment: "production"})
	require.NoError(t, err)
	assert.Nil(t, tp)
}

func TestSampleRatio(t *testing.T) {
	cases := []struct {
		name string
		env  string
		rate float64
		want float64
	}{
		{"development traces everything", "development", 0.1, 1},
		{"production keeps configured rate", "production", 0.25, 0.25},
		{"zero falls back to default", "production", 0, 0.1},
		{"negative falls back to default", "production", -1, 0.1},
		{"above one clamps to one", "production", 3, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, sampleRatio(tc.env, tc.rate))
		})
	}
}
