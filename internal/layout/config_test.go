package layout

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfigValidates(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestLeafLevelAndTreeSpan(t *testing.T) {
	cfg := DefaultConfig()
	require.Equal(t, uint32(10), cfg.LeafLevel())
	require.Equal(t, uint32(4096), cfg.TreeSpan())
}

func TestDefaultConfigMatchesTunedConstants(t *testing.T) {
	cfg := DefaultConfig()
	require.Equal(t, uint32(512), cfg.PageSize)
	require.Equal(t, uint32(12), cfg.MaxLevelCount)
	require.Equal(t, uint32(6), cfg.TopLevelRank)
	require.Equal(t, uint32(6), cfg.BottomLevelRank)
	require.Equal(t, uint32(1024), cfg.TopLevelBucketCount)
	require.Equal(t, uint32(1024), cfg.TopLevelBucketSize)
	require.Equal(t, uint32(65536), cfg.BottomLevelBucketCount)
	require.Equal(t, uint32(4096), cfg.BottomLevelBucketSize)
}

func TestValidateRejectsBadConfigs(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"page size not power of two", func(c *Config) { c.PageSize = 500 }},
		{"top bucket count not power of two", func(c *Config) { c.TopLevelBucketCount = 1000 }},
		{"bottom bucket count not power of two", func(c *Config) { c.BottomLevelBucketCount = 1000 }},
		{"ranks don't add up", func(c *Config) { c.TopLevelRank = 3 }},
		{"too few levels", func(c *Config) { c.MaxLevelCount = 2; c.TopLevelRank = 1; c.BottomLevelRank = 1 }},
		{"bucket size not page multiple", func(c *Config) { c.TopLevelBucketSize = 500 }},
		{"negative epsilon", func(c *Config) { c.RayEpsilon = -1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			require.Error(t, cfg.Validate())
		})
	}
}

func TestTotalPageCount(t *testing.T) {
	cfg := DefaultConfig()
	top := cfg.TotalTopBucketCount() * cfg.TopLevelBucketSize
	bottom := cfg.TotalBottomBucketCount() * cfg.BottomLevelBucketSize
	require.Equal(t, (top+bottom)/cfg.PageSize, cfg.TotalPageCount())
}
