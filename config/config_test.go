package config

import (
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zappem.net/pub/math/steps/logging"
	"zappem.net/pub/math/steps/simplify"
)

func TestLoad(t *testing.T) {
	vs := []struct {
		name string
		text string
		want Config
	}{
		{
			name: "empty",
			text: "",
			want: Default(),
		},
		{
			name: "full",
			text: "max_steps: 40\nlatex: true\nkeep_plus_minus: true\nverify: true\nlog:\n  level: debug\n  format: json\n",
			want: Config{
				MaxSteps:      40,
				LaTeX:         true,
				KeepPlusMinus: true,
				Verify:        true,
				Log:           logging.Config{Level: "debug", Format: "json"},
			},
		},
		{
			name: "partial",
			text: "latex: true\n",
			want: Config{
				MaxSteps: simplify.DefaultMaxSteps,
				LaTeX:    true,
				Log:      logging.Config{Level: "info", Format: "text"},
			},
		},
	}
	for i, v := range vs {
		fs := memfs.New()
		require.NoError(t, util.WriteFile(fs, "steps.yaml", []byte(v.text), 0o644))
		got, err := Load(fs, "steps.yaml")
		if err != nil {
			t.Errorf("[%d] %s failed: %v", i, v.name, err)
			continue
		}
		assert.Equal(t, v.want, got, v.name)
	}
}

func TestLoadMissing(t *testing.T) {
	got, err := Load(memfs.New(), "steps.yaml")
	require.NoError(t, err)
	assert.Equal(t, Default(), got)
}

func TestLoadErrors(t *testing.T) {
	vs := []string{
		"max_steps: 0\n",
		"max_steps: -3\n",
		"maxsteps: 10\n",
		"max_steps: [1\n",
	}
	for i, text := range vs {
		fs := memfs.New()
		require.NoError(t, util.WriteFile(fs, "steps.yaml", []byte(text), 0o644))
		if _, err := Load(fs, "steps.yaml"); err == nil {
			t.Errorf("[%d] %q loaded without error", i, text)
		}
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv(EnvLogLevel, "warn")
	got, err := Load(memfs.New(), "steps.yaml")
	require.NoError(t, err)
	assert.Equal(t, "warn", got.Log.Level)
}

func TestOptions(t *testing.T) {
	c := Config{MaxSteps: 7, KeepPlusMinus: true, Verify: true}
	so := c.Simplify(nil)
	assert.Equal(t, 7, so.MaxSteps)
	assert.True(t, so.KeepPlusMinus)
	assert.True(t, so.Verify)
	vo := c.Solve(nil)
	assert.Equal(t, 7, vo.MaxSteps)
	assert.True(t, vo.KeepPlusMinus)
	assert.True(t, vo.Verify)
}
