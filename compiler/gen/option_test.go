package gen

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithHeader(t *testing.T) {
	t.Run("sets header", func(t *testing.T) {
		c := &Config{}
		err := WithHeader("Code generated by classflow.")(c)

		require.NoError(t, err)
		assert.Equal(t, "Code generated by classflow.", c.Header)
	})

	t.Run("empty header is allowed", func(t *testing.T) {
		c := &Config{Header: "existing"}
		err := WithHeader("")(c)

		require.NoError(t, err)
		assert.Equal(t, "", c.Header)
	})
}

func TestWithPackage(t *testing.T) {
	tests := []struct {
		name    string
		pkg     string
		wantErr bool
	}{
		{"identifier", "model", false},
		{"underscore", "my_model", false},
		{"empty", "", true},
		{"path", "github.com/x/model", true},
		{"leading digit", "1model", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{}
			err := WithPackage(tt.pkg)(c)

			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsConfigError(err))
				assert.Empty(t, c.Package)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.pkg, c.Package)
			}
		})
	}
}

func TestWithTarget(t *testing.T) {
	c := &Config{}
	require.NoError(t, WithTarget("./out")(c))
	assert.Equal(t, "./out", c.Target)

	err := WithTarget("")(c)
	require.Error(t, err)
	assert.True(t, IsConfigError(err))
	assert.Equal(t, "./out", c.Target)
}

func TestWithWorkers(t *testing.T) {
	c := &Config{}
	require.NoError(t, WithWorkers(4)(c))
	assert.Equal(t, 4, c.Workers)

	for _, n := range []int{0, -1} {
		err := WithWorkers(n)(c)
		require.Error(t, err)
		assert.True(t, IsConfigError(err))
	}
	assert.Equal(t, 4, c.Workers)
}

func TestWithDialect(t *testing.T) {
	c := &Config{}
	require.NoError(t, WithDialect(&mockDialect{})(c))
	assert.Equal(t, "mock", c.Dialect.Name())

	err := WithDialect(nil)(c)
	require.Error(t, err)
	assert.True(t, IsConfigError(err))
}

func TestConfigApply(t *testing.T) {
	t.Run("stops at first error", func(t *testing.T) {
		c := &Config{}
		err := c.Apply(WithWorkers(0), WithHeader("h"))

		require.Error(t, err)
		assert.Empty(t, c.Header)
	})

	t.Run("ApplyAll collects errors", func(t *testing.T) {
		c := &Config{}
		err := c.ApplyAll(WithWorkers(0), WithHeader("h"), WithTarget(""))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Workers")
		assert.Contains(t, err.Error(), "Target")
		assert.Equal(t, "h", c.Header)
	})
}

func TestNewConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		c, err := NewConfig()
		require.NoError(t, err)
		assert.Equal(t, "model", c.Package)
		assert.Equal(t, runtime.GOMAXPROCS(0), c.Workers)
		assert.Nil(t, c.Dialect)
	})

	t.Run("invalid option", func(t *testing.T) {
		c, err := NewConfig(WithPackage("not a package"))
		require.Error(t, err)
		assert.Nil(t, c)
	})

	t.Run("MustNewConfig panics", func(t *testing.T) {
		assert.Panics(t, func() { MustNewConfig(WithWorkers(0)) })
		assert.NotPanics(t, func() { MustNewConfig(WithHeader("h")) })
	})
}
