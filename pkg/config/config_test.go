package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCSV(t *testing.T) {
	assert.Nil(t, CSV(""))
	assert.Equal(t, []string{"a:9092", "b:9092"}, CSV(" a:9092, ,b:9092 "))
}

func TestEnvDefaults(t *testing.T) {
	t.Setenv("STOREFRONT_TEST_STR", "value")
	t.Setenv("STOREFRONT_TEST_INT", "42")
	t.Setenv("STOREFRONT_TEST_BAD_INT", "x")
	t.Setenv("STOREFRONT_TEST_BOOL", "true")

	assert.Equal(t, "value", EnvDefault("STOREFRONT_TEST_STR", "def"))
	assert.Equal(t, "def", EnvDefault("STOREFRONT_TEST_MISSING", "def"))
	assert.Equal(t, 42, EnvIntDefault("STOREFRONT_TEST_INT", 1))
	assert.Equal(t, 1, EnvIntDefault("STOREFRONT_TEST_BAD_INT", 1))
	assert.True(t, EnvBoolDefault("STOREFRONT_TEST_BOOL", false))
	assert.False(t, EnvBoolDefault("STOREFRONT_TEST_MISSING", false))
}
