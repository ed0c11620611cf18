package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvReaders(t *testing.T) {
	t.Run("missing variables yield the fallback", func(t *testing.T) {
		assert.Equal(t, "default", GetEnvString("SPENDIN_TEST_UNSET", "default"))
		assert.Equal(t, 8080, GetEnvInt("SPENDIN_TEST_UNSET", 8080))
		assert.False(t, GetEnvBool("SPENDIN_TEST_UNSET", false))
		assert.Equal(t, 1.5, GetEnvFloat("SPENDIN_TEST_UNSET", 1.5))
	})

	t.Run("set variables are parsed", func(t *testing.T) {
		t.Setenv("SPENDIN_TEST_STRING", "mongodb://localhost:27017")
		t.Setenv("SPENDIN_TEST_INT", "9000")
		t.Setenv("SPENDIN_TEST_BOOL", "true")
		t.Setenv("SPENDIN_TEST_FLOAT", "0.25")

		assert.Equal(t, "mongodb://localhost:27017", GetEnvString("SPENDIN_TEST_STRING", ""))
		assert.Equal(t, 9000, GetEnvInt("SPENDIN_TEST_INT", 0))
		assert.True(t, GetEnvBool("SPENDIN_TEST_BOOL", false))
		assert.Equal(t, 0.25, GetEnvFloat("SPENDIN_TEST_FLOAT", 0))
	})

	t.Run("unparseable values degrade to the fallback", func(t *testing.T) {
		t.Setenv("SPENDIN_TEST_INT", "nine thousand")
		t.Setenv("SPENDIN_TEST_BOOL", "yep")
		t.Setenv("SPENDIN_TEST_FLOAT", "fast")

		assert.Equal(t, 25, GetEnvInt("SPENDIN_TEST_INT", 25))
		assert.True(t, GetEnvBool("SPENDIN_TEST_BOOL", true))
		assert.Equal(t, 2.5, GetEnvFloat("SPENDIN_TEST_FLOAT", 2.5))
	})
}
