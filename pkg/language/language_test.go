package language

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "hi", Normalize("hi"))
	assert.Equal(t, "hi", Normalize(" HI "))
	assert.Equal(t, "hi", Normalize("hin"))
	assert.Equal(t, "ta", Normalize("tam"))
	assert.Equal(t, "en", Normalize("ENG"))
	// Unknown three-letter codes collapse to their first two letters.
	assert.Equal(t, "xy", Normalize("xyz"))
	assert.Equal(t, "", Normalize(""))
}

func TestIsSupported(t *testing.T) {
	assert.True(t, IsSupported("hi"))
	assert.True(t, IsSupported("or"))
	assert.False(t, IsSupported("fr"))
	assert.False(t, IsSupported(""))
}

func TestName(t *testing.T) {
	assert.Equal(t, "Hindi", Name("hi"))
	assert.Equal(t, "Odia", Name("or"))
	assert.Equal(t, "zz", Name("zz"))
}

func TestGreetingFallsBackToHindi(t *testing.T) {
	assert.Contains(t, Greeting("en"), "Sahayak")
	assert.Equal(t, Greeting("hi"), Greeting("kn"))
	assert.Equal(t, Greeting("hi"), Greeting(""))
}
