package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafeNext(t *testing.T) {
	assert.Equal(t, "/new/", safeNext("/new/", "/"))
	assert.Equal(t, "/", safeNext("/", "/home/"))
	assert.Equal(t, "/", safeNext("", "/"))
	assert.Equal(t, "/", safeNext("//evil.example", "/"))
	assert.Equal(t, "/", safeNext(`/\evil.example`, "/"))
	assert.Equal(t, "/", safeNext("https://evil.example", "/"))
}
