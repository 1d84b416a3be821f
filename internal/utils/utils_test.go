package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderMarkdown_EscapesHTML(t *testing.T) {
	out := string(RenderMarkdown("hello <script>alert(1)</script>"))
	assert.Contains(t, out, "hello")
	assert.NotContains(t, out, "<script>")
}

func TestRenderMarkdown_KeepsCyrillic(t *testing.T) {
	out := string(RenderMarkdown("тестовое сообщение поста"))
	assert.Contains(t, out, "тестовое сообщение поста")
}

func TestRenderMarkdown_ExternalLinks(t *testing.T) {
	out := string(RenderMarkdown("[site](https://example.com)"))
	assert.Contains(t, out, `target="_blank"`)
	assert.Contains(t, out, "noopener")
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("1235678")
	assert.NoError(t, err)
	assert.True(t, CheckPasswordHash("1235678", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}

func TestStringToUint(t *testing.T) {
	id, ok := StringToUint("42")
	assert.True(t, ok)
	assert.Equal(t, uint(42), id)

	for _, raw := range []string{"", "0", "-1", "abc"} {
		_, ok := StringToUint(raw)
		assert.False(t, ok, raw)
	}
	assert.Equal(t, 0, StringToInt("x"))
}
