package middleware

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateURL(t *testing.T) {
	valid := []string{
		"https://example.com/news",
		"http://news.example.org/a?b=c",
	}
	for _, u := range valid {
		assert.NoError(t, ValidateURL(u), u)
	}

	invalid := []string{
		"",
		"ftp://example.com",
		"https://",
		"http://localhost:8000/x",
		"http://127.0.0.1/x",
		"http://192.168.0.4/",
		"javascript:alert(1)",
	}
	for _, u := range invalid {
		assert.Error(t, ValidateURL(u), u)
	}
}

func TestValidateCredibility(t *testing.T) {
	for _, v := range []string{"", "all", "high", "MEDIUM", "low"} {
		assert.NoError(t, ValidateCredibility(v), v)
	}
	assert.Error(t, ValidateCredibility("very-high"))
}

func TestValidateQuery(t *testing.T) {
	assert.NoError(t, ValidateQuery("miracle"))
	assert.Error(t, ValidateQuery(strings.Repeat("x", MaxQueryLength+1)))
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "hello world", SanitizeString("  hello\x00 world\x07 "))
	assert.Equal(t, "a\tb\nc", SanitizeString("a\tb\nc"))
}
