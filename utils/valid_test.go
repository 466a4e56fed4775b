package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeEmail(t *testing.T) {
	email, err := SanitizeEmail("  User@Example.COM ")
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", email)

	_, err = SanitizeEmail("not-an-email")
	assert.Error(t, err)

	_, err = SanitizeEmail("")
	assert.Error(t, err)
}

func TestSanitizeInput(t *testing.T) {
	assert.Equal(t, "hello", SanitizeInput("  hello  "))
	assert.Equal(t, "&lt;b&gt;bold&lt;/b&gt;", SanitizeInput("<b>bold</b>"))
	assert.Equal(t, "ab", SanitizeInput("a\x00b"))
}

func TestValidateDocumentFile(t *testing.T) {
	assert.NoError(t, ValidateDocumentFile("pitch.pdf", 1024))
	assert.NoError(t, ValidateDocumentFile("notes.DOCX", 1024))
	assert.NoError(t, ValidateDocumentFile("readme.txt", 1024))

	assert.Error(t, ValidateDocumentFile("malware.exe", 1024))
	assert.Error(t, ValidateDocumentFile("photo.png", 1024))
	assert.Error(t, ValidateDocumentFile("big.pdf", MaxDocumentSize+1))
}

func TestIsStrongPassword(t *testing.T) {
	assert.True(t, IsStrongPassword("Sup3rSecret"))
	assert.False(t, IsStrongPassword("alllowercase1"))
	assert.False(t, IsStrongPassword("NoDigitsHere"))
	assert.False(t, IsStrongPassword("12345678"))
}
