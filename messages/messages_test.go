package messages

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForLocaleDefaultsToEnglish(t *testing.T) {
	cat := ForLocale("fr")
	assert.Equal(t, "en", cat.Locale())
	assert.Equal(t, "Invalid email or password", cat.Get("invalidCredentials"))
}

func TestArabicCatalog(t *testing.T) {
	cat := ForLocale("ar")
	assert.Equal(t, "ar", cat.Locale())
	assert.Equal(t, "البريد الإلكتروني أو كلمة المرور غير صحيحة", cat.Get("invalidCredentials"))
}

func TestMissingKeyFallsBackToKey(t *testing.T) {
	cat := ForLocale("en")
	assert.Equal(t, "noSuchKey", cat.Get("noSuchKey"))
}

func TestCatalogsCoverTheSameKeys(t *testing.T) {
	en := tables["en"]
	ar := tables["ar"]

	for key := range en {
		assert.Contains(t, ar, key)
	}
	for key := range ar {
		assert.Contains(t, en, key)
	}
}
