package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTableComplete(t *testing.T) {
	assert.Len(t, table, len(Languages))
	for _, lang := range Languages {
		assert.True(t, Supported(lang), lang)
		assert.Len(t, table[lang], len(Keys), "extra or missing keys in %s", lang)
		for _, key := range Keys {
			assert.NotEmpty(t, table[lang][key], "%s/%s", lang, key)
		}
	}
}

func TestTranslate(t *testing.T) {
	assert.Equal(t, table["es"][KeyGreeting], Translate("es", KeyGreeting))
	assert.Equal(t, table["hi"][KeyNoMatch], Translate("hi", KeyNoMatch))
}

func TestTranslateUnknownLanguageFallsBack(t *testing.T) {
	assert.Equal(t, table[BaseLanguage][KeyGreeting], Translate("de", KeyGreeting))
	assert.Equal(t, table[BaseLanguage][KeyGreeting], Translate("", KeyGreeting))
}

func TestTranslateUnknownKey(t *testing.T) {
	assert.Equal(t, "", Translate("fr", "farewell"))
	assert.Equal(t, "", Translate("xx", "farewell"))
}
