package locale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestNewRussian(t *testing.T) {
	tr, err := New("ru")
	require.NoError(t, err)
	assert.Equal(t, language.Russian, tr.Tag())
	assert.Equal(t, "Утка-Собака", tr.Text(TagDuckDog))
	assert.Equal(t, "Браток", tr.Text(NameLad))
	assert.Equal(t, "Чем их больше, тем они сильнее", tr.Text(DescLad))
}

func TestEnglishDefault(t *testing.T) {
	tr, err := New("")
	require.NoError(t, err)
	assert.Equal(t, language.English, tr.Tag())
	assert.Equal(t, "Duck-Dog", tr.Text(TagDuckDog))

	tr, err = New("en-GB")
	require.NoError(t, err)
	assert.Equal(t, "Mean Duck", tr.Text(NameDuck))
}

func TestTextEdgeCases(t *testing.T) {
	var tr *Translator
	assert.Equal(t, "Lad", tr.Text(NameLad))
	assert.Equal(t, language.English, tr.Tag())
	assert.Equal(t, "", English().Text(""))
	assert.Equal(t, "no such key", English().Text("no such key"))
}

func TestUnsupportedLanguage(t *testing.T) {
	_, err := New("ja")
	assert.ErrorIs(t, err, ErrUnsupportedLanguage)

	_, err = New("not a language!")
	assert.Error(t, err)
}
