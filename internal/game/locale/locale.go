// Package locale renders card names, descriptions and classification tags
// in the configured language. English text doubles as the message key.
package locale

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ErrUnsupportedLanguage is returned for languages without a catalog.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// Supported lists the languages with registered catalogs.
var Supported = []language.Tag{language.English, language.Russian}

var matcher = language.NewMatcher(Supported)

// Translator turns message keys into display text.
type Translator struct {
	tag     language.Tag
	printer *message.Printer
}

// New returns a translator for a BCP 47 language name such as "en" or "ru".
func New(lang string) (*Translator, error) {
	lang = strings.TrimSpace(lang)
	if lang == "" {
		return English(), nil
	}
	requested, err := language.Parse(lang)
	if err != nil {
		return nil, fmt.Errorf("parse language %q: %w", lang, err)
	}
	_, index, confidence := matcher.Match(requested)
	if confidence < language.High {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, lang)
	}
	tag := Supported[index]
	return &Translator{tag: tag, printer: message.NewPrinter(tag)}, nil
}

// English returns the default translator.
func English() *Translator {
	return &Translator{tag: language.English, printer: message.NewPrinter(language.English)}
}

// Tag returns the translator's language.
func (t *Translator) Tag() language.Tag {
	if t == nil {
		return language.English
	}
	return t.tag
}

// Text renders a message key. Empty keys render as empty text and a nil
// translator renders keys unchanged.
func (t *Translator) Text(key string) string {
	if key == "" {
		return ""
	}
	if t == nil {
		return key
	}
	return t.printer.Sprintf(key)
}
