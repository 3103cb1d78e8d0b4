// Package stem provides build-time stemming: the index assembler never
// queries by stem directly, stems are only used at build time to seed alias
// entries among co-stemmed words. Stemming itself is delegated to the
// Snowball ports in github.com/blevesearch/snowballstem.
package stem

import (
	"strings"

	snowballstem "github.com/blevesearch/snowballstem"
	"github.com/blevesearch/snowballstem/arabic"
	"github.com/blevesearch/snowballstem/danish"
	"github.com/blevesearch/snowballstem/dutch"
	"github.com/blevesearch/snowballstem/english"
	"github.com/blevesearch/snowballstem/finnish"
	"github.com/blevesearch/snowballstem/french"
	"github.com/blevesearch/snowballstem/german"
	"github.com/blevesearch/snowballstem/hungarian"
	"github.com/blevesearch/snowballstem/italian"
	"github.com/blevesearch/snowballstem/norwegian"
	"github.com/blevesearch/snowballstem/portuguese"
	"github.com/blevesearch/snowballstem/romanian"
	"github.com/blevesearch/snowballstem/russian"
	"github.com/blevesearch/snowballstem/spanish"
	"github.com/blevesearch/snowballstem/swedish"
	"github.com/blevesearch/snowballstem/turkish"
)

// Language is one of the fixed set of stemming languages recognized under
// input.stemming.
type Language string

const (
	None       Language = ""
	Arabic     Language = "Arabic"
	Danish     Language = "Danish"
	Dutch      Language = "Dutch"
	English    Language = "English"
	Finnish    Language = "Finnish"
	French     Language = "French"
	German     Language = "German"
	Greek      Language = "Greek"
	Hungarian  Language = "Hungarian"
	Italian    Language = "Italian"
	Norwegian  Language = "Norwegian"
	Portuguese Language = "Portuguese"
	Romanian   Language = "Romanian"
	Russian    Language = "Russian"
	Spanish    Language = "Spanish"
	Swedish    Language = "Swedish"
	Tamil      Language = "Tamil"
	Turkish    Language = "Turkish"
)

// stemFunc mutates a snowballstem.Env in place; Env.Current() afterward
// holds the stemmed form.
type stemFunc func(*snowballstem.Env) bool

// supported maps every language with a Snowball stemmer in
// blevesearch/snowballstem to its Stem function. Greek and Tamil have no
// Snowball algorithm in this library (or upstream Snowball); Stemmer falls
// back to a no-op for them -- see DESIGN.md.
var supported = map[Language]stemFunc{
	Arabic:     arabic.Stem,
	Danish:     danish.Stem,
	Dutch:      dutch.Stem,
	English:    english.Stem,
	Finnish:    finnish.Stem,
	French:     french.Stem,
	German:     german.Stem,
	Hungarian:  hungarian.Stem,
	Italian:    italian.Stem,
	Norwegian:  norwegian.Stem,
	Portuguese: portuguese.Stem,
	Romanian:   romanian.Stem,
	Russian:    russian.Stem,
	Spanish:    spanish.Stem,
	Swedish:    swedish.Stem,
	Turkish:    turkish.Stem,
}

// Stemmer stems normalized words for one configured language.
type Stemmer struct {
	fn stemFunc
}

// New returns a Stemmer for lang. Unsupported or None languages return a
// Stemmer whose Stem method is the identity function, so callers never need
// to special-case "stemming disabled".
func New(lang Language) *Stemmer {
	return &Stemmer{fn: supported[lang]}
}

// Stem returns the stemmed form of a single already-normalized (lowercased)
// word. Every word is handed to the Snowball stemmer as is; no check is made
// for non-letter runes (numbers, CJK ideographs), so what happens to such
// words is up to the stemmer's own rules.
func (s *Stemmer) Stem(word string) string {
	if s.fn == nil || word == "" {
		return word
	}

	env := snowballstem.NewEnv(word)
	s.fn(env)

	stemmed := env.Current()
	if stemmed == "" {
		return word
	}

	return stemmed
}

// Enabled reports whether this Stemmer performs real stemming.
func (s *Stemmer) Enabled() bool {
	return s.fn != nil
}

// ParseLanguage canonicalizes a user-supplied language name (case
// insensitively) to a known Language constant. ok is false for unrecognized
// input.
func ParseLanguage(name string) (Language, bool) {
	for _, lang := range []Language{
		Arabic, Danish, Dutch, English, Finnish, French, German, Greek,
		Hungarian, Italian, Norwegian, Portuguese, Romanian, Russian,
		Spanish, Swedish, Tamil, Turkish,
	} {
		if strings.EqualFold(string(lang), name) {
			return lang, true
		}
	}

	return None, false
}
