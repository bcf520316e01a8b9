// Package phrase renders announcement sentences through a locale catalog.
//
// All narration text flows through a Printer so fragments localize without
// touching the extractors that produce them. Only en-US is embedded; other
// locales fall back to it.
package phrase

import (
	"strings"

	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// BaseLocale is the canonical source locale.
const BaseLocale = "en-US"

var builder = newCatalog()

func newCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.AmericanEnglish))
	en := language.AmericanEnglish

	// Plural-sensitive messages.
	b.Set(en, "You drew %d cards", plural.Selectf(1, "",
		plural.One, "You drew a card",
		plural.Other, "You drew %[1]d cards"))
	b.Set(en, "Opponent drew %d cards", plural.Selectf(1, "",
		plural.One, "Opponent drew a card",
		plural.Other, "Opponent drew %[1]d cards"))
	b.Set(en, "Opponent played %d cards", plural.Selectf(1, "",
		plural.One, "Opponent played a card",
		plural.Other, "Opponent played %[1]d cards"))
	b.Set(en, "%d permanents left the battlefield", plural.Selectf(1, "",
		plural.One, "A permanent left the battlefield",
		plural.Other, "%[1]d permanents left the battlefield"))
	b.Set(en, "Opponent lost %d permanents", plural.Selectf(1, "",
		plural.One, "Opponent lost 1 permanent",
		plural.Other, "Opponent lost %[1]d permanents"))
	b.Set(en, "You lost %d permanents", plural.Selectf(1, "",
		plural.One, "You lost 1 permanent",
		plural.Other, "You lost %[1]d permanents"))
	b.Set(en, "%d permanents entered the battlefield", plural.Selectf(1, "",
		plural.One, "A permanent entered the battlefield",
		plural.Other, "%[1]d permanents entered the battlefield"))
	b.Set(en, "%d cards put into graveyard", plural.Selectf(1, "",
		plural.One, "A card was put into a graveyard",
		plural.Other, "%[1]d cards were put into a graveyard"))
	b.Set(en, "%d cards left the graveyard", plural.Selectf(1, "",
		plural.One, "A card left the graveyard",
		plural.Other, "%[1]d cards left the graveyard"))
	b.Set(en, "%d cards exiled", plural.Selectf(1, "",
		plural.One, "A card was exiled",
		plural.Other, "%[1]d cards were exiled"))
	b.Set(en, "%d attackers declared", plural.Selectf(1, "",
		plural.One, "One attacker declared",
		plural.Other, "%[1]d attackers declared"))
	b.Set(en, "%d blockers declared", plural.Selectf(1, "",
		plural.One, "One blocker declared",
		plural.Other, "%[1]d blockers declared"))
	b.Set(en, "%d cards in hand", plural.Selectf(1, "",
		plural.One, "1 card in hand",
		plural.Other, "%[1]d cards in hand"))

	return b
}

// Printer renders phrases for one locale.
type Printer struct {
	p *message.Printer
}

// NewPrinter creates a printer for the given BCP 47 locale tag. Unparseable
// tags fall back to en-US.
func NewPrinter(locale string) *Printer {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.AmericanEnglish
	}
	return &Printer{p: message.NewPrinter(tag, message.Catalog(builder))}
}

// F formats a catalog message. Unregistered keys format as plain sentences,
// so the en-US source text doubles as the message key.
func (pr *Printer) F(key message.Reference, args ...any) string {
	if pr == nil || pr.p == nil {
		return ""
	}
	return pr.p.Sprintf(key, args...)
}

// Join composes a sentence from non-empty fragments, separated by ", ".
func Join(fragments ...string) string {
	parts := make([]string, 0, len(fragments))
	for _, fragment := range fragments {
		if strings.TrimSpace(fragment) == "" {
			continue
		}
		parts = append(parts, fragment)
	}
	return strings.Join(parts, ", ")
}
