package announce

import (
	"strings"

	"github.com/quietpath/duelsense/internal/duel/event"
	"github.com/quietpath/duelsense/internal/duel/phrase"
	"github.com/quietpath/duelsense/internal/duel/zone"
)

// maxDamageBranches bounds the combat-damage chain walk against malformed
// self-referencing records.
const maxDamageBranches = 16

// synthesize maps one classified record to sentence text. Extractors read
// named fields defensively: a missing or mistyped field drops its fragment of
// the sentence, never the whole announcement, and never raises.
//
// Privacy is enforced structurally: no extractor exists that reads card
// identity out of a hidden zone. Hidden zones surface as counts only.
func (a *Announcer) synthesize(category event.Category, rec event.Record) string {
	switch category {
	case event.CategoryGameStart:
		return a.extractGameStart(rec)
	case event.CategoryGameEnd:
		return a.extractGameEnd(rec)
	case event.CategoryTurnChanged:
		return a.extractTurn(rec)
	case event.CategoryPhaseChanged:
		return a.extractNamed(rec, "phase", "%s phase")
	case event.CategoryStepChanged:
		return a.extractNamed(rec, "step", "%s step")
	case event.CategoryLifeChanged:
		return a.extractLife(rec)
	case event.CategoryDamage:
		return a.extractDamage(rec)
	case event.CategoryCombatDamage:
		return a.extractCombatDamage(rec)
	case event.CategoryZoneTransfer:
		return a.extractZoneTransfer(rec)
	case event.CategoryReveal:
		return a.extractReveal(rec)
	case event.CategoryCounter:
		return a.extractCounter(rec)
	case event.CategoryTarget:
		return a.extractTarget(rec)
	case event.CategoryMulligan:
		return a.printer.F("Mulligan decision: keep or mulligan")
	case event.CategoryTapToggled:
		return a.extractTap(rec)
	case event.CategoryAttackers:
		return a.extractDeclared(rec, "%d attackers declared")
	case event.CategoryBlockers:
		return a.extractDeclared(rec, "%d blockers declared")
	case event.CategorySpellCast:
		return a.extractSpellCast(rec)
	case event.CategorySpellResolved:
		return a.extractSpellResolved(rec)
	case event.CategoryAbility:
		return a.extractAbility(rec)
	case event.CategoryShuffle:
		return a.extractShuffle(rec)
	case event.CategoryPrompt:
		return a.extractPrompt(rec)
	}
	return ""
}

func isOpponent(rec event.Record, field string) (opponent, found bool) {
	owner, ok := event.Get[string](rec, field)
	if !ok {
		return false, false
	}
	return owner == string(zone.OwnerOpponent), true
}

func (a *Announcer) extractGameStart(rec event.Record) string {
	if opponent, ok := event.Get[string](rec, "opponent"); ok && opponent != "" {
		return a.printer.F("Game started against %s", opponent)
	}
	return a.printer.F("Game started")
}

func (a *Announcer) extractGameEnd(rec event.Record) string {
	winner, ok := event.Get[string](rec, "winner")
	if !ok {
		return a.printer.F("Game ended")
	}
	if winner == string(zone.OwnerLocal) {
		return a.printer.F("You won the game")
	}
	return a.printer.F("You lost the game")
}

func (a *Announcer) extractTurn(rec event.Record) string {
	turn, ok := event.GetInt(rec, "turn")
	if !ok {
		return ""
	}
	var whose string
	if opponent, found := isOpponent(rec, "active"); found {
		if opponent {
			whose = a.printer.F("opponent's turn")
		} else {
			whose = a.printer.F("your turn")
		}
	}
	return phrase.Join(a.printer.F("Turn %d", turn), whose)
}

func (a *Announcer) extractNamed(rec event.Record, field, format string) string {
	name, ok := event.Get[string](rec, field)
	if !ok || name == "" {
		return ""
	}
	return a.printer.F(format, name)
}

func (a *Announcer) extractLife(rec event.Record) string {
	life, ok := event.GetInt(rec, "life")
	if !ok {
		return ""
	}
	if opponent, _ := isOpponent(rec, "owner"); opponent {
		return a.printer.F("Opponent's life total is %d", life)
	}
	return a.printer.F("Your life total is %d", life)
}

func (a *Announcer) extractDamage(rec event.Record) string {
	amount, ok := event.GetInt(rec, "amount")
	if !ok || amount <= 0 {
		return ""
	}
	source, ok := event.Get[string](rec, "source")
	if !ok || source == "" {
		// The host gives no causal link for some damage events; fall
		// back to the last resolving card as the probable source.
		source = a.lastResolvedCard
	}
	target, _ := event.Get[string](rec, "target")

	var head string
	if source != "" {
		head = a.printer.F("%s deals %d damage", source, amount)
	} else {
		head = a.printer.F("%d damage", amount)
	}
	var tail string
	if target != "" {
		tail = a.printer.F("to %s", target)
	}
	return phrase.Join(head, tail)
}

// extractCombatDamage walks the linked branch structure the host uses for
// combat results: each branch names an attacker, an amount, a target, and
// links to the next branch.
func (a *Announcer) extractCombatDamage(rec event.Record) string {
	branch, ok := event.GetRecord(rec, "branch")
	if !ok {
		return ""
	}
	var fragments []string
	for i := 0; i < maxDamageBranches; i++ {
		attacker, _ := event.Get[string](branch, "attacker")
		amount, okAmount := event.GetInt(branch, "amount")
		target, _ := event.Get[string](branch, "target")
		if okAmount && amount > 0 && attacker != "" && target != "" {
			fragments = append(fragments, a.printer.F("%s deals %d to %s", attacker, amount, target))
		}
		next, okNext := event.GetRecord(branch, "next")
		if !okNext {
			break
		}
		branch = next
	}
	return phrase.Join(fragments...)
}

func (a *Announcer) extractZoneTransfer(rec event.Record) string {
	from, okFrom := parseZoneField(rec, "from")
	to, okTo := parseZoneField(rec, "to")
	if !okFrom && !okTo {
		return ""
	}

	// A card arriving in a hidden zone is narrated without identity; its
	// name extractor is simply never consulted on that path.
	if okTo && to.Hidden() {
		if okFrom {
			return a.printer.F("A card went from %s to %s", a.zoneLabel(from), a.zoneLabel(to))
		}
		return a.printer.F("A card went to %s", a.zoneLabel(to))
	}

	card, _ := event.Get[string](rec, "card")
	if card == "" {
		card = a.printer.F("A card")
	}
	switch {
	case okFrom && okTo:
		return a.printer.F("%s went from %s to %s", card, a.zoneLabel(from), a.zoneLabel(to))
	case okTo:
		return a.printer.F("%s went to %s", card, a.zoneLabel(to))
	default:
		return a.printer.F("%s left %s", card, a.zoneLabel(from))
	}
}

func (a *Announcer) extractReveal(rec event.Record) string {
	names, ok := event.Get[[]string](rec, "names")
	if !ok || len(names) == 0 {
		return ""
	}
	joined := strings.Join(names, ", ")
	if opponent, _ := isOpponent(rec, "owner"); opponent {
		return a.printer.F("Opponent reveals %s", joined)
	}
	return a.printer.F("You reveal %s", joined)
}

func (a *Announcer) extractCounter(rec event.Record) string {
	card, okCard := event.Get[string](rec, "card")
	kind, okKind := event.Get[string](rec, "kind")
	count, okCount := event.GetInt(rec, "count")
	if !okCard || !okKind || !okCount {
		return ""
	}
	return a.printer.F("%s: %d %s counters", card, count, kind)
}

func (a *Announcer) extractTarget(rec event.Record) string {
	source, okSource := event.Get[string](rec, "source")
	target, okTarget := event.Get[string](rec, "target")
	if !okSource || !okTarget {
		return ""
	}
	return a.printer.F("%s targets %s", source, target)
}

func (a *Announcer) extractTap(rec event.Record) string {
	card, ok := event.Get[string](rec, "card")
	if !ok || card == "" {
		return ""
	}
	if tapped, ok := event.Get[bool](rec, "tapped"); ok && !tapped {
		return a.printer.F("%s untapped", card)
	}
	return a.printer.F("%s tapped", card)
}

func (a *Announcer) extractDeclared(rec event.Record, format string) string {
	count, ok := event.GetInt(rec, "count")
	if !ok || count < 1 {
		return ""
	}
	return a.printer.F(format, count)
}

func (a *Announcer) extractSpellCast(rec event.Record) string {
	card, ok := event.Get[string](rec, "card")
	if !ok || card == "" {
		return ""
	}
	if opponent, _ := isOpponent(rec, "owner"); opponent {
		return a.printer.F("Opponent casts %s", card)
	}
	return a.printer.F("You cast %s", card)
}

func (a *Announcer) extractSpellResolved(rec event.Record) string {
	card, ok := event.Get[string](rec, "card")
	if !ok || card == "" {
		return a.printer.F("Spell resolved")
	}
	a.lastResolvedCard = card
	return a.printer.F("%s resolved", card)
}

func (a *Announcer) extractAbility(rec event.Record) string {
	card, ok := event.Get[string](rec, "card")
	if !ok || card == "" {
		return ""
	}
	return a.printer.F("Ability of %s triggered", card)
}

func (a *Announcer) extractShuffle(rec event.Record) string {
	if opponent, _ := isOpponent(rec, "owner"); opponent {
		return a.printer.F("Opponent shuffles their library")
	}
	return a.printer.F("You shuffle your library")
}

func (a *Announcer) extractPrompt(rec event.Record) string {
	text, ok := event.Get[string](rec, "text")
	if !ok {
		return ""
	}
	return strings.TrimSpace(text)
}

func parseZoneField(rec event.Record, field string) (zone.Key, bool) {
	raw, ok := event.Get[string](rec, field)
	if !ok {
		return zone.Key{}, false
	}
	return zone.ParseKey(raw)
}

// zoneLabel humanizes a zone key for sentence fragments.
func (a *Announcer) zoneLabel(key zone.Key) string {
	switch key.Zone {
	case zone.Battlefield:
		return a.printer.F("the battlefield")
	case zone.Stack:
		return a.printer.F("the stack")
	case zone.Exile:
		return a.printer.F("exile")
	case zone.Command:
		return a.printer.F("the command zone")
	}
	possessive := a.printer.F("your")
	if key.Owner == zone.OwnerOpponent {
		possessive = a.printer.F("opponent's")
	}
	switch key.Zone {
	case zone.Hand:
		return possessive + " " + a.printer.F("hand")
	case zone.Graveyard:
		return possessive + " " + a.printer.F("graveyard")
	case zone.Library:
		return possessive + " " + a.printer.F("library")
	}
	return string(key.Zone)
}
