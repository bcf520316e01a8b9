package event

// Category is the semantic bucket an announcement is synthesized from.
type Category string

const (
	// CategoryIgnored is the explicit bucket for event shapes that have not
	// been triaged. Unknown shapes default to silence, never to guessing:
	// misnarrating a privacy-sensitive event is worse than dropping one.
	CategoryIgnored Category = "ignored"

	CategoryGameStart     Category = "game_start"
	CategoryGameEnd       Category = "game_end"
	CategoryTurnChanged   Category = "turn_changed"
	CategoryPhaseChanged  Category = "phase_changed"
	CategoryStepChanged   Category = "step_changed"
	CategoryLifeChanged   Category = "life_changed"
	CategoryDamage        Category = "damage"
	CategoryCombatDamage  Category = "combat_damage"
	CategoryZoneTransfer  Category = "zone_transfer"
	CategoryReveal        Category = "reveal"
	CategoryCounter       Category = "counter"
	CategoryTarget        Category = "target"
	CategoryMulligan      Category = "mulligan"
	CategoryTapToggled    Category = "tap_toggled"
	CategoryAttackers     Category = "attackers"
	CategoryBlockers      Category = "blockers"
	CategorySpellCast     Category = "spell_cast"
	CategorySpellResolved Category = "spell_resolved"
	CategoryAbility       Category = "ability"
	CategoryShuffle       Category = "shuffle"
	CategoryPrompt        Category = "prompt"
)

// categories is the closed allow-list mapping host event type names to
// semantic categories. It is manually curated: new upstream shapes must be
// triaged here explicitly before they produce any narration. Names mapped to
// CategoryIgnored were triaged and found to be noise.
var categories = map[string]Category{
	"GameStarted":          CategoryGameStart,
	"GameEnded":            CategoryGameEnd,
	"MatchCompleted":       CategoryGameEnd,
	"TurnInfoChanged":      CategoryTurnChanged,
	"PhaseChanged":         CategoryPhaseChanged,
	"StepChanged":          CategoryStepChanged,
	"LifeTotalChanged":     CategoryLifeChanged,
	"DamageDealt":          CategoryDamage,
	"CombatDamageAssigned": CategoryCombatDamage,
	"ZoneTransfer":         CategoryZoneTransfer,
	"ObjectMoved":          CategoryZoneTransfer,
	"CardsRevealed":        CategoryReveal,
	"CounterAdded":         CategoryCounter,
	"CounterRemoved":       CategoryCounter,
	"TargetSelected":       CategoryTarget,
	"MulliganPrompt":       CategoryMulligan,
	"TapToggled":           CategoryTapToggled,
	"AttackersDeclared":    CategoryAttackers,
	"BlockersDeclared":     CategoryBlockers,
	"SpellCast":            CategorySpellCast,
	"AbilityActivated":     CategorySpellCast,
	"SpellResolved":        CategorySpellResolved,
	"AbilityTriggered":     CategoryAbility,
	"LibraryShuffled":      CategoryShuffle,
	"ChoicePrompt":         CategoryPrompt,

	// Triaged noise: cosmetic or redundant shapes the host fires constantly.
	"HoverAnnotation":    CategoryIgnored,
	"UIPulse":            CategoryIgnored,
	"TimerUpdate":        CategoryIgnored,
	"PriorityPassed":     CategoryIgnored,
	"AnnotationsCleared": CategoryIgnored,
	"LayoutInvalidated":  CategoryIgnored,
}

// Classify maps a host event type name to its category. It is total: any
// input yields exactly one category, and names not in the table yield
// CategoryIgnored.
func Classify(typeName string) Category {
	if category, ok := categories[typeName]; ok {
		return category
	}
	return CategoryIgnored
}

// Known reports whether the type name was explicitly triaged, including the
// names triaged to silence. Telemetry uses this to separate "known noise"
// from "never seen before".
func Known(typeName string) bool {
	_, ok := categories[typeName]
	return ok
}
