package event

import "testing"

func TestClassifyKnownShapes(t *testing.T) {
	tests := []struct {
		typeName string
		want     Category
	}{
		{typeName: "GameEnded", want: CategoryGameEnd},
		{typeName: "TurnInfoChanged", want: CategoryTurnChanged},
		{typeName: "LifeTotalChanged", want: CategoryLifeChanged},
		{typeName: "CombatDamageAssigned", want: CategoryCombatDamage},
		{typeName: "ZoneTransfer", want: CategoryZoneTransfer},
		{typeName: "HoverAnnotation", want: CategoryIgnored},
	}

	for _, tt := range tests {
		t.Run(tt.typeName, func(t *testing.T) {
			if got := Classify(tt.typeName); got != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestClassifyIsTotal(t *testing.T) {
	inputs := []string{
		"",
		"TotallyUnknownEvent42",
		"game_ended",
		"GameEnded ",
		"\x00\xff",
		"ZoneTransferV2",
	}
	for _, input := range inputs {
		if got := Classify(input); got != CategoryIgnored {
			t.Fatalf("expected ignored for %q, got %s", input, got)
		}
	}
}

func TestKnownSeparatesTriagedNoise(t *testing.T) {
	if !Known("PriorityPassed") {
		t.Fatalf("expected triaged noise to be known")
	}
	if Known("TotallyUnknownEvent42") {
		t.Fatalf("expected unknown shape to be unknown")
	}
}

func TestGetMissingField(t *testing.T) {
	rec := Record{TypeName: "LifeTotalChanged", Fields: map[string]any{"life": 17}}
	if _, ok := Get[string](rec, "player"); ok {
		t.Fatalf("expected missing field to report not found")
	}
}

func TestGetTypeMismatchTreatedAsMissing(t *testing.T) {
	rec := Record{TypeName: "LifeTotalChanged", Fields: map[string]any{"life": "seventeen"}}
	if _, ok := Get[int](rec, "life"); ok {
		t.Fatalf("expected mismatched type to report not found")
	}
}

func TestGetNilFields(t *testing.T) {
	rec := Record{TypeName: "GameEnded"}
	if _, ok := Get[string](rec, "winner"); ok {
		t.Fatalf("expected lookup on nil field bag to report not found")
	}
}

func TestGetIntAcceptsFloatEncoding(t *testing.T) {
	rec := Record{Fields: map[string]any{"amount": float64(3), "turn": int64(4), "count": 2}}
	for name, want := range map[string]int{"amount": 3, "turn": 4, "count": 2} {
		got, ok := GetInt(rec, name)
		if !ok || got != want {
			t.Fatalf("expected %s=%d, got %d ok=%v", name, want, got, ok)
		}
	}
	if _, ok := GetInt(rec, "missing"); ok {
		t.Fatalf("expected missing int to report not found")
	}
}

func TestGetRecordAcceptsRawBag(t *testing.T) {
	rec := Record{Fields: map[string]any{
		"nested": map[string]any{"name": "Shock"},
		"typed":  Record{Fields: map[string]any{"name": "Bolt"}},
	}}

	nested, ok := GetRecord(rec, "nested")
	if !ok {
		t.Fatalf("expected raw bag to convert")
	}
	if name, _ := Get[string](nested, "name"); name != "Shock" {
		t.Fatalf("expected Shock, got %q", name)
	}

	typed, ok := GetRecord(rec, "typed")
	if !ok {
		t.Fatalf("expected typed record to pass through")
	}
	if name, _ := Get[string](typed, "name"); name != "Bolt" {
		t.Fatalf("expected Bolt, got %q", name)
	}
}
