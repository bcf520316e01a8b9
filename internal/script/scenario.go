// Package script embeds Lua for the two user-extensible surfaces: scenario
// scripts that drive the duel simulator, and phrase hooks that rewrite
// announcement text before it reaches the sink.
package script

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/Shopify/go-lua"
)

const scenarioTypeName = "scenario"

// Scenario is a scripted duel: graph setup, host events, zone counts, and
// navigation keys in the order the script issued them.
type Scenario struct {
	Name  string
	Steps []Step
}

// Step is one scripted action. Args carries the Lua table converted to Go
// values; the simulator reads the fields it knows and ignores the rest.
type Step struct {
	Kind string
	Args map[string]any
}

// LoadScenario runs a Lua scenario file and returns the Scenario it built.
// The script must end with `return s` for the scenario userdata.
func LoadScenario(path string) (*Scenario, error) {
	state := lua.NewState()
	lua.OpenLibraries(state)

	registerScenarioType(state)
	registerScenarioConstructor(state)

	if err := lua.LoadFile(state, path, ""); err != nil {
		return nil, fmt.Errorf("load scenario: %w", err)
	}
	if err := state.ProtectedCall(0, 1, 0); err != nil {
		return nil, fmt.Errorf("run scenario: %w", err)
	}

	if state.TypeOf(-1) != lua.TypeUserData {
		state.Pop(1)
		return nil, fmt.Errorf("scenario script must return a Scenario")
	}
	ud := state.ToUserData(-1)
	state.Pop(1)
	scenario, ok := ud.(*Scenario)
	if !ok || scenario == nil {
		return nil, fmt.Errorf("scenario script returned invalid Scenario")
	}
	if strings.TrimSpace(scenario.Name) == "" {
		scenario.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return scenario, nil
}

func registerScenarioType(state *lua.State) {
	lua.NewMetaTable(state, scenarioTypeName)
	state.NewTable()
	lua.SetFunctions(state, scenarioMethods, 0)
	state.SetField(-2, "__index")
	state.Pop(1)
}

func registerScenarioConstructor(state *lua.State) {
	state.NewTable()
	lua.SetFunctions(state, scenarioConstructor, 0)
	state.SetGlobal("Scenario")
}

var scenarioConstructor = []lua.RegistryFunction{
	{Name: "new", Function: scenarioNew},
}

func scenarioNew(state *lua.State) int {
	name := lua.OptString(state, 1, "")
	scenario := &Scenario{Name: name}
	state.PushUserData(scenario)
	lua.SetMetaTableNamed(state, scenarioTypeName)
	return 1
}

var scenarioMethods = []lua.RegistryFunction{
	{Name: "card", Function: scenarioCard},
	{Name: "player", Function: scenarioPlayer},
	{Name: "prompt", Function: scenarioPrompt},
	{Name: "submit", Function: scenarioSubmit},
	{Name: "event", Function: scenarioEvent},
	{Name: "count", Function: scenarioCount},
	{Name: "tick", Function: scenarioTick},
	{Name: "key", Function: scenarioKey},
	{Name: "sleep", Function: scenarioSleep},
}

func checkScenario(state *lua.State) *Scenario {
	ud := lua.CheckUserData(state, 1, scenarioTypeName)
	scenario, ok := ud.(*Scenario)
	if !ok || scenario == nil {
		lua.ArgumentError(state, 1, "scenario expected")
		return nil
	}
	return scenario
}

func appendStep(scenario *Scenario, kind string, data map[string]any) {
	if scenario == nil {
		return
	}
	if data == nil {
		data = map[string]any{}
	}
	scenario.Steps = append(scenario.Steps, Step{Kind: kind, Args: data})
}

// card places a card node: s:card{id=, name=, zone=, x=, eligible=}.
func scenarioCard(state *lua.State) int {
	scenario := checkScenario(state)
	lua.CheckType(state, 2, lua.TypeTable)
	appendStep(scenario, "card", tableToMap(state, 2))
	return 0
}

// player registers a player pseudo-target: s:player(id, name, opponent).
func scenarioPlayer(state *lua.State) int {
	scenario := checkScenario(state)
	id := lua.CheckString(state, 2)
	name := lua.CheckString(state, 3)
	opponent := state.ToBoolean(4)
	appendStep(scenario, "player", map[string]any{
		"id": id, "name": name, "opponent": opponent,
	})
	return 0
}

// prompt configures the prompt button pair: s:prompt(primary, secondary, enabled).
func scenarioPrompt(state *lua.State) int {
	scenario := checkScenario(state)
	primary := lua.CheckString(state, 2)
	secondary := lua.OptString(state, 3, "")
	enabled := state.ToBoolean(4)
	appendStep(scenario, "prompt", map[string]any{
		"primary": primary, "secondary": secondary, "enabled": enabled,
	})
	return 0
}

// submit configures the submit control: s:submit(text, enabled).
func scenarioSubmit(state *lua.State) int {
	scenario := checkScenario(state)
	text := lua.CheckString(state, 2)
	enabled := state.ToBoolean(3)
	appendStep(scenario, "submit", map[string]any{
		"text": text, "enabled": enabled,
	})
	return 0
}

// event feeds one host event record: s:event(type_name, fields_table).
func scenarioEvent(state *lua.State) int {
	scenario := checkScenario(state)
	typeName := lua.CheckString(state, 2)
	fields := optionalTable(state, 3)
	appendStep(scenario, "event", map[string]any{
		"type": typeName, "fields": fields,
	})
	return 0
}

// count feeds one zone count observation: s:count("local.hand", 7).
func scenarioCount(state *lua.State) int {
	scenario := checkScenario(state)
	key := lua.CheckString(state, 2)
	n := lua.CheckInteger(state, 3)
	appendStep(scenario, "count", map[string]any{
		"zone": key, "count": n,
	})
	return 0
}

// tick advances frames: s:tick(3).
func scenarioTick(state *lua.State) int {
	scenario := checkScenario(state)
	n := int(lua.OptInteger(state, 2, 1))
	appendStep(scenario, "tick", map[string]any{"frames": n})
	return 0
}

// key issues a navigation command: s:key("next"), optionally s:key("next", "target").
func scenarioKey(state *lua.State) int {
	scenario := checkScenario(state)
	command := lua.CheckString(state, 2)
	mode := lua.OptString(state, 3, "zone")
	appendStep(scenario, "key", map[string]any{
		"command": command, "mode": mode,
	})
	return 0
}

// sleep advances the simulated clock: s:sleep(600) in milliseconds.
func scenarioSleep(state *lua.State) int {
	scenario := checkScenario(state)
	ms := lua.CheckInteger(state, 2)
	appendStep(scenario, "sleep", map[string]any{"ms": ms})
	return 0
}

func optionalTable(state *lua.State, index int) map[string]any {
	if state.IsNoneOrNil(index) || state.TypeOf(index) != lua.TypeTable {
		return map[string]any{}
	}
	return tableToMap(state, index)
}

func tableToMap(state *lua.State, index int) map[string]any {
	output := map[string]any{}
	if state.TypeOf(index) != lua.TypeTable {
		return output
	}

	index = state.AbsIndex(index)
	state.PushNil()
	for state.Next(index) {
		if state.TypeOf(-2) == lua.TypeString {
			key, _ := state.ToString(-2)
			output[key] = luaToGo(state, -1)
		}
		state.Pop(1)
	}
	return output
}

func luaToGo(state *lua.State, index int) any {
	switch state.TypeOf(index) {
	case lua.TypeString:
		value, _ := state.ToString(index)
		return value
	case lua.TypeNumber:
		value, _ := state.ToNumber(index)
		return normalizeNumber(value)
	case lua.TypeBoolean:
		return state.ToBoolean(index)
	case lua.TypeTable:
		return tableToGo(state, index)
	default:
		return nil
	}
}

// tableToGo converts a table to a []any when it is a dense 1-based array,
// otherwise to a map.
func tableToGo(state *lua.State, index int) any {
	index = state.AbsIndex(index)
	isArray := true
	maxIndex := 0
	count := 0
	state.PushNil()
	for state.Next(index) {
		if isArray {
			if state.TypeOf(-2) != lua.TypeNumber {
				isArray = false
			} else if idx, ok := state.ToInteger(-2); ok && idx > 0 {
				count++
				if idx > maxIndex {
					maxIndex = idx
				}
			} else {
				isArray = false
			}
		}
		state.Pop(1)
	}

	if isArray && count > 0 && maxIndex == count {
		result := make([]any, 0, maxIndex)
		for i := 1; i <= maxIndex; i++ {
			state.RawGetInt(index, i)
			result = append(result, luaToGo(state, -1))
			state.Pop(1)
		}
		return result
	}

	return tableToMap(state, index)
}

func normalizeNumber(value float64) any {
	if math.Mod(value, 1) == 0 {
		return int(value)
	}
	return value
}
