package script

import (
	"fmt"
	"log"

	"github.com/Shopify/go-lua"
)

// RewriteFunc rewrites announcement text. Empty output drops the
// announcement.
type RewriteFunc func(category, text string) string

// LoadPhraseHooks runs a Lua file that defines a global
// `rewrite(category, text)` function and returns it bound as a RewriteFunc.
//
// The hook contract is forgiving: returning nil, a non-string, or raising an
// error leaves the text unchanged; returning a string replaces it, and the
// empty string drops the announcement. A broken user script degrades
// narration, it never stops it.
func LoadPhraseHooks(path string) (RewriteFunc, error) {
	state := lua.NewState()
	lua.OpenLibraries(state)

	if err := lua.LoadFile(state, path, ""); err != nil {
		return nil, fmt.Errorf("load phrase hooks: %w", err)
	}
	if err := state.ProtectedCall(0, 0, 0); err != nil {
		return nil, fmt.Errorf("run phrase hooks: %w", err)
	}

	state.Global("rewrite")
	if state.TypeOf(-1) != lua.TypeFunction {
		state.Pop(1)
		return nil, fmt.Errorf("phrase hooks must define rewrite(category, text)")
	}
	state.Pop(1)

	// The returned closure is called only from the main-thread announcer,
	// matching the single-threaded Lua state.
	return func(category, text string) string {
		state.Global("rewrite")
		state.PushString(category)
		state.PushString(text)
		if err := state.ProtectedCall(2, 1, 0); err != nil {
			log.Printf("script: rewrite hook: %v", err)
			return text
		}
		defer state.Pop(1)
		if state.TypeOf(-1) != lua.TypeString {
			return text
		}
		out, _ := state.ToString(-1)
		return out
	}, nil
}
