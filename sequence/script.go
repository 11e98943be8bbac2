package sequence

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// Load builds a Runner from a tengo script. The script must define a global
// `sequence`: an array of {delay: seconds, action: name} maps, where every
// action name resolves in the host's action table. An unknown action is a
// load error so a broken script is abandoned before anything fires.
func Load(src []byte, actions map[string]func()) (*Runner, error) {
	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Run()
	if err != nil {
		return nil, fmt.Errorf("sequence: script error: %w", err)
	}

	raw, ok := compiled.Get("sequence").Value().([]interface{})
	if !ok {
		return nil, fmt.Errorf("sequence: script does not define a `sequence` array")
	}

	steps := make([]Step, 0, len(raw))
	for i, entry := range raw {
		m, ok := entry.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("sequence: entry %d is not a map", i)
		}
		name := strings.TrimSpace(stringValue(m["action"]))
		if name == "" {
			return nil, fmt.Errorf("sequence: entry %d has no action", i)
		}
		do, ok := actions[name]
		if !ok {
			return nil, fmt.Errorf("sequence: entry %d names unknown action %q", i, name)
		}
		steps = append(steps, Step{
			Name:  name,
			Delay: floatValue(m["delay"]),
			Do:    do,
		})
	}
	return NewRunner(steps)
}

func stringValue(v interface{}) string {
	s, _ := v.(string)
	return s
}

func floatValue(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case int:
		return float64(n)
	}
	return 0
}
