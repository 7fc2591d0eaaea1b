package expr

import (
	"fmt"
	"sort"
	"strings"

	"github.com/risor-io/expr/builtins"
	"github.com/risor-io/expr/modules/rand"
	strplugin "github.com/risor-io/expr/modules/strings"
	"github.com/risor-io/expr/modules/trig"
)

// Plugin supplies a named group of functions to an Engine.
type Plugin interface {
	Name() string
	Functions() []builtins.Entry
}

var knownPlugins = map[string]func() Plugin{
	"rand":    func() Plugin { return rand.New() },
	"strings": func() Plugin { return strplugin.New() },
	"trig":    func() Plugin { return trig.New() },
}

// PluginByName returns a new instance of a bundled plugin.
func PluginByName(name string) (Plugin, error) {
	factory, ok := knownPlugins[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown plugin %q (available: %s)", name, strings.Join(PluginNames(), ", "))
	}
	return factory(), nil
}

// PluginNames returns the names of the bundled plugins.
func PluginNames() []string {
	names := make([]string, 0, len(knownPlugins))
	for name := range knownPlugins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
