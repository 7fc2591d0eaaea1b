package expr

import (
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/risor-io/expr/compiler"
	"github.com/risor-io/expr/vm"
)

// Config holds engine settings.
type Config struct {
	NumericMode compiler.NumericMode

	// InitialStackSize is the number of evaluation stack slots allocated
	// up front. Defaults to 32.
	InitialStackSize int

	// MaxStackSize caps the evaluation stack. Zero means no cap.
	MaxStackSize int

	// MaxCodeSize caps compiled instructions in bytes. Zero means no cap.
	MaxCodeSize int

	// CacheSize enables a compiled code cache of this many entries.
	CacheSize int

	// DisableFunctions lists built-in or plugin function names, in any
	// case, that are not registered.
	DisableFunctions []string

	Plugins []Plugin

	// Params are the initial global parameters, converted with
	// Params.SetAny.
	Params map[string]any
}

// DefaultConfig returns the default engine settings.
func DefaultConfig() Config {
	return Config{
		NumericMode:      compiler.NumericAll,
		InitialStackSize: vm.DefaultStackSize,
	}
}

type fileConfig struct {
	NumericMode      string         `toml:"numeric_mode"`
	InitialStackSize *int           `toml:"initial_stack_size"`
	MaxStackSize     int            `toml:"max_stack_size"`
	MaxCodeSize      int            `toml:"max_code_size"`
	CacheSize        int            `toml:"cache_size"`
	DisableFunctions []string       `toml:"disable_functions"`
	Plugins          []string       `toml:"plugins"`
	Params           map[string]any `toml:"params"`
}

// LoadConfigFile reads engine settings from a TOML file:
//
//	numeric_mode = "decimal"
//	max_stack_size = 256
//	plugins = ["trig"]
//	disable_functions = ["EXP"]
//
//	[params]
//	TAU = 6.283185307179586
//
// Unknown keys are an error.
func LoadConfigFile(path string) (Config, error) {
	var fc fileConfig
	md, err := toml.DecodeFile(path, &fc)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return fc.toConfig(path, md)
}

// ParseConfig reads engine settings from TOML text.
func ParseConfig(text string) (Config, error) {
	var fc fileConfig
	md, err := toml.Decode(text, &fc)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return fc.toConfig("", md)
}

func (fc fileConfig) toConfig(path string, md toml.MetaData) (Config, error) {
	prefix := "config"
	if path != "" {
		prefix = "config " + path
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		sort.Strings(keys)
		return Config{}, fmt.Errorf("%s: unknown keys: %s", prefix, strings.Join(keys, ", "))
	}

	cfg := DefaultConfig()
	mode, err := compiler.ParseNumericMode(fc.NumericMode)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", prefix, err)
	}
	cfg.NumericMode = mode
	if fc.InitialStackSize != nil {
		cfg.InitialStackSize = *fc.InitialStackSize
	}
	cfg.MaxStackSize = fc.MaxStackSize
	cfg.MaxCodeSize = fc.MaxCodeSize
	cfg.CacheSize = fc.CacheSize
	cfg.DisableFunctions = fc.DisableFunctions
	for _, name := range fc.Plugins {
		plugin, err := PluginByName(name)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", prefix, err)
		}
		cfg.Plugins = append(cfg.Plugins, plugin)
	}
	cfg.Params = fc.Params
	return cfg, nil
}
