// Package props builds property sets from the places deployments keep
// configuration: plain maps, the process environment, and config files.
//
// Every loader returns a core.Properties ready to hand to the resolution
// functions; none of them validate keys or values, that happens during
// resolution.
package props

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/provossen/mqconf/core"
)

// FromMap copies m into a property set, so later changes to either side
// stay invisible to the other.
func FromMap(m map[string]string) core.Properties {
	props := make(core.Properties, len(m))
	for k, v := range m {
		props[k] = v
	}
	return props
}

// FromEnv collects properties from environment variables starting with
// prefix. The prefix is stripped and the rest lowercased with underscores
// turned into dots, so with the prefix "MQCONF_" the variable
// MQCONF_NAMESERVER_ADDR feeds the nameserver.addr property.
func FromEnv(prefix string) core.Properties {
	props := core.Properties{}
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(k, prefix) {
			continue
		}
		key := strings.ToLower(strings.TrimPrefix(k, prefix))
		key = strings.ReplaceAll(key, "_", ".")
		if key == "" {
			continue
		}
		props[key] = v
	}
	return props
}

// FromViper flattens every key v knows about into a property set. Nested
// sections come out in dotted form, which is exactly the shape the
// property keys use, so a config tree like consumer.messages.orderly maps
// onto the matching property without further translation.
func FromViper(v *viper.Viper) core.Properties {
	keys := v.AllKeys()
	props := make(core.Properties, len(keys))
	for _, key := range keys {
		props[key] = v.GetString(key)
	}
	return props
}

// FromFile reads a single configuration file into a property set. The
// format is inferred from the extension; anything viper reads (yaml,
// json, toml, ini, ...) works.
func FromFile(path string) (core.Properties, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read properties from %s: %w", path, err)
	}
	return FromViper(v), nil
}
