package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/jmylchreest/pastefix/internal/logger"
	"github.com/jmylchreest/pastefix/pkg/transform"
)

// loadRegistry returns the built-in profiles plus any from the profiles file.
func loadRegistry() (*transform.Registry, error) {
	reg := transform.NewRegistry()
	path := viper.GetString("profiles")
	if path == "" {
		return reg, nil
	}
	if err := reg.LoadFile(path); err != nil {
		return nil, err
	}
	logger.Debug("profiles loaded", "path", path, "count", len(reg.Profiles()))
	return reg, nil
}

// resolveProfile resolves the configured mode with the overrides from the
// config file, then those given on the command line.
func resolveProfile(reg *transform.Registry, sets []string) (transform.Profile, error) {
	overrides := map[string]bool{}
	if viper.IsSet("overrides") {
		if err := viper.UnmarshalKey("overrides", &overrides); err != nil {
			return transform.Profile{}, fmt.Errorf("invalid overrides in config: %w", err)
		}
	}

	cli, err := parseOverrides(sets)
	if err != nil {
		return transform.Profile{}, err
	}
	for k, v := range cli {
		overrides[k] = v
	}

	profile, err := reg.Resolve(viper.GetString("mode"), overrides)
	if err != nil {
		return transform.Profile{}, err
	}
	logger.Debug("profile resolved", "profile", profile.String())
	return profile, nil
}

// parseOverrides parses --set values: "name=true", "name=false" or a bare
// "name", which enables it.
func parseOverrides(sets []string) (map[string]bool, error) {
	out := make(map[string]bool, len(sets))
	for _, s := range sets {
		name, value, found := strings.Cut(s, "=")
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("invalid --set %q: missing transform name", s)
		}
		enabled := true
		if found {
			b, err := strconv.ParseBool(strings.TrimSpace(value))
			if err != nil {
				return nil, fmt.Errorf("invalid --set %q: %w", s, err)
			}
			enabled = b
		}
		out[name] = enabled
	}
	return out, nil
}

// transformNames lists every transform in application order.
func transformNames() []string {
	names := make([]string, 0, len(transform.Order))
	for _, n := range transform.Order {
		names = append(names, string(n))
	}
	return names
}

// profileNames lists the registered profiles in registration order.
func profileNames(reg *transform.Registry) []string {
	profiles := reg.Profiles()
	names := make([]string, 0, len(profiles))
	for _, p := range profiles {
		names = append(names, p.Name())
	}
	return names
}
