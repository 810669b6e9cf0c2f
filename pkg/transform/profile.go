// Package transform holds the mode-dependent rewrites applied to a cleaned
// tree and the profiles that switch them on and off.
package transform

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Name identifies a transform. Names are stable and used in overrides and
// profile files.
type Name string

// Transform names, in execution order.
const (
	HeadingStrong  Name = "heading_strong"
	KeyTakeaways   Name = "key_takeaways"
	StrayHeading   Name = "stray_heading"
	LinkAttributes Name = "link_attributes"
	HeadingLists   Name = "heading_lists"
	SectionSpacing Name = "section_spacing"
	ListColons     Name = "list_colons"
	Sources        Name = "sources"
	RelativeLinks  Name = "relative_links"
)

// Order lists every transform in the order Apply runs them. Later
// transforms rely on the output of earlier ones.
var Order = []Name{
	HeadingStrong,
	KeyTakeaways,
	StrayHeading,
	LinkAttributes,
	HeadingLists,
	SectionSpacing,
	ListColons,
	Sources,
	RelativeLinks,
}

// Built-in modes.
const (
	ModePlain     = "plain"
	ModeEditorial = "editorial"
	ModeCommerce  = "commerce"
	ModeCustom    = "custom"
)

// DefaultMode is used when no mode is given.
const DefaultMode = ModeEditorial

var (
	// ErrUnknownMode is returned for a mode name with no profile.
	ErrUnknownMode = errors.New("unknown mode")

	// ErrUnknownTransform is returned for an override naming no transform.
	ErrUnknownTransform = errors.New("unknown transform")

	// ErrInvalidProfile is returned for a profile definition that fails validation.
	ErrInvalidProfile = errors.New("invalid profile")
)

// Profile is an immutable mode profile: a name plus the on/off state of
// every transform. The zero value has every transform off.
type Profile struct {
	name    string
	enabled map[Name]bool
}

// NewProfile creates a profile. Transforms missing from enabled are off.
func NewProfile(name string, enabled map[Name]bool) (Profile, error) {
	p := Profile{name: name, enabled: make(map[Name]bool, len(Order))}
	for n, on := range enabled {
		if !IsKnown(n) {
			return Profile{}, fmt.Errorf("%w: %q", ErrUnknownTransform, n)
		}
		p.enabled[n] = on
	}
	return p, nil
}

// Name returns the profile name.
func (p Profile) Name() string {
	return p.name
}

// Enabled reports whether transform n is on.
func (p Profile) Enabled(n Name) bool {
	return p.enabled[n]
}

// Transforms returns a copy of the on/off table, with every transform present.
func (p Profile) Transforms() map[Name]bool {
	out := make(map[Name]bool, len(Order))
	for _, n := range Order {
		out[n] = p.enabled[n]
	}
	return out
}

// EnabledNames lists the transforms that are on, in execution order.
func (p Profile) EnabledNames() []Name {
	var out []Name
	for _, n := range Order {
		if p.enabled[n] {
			out = append(out, n)
		}
	}
	return out
}

// With returns a copy of p with overrides applied on top. Override keys are
// transform names; unknown names are an error and p is returned unchanged.
func (p Profile) With(overrides map[string]bool) (Profile, error) {
	out := Profile{name: p.name, enabled: p.Transforms()}
	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		n, err := ParseName(k)
		if err != nil {
			return p, err
		}
		out.enabled[n] = overrides[k]
	}
	return out, nil
}

// Rename returns a copy of p under a different name.
func (p Profile) Rename(name string) Profile {
	return Profile{name: name, enabled: p.Transforms()}
}

// String renders the profile as "name[t1,t2,...]" listing enabled transforms.
func (p Profile) String() string {
	names := p.EnabledNames()
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = string(n)
	}
	return p.name + "[" + strings.Join(parts, ",") + "]"
}

// IsKnown reports whether n names a transform.
func IsKnown(n Name) bool {
	for _, o := range Order {
		if o == n {
			return true
		}
	}
	return false
}

// ParseName converts an override key to a Name. Matching ignores case and
// accepts dashes in place of underscores.
func ParseName(s string) (Name, error) {
	n := Name(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_"))
	if !IsKnown(n) {
		return "", fmt.Errorf("%w: %q", ErrUnknownTransform, s)
	}
	return n, nil
}

// builtinDefaults are the per-mode defaults. Link relativization is opt-in
// everywhere.
func builtinDefaults() map[string]map[Name]bool {
	all := func(except ...Name) map[Name]bool {
		m := make(map[Name]bool, len(Order))
		for _, n := range Order {
			m[n] = true
		}
		for _, n := range except {
			m[n] = false
		}
		return m
	}
	return map[string]map[Name]bool{
		ModePlain:     {LinkAttributes: true},
		ModeEditorial: all(RelativeLinks),
		ModeCommerce:  all(RelativeLinks, Sources),
		ModeCustom:    all(RelativeLinks),
	}
}

// Builtin returns the built-in profile for mode.
func Builtin(mode string) (Profile, error) {
	defaults, ok := builtinDefaults()[mode]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
	return NewProfile(mode, defaults)
}

// BuiltinModes lists the built-in mode names.
func BuiltinModes() []string {
	return []string{ModePlain, ModeEditorial, ModeCommerce, ModeCustom}
}

// Resolve returns the profile for a built-in mode with overrides applied.
// An empty mode selects DefaultMode. Custom profiles are resolved through a
// Registry.
func Resolve(mode string, overrides map[string]bool) (Profile, error) {
	return NewRegistry().Resolve(mode, overrides)
}
