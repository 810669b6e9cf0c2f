package transform

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Registry maps mode names to profiles: the built-in modes plus any custom
// profiles loaded from files. Populate it before sharing it; lookups do not
// lock.
type Registry struct {
	profiles map[string]Profile
	order    []string
}

// NewRegistry creates a registry holding the built-in modes.
func NewRegistry() *Registry {
	r := &Registry{profiles: make(map[string]Profile)}
	for _, mode := range BuiltinModes() {
		p, _ := Builtin(mode)
		r.add(p)
	}
	return r
}

func (r *Registry) add(p Profile) {
	if _, exists := r.profiles[p.Name()]; !exists {
		r.order = append(r.order, p.Name())
	}
	r.profiles[p.Name()] = p
}

// Register adds or replaces a profile. Built-in modes cannot be replaced.
func (r *Registry) Register(p Profile) error {
	if isBuiltin(p.Name()) {
		return fmt.Errorf("%w: %q is a built-in mode", ErrInvalidProfile, p.Name())
	}
	r.add(p)
	return nil
}

// Lookup returns the profile registered under name.
func (r *Registry) Lookup(name string) (Profile, bool) {
	p, ok := r.profiles[name]
	return p, ok
}

// Profiles returns every profile in registration order.
func (r *Registry) Profiles() []Profile {
	out := make([]Profile, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.profiles[name])
	}
	return out
}

// Resolve looks up mode and applies overrides. An empty mode selects
// DefaultMode.
func (r *Registry) Resolve(mode string, overrides map[string]bool) (Profile, error) {
	mode = strings.ToLower(strings.TrimSpace(mode))
	if mode == "" {
		mode = DefaultMode
	}
	p, ok := r.profiles[mode]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
	return p.With(overrides)
}

func isBuiltin(name string) bool {
	for _, m := range BuiltinModes() {
		if m == name {
			return true
		}
	}
	return false
}

// profileFile is the on-disk form of custom profiles:
//
//	profiles:
//	  - name: newsletter
//	    base: editorial
//	    transforms:
//	      sources: false
type profileFile struct {
	Profiles []profileSpec `yaml:"profiles" validate:"required,min=1,dive"`
}

type profileSpec struct {
	Name       string          `yaml:"name" validate:"required,profilename"`
	Base       string          `yaml:"base" validate:"omitempty,profilename"`
	Transforms map[string]bool `yaml:"transforms" validate:"dive,keys,transform,endkeys"`
}

var profileNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_-]{0,63}$`)

func newProfileValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("profilename", func(fl validator.FieldLevel) bool {
		return profileNamePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("transform", func(fl validator.FieldLevel) bool {
		_, err := ParseName(fl.Field().String())
		return err == nil
	})
	return v
}

// Load reads custom profiles from YAML and registers them. A profile's base
// may be a built-in mode or a profile defined earlier, in this or a previous
// load; without a base it starts from ModeCustom. Nothing is registered when
// any profile in the document is invalid.
func (r *Registry) Load(rd io.Reader) error {
	var file profileFile
	dec := yaml.NewDecoder(rd)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty profile document", ErrInvalidProfile)
		}
		return fmt.Errorf("%w: decoding profiles: %v", ErrInvalidProfile, err)
	}

	if err := newProfileValidator().Struct(file); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%w: %s failed %q (value %v)", ErrInvalidProfile, fe.Namespace(), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}

	staged := make(map[string]Profile)
	var order []Profile
	for _, spec := range file.Profiles {
		if isBuiltin(spec.Name) {
			return fmt.Errorf("%w: %q is a built-in mode", ErrInvalidProfile, spec.Name)
		}
		if _, dup := staged[spec.Name]; dup {
			return fmt.Errorf("%w: %q defined twice", ErrInvalidProfile, spec.Name)
		}

		baseName := spec.Base
		if baseName == "" {
			baseName = ModeCustom
		}
		base, ok := staged[baseName]
		if !ok {
			base, ok = r.profiles[baseName]
		}
		if !ok {
			return fmt.Errorf("%w: profile %q has unknown base %q", ErrInvalidProfile, spec.Name, baseName)
		}

		p, err := base.Rename(spec.Name).With(spec.Transforms)
		if err != nil {
			return fmt.Errorf("%w: profile %q: %v", ErrInvalidProfile, spec.Name, err)
		}
		staged[spec.Name] = p
		order = append(order, p)
	}

	for _, p := range order {
		r.add(p)
	}
	return nil
}

// LoadFile reads custom profiles from a YAML file.
func (r *Registry) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening profiles: %w", err)
	}
	defer f.Close()

	if err := r.Load(f); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// Info is the serializable description of a profile.
type Info struct {
	Name       string          `json:"name" yaml:"name"`
	Builtin    bool            `json:"builtin" yaml:"builtin"`
	Transforms map[string]bool `json:"transforms" yaml:"transforms"`
}

// Describe returns the serializable form of every registered profile.
func (r *Registry) Describe() []Info {
	profiles := r.Profiles()
	out := make([]Info, 0, len(profiles))
	for _, p := range profiles {
		info := Info{Name: p.Name(), Builtin: isBuiltin(p.Name()), Transforms: make(map[string]bool, len(Order))}
		for n, on := range p.Transforms() {
			info.Transforms[string(n)] = on
		}
		out = append(out, info)
	}
	return out
}
