package params

import (
	"fmt"
	"reflect"
	"sort"
)

// Entry is one named scalar of the bundle. Array parameters are flattened to
// name[k].
type Entry struct {
	Name    string
	Group   string
	Value   float64
	Derived bool
}

// Describe lists every parameter in declaration order.
func (p *Params) Describe() []Entry {
	entries := make([]Entry, 0, 160)
	walk(reflect.ValueOf(p).Elem(), func(f reflect.StructField, v reflect.Value) {
		name := f.Tag.Get("param")
		group := f.Tag.Get("group")
		derived := f.Tag.Get("derived") == "true"

		switch v.Kind() {
		case reflect.Float64:
			entries = append(entries, Entry{Name: name, Group: group, Value: v.Float(), Derived: derived})
		case reflect.Int:
			entries = append(entries, Entry{Name: name, Group: group, Value: float64(v.Int()), Derived: derived})
		case reflect.Array:
			for k := 0; k < v.Len(); k++ {
				entries = append(entries, Entry{
					Name:    fmt.Sprintf("%s[%d]", name, k),
					Group:   group,
					Value:   v.Index(k).Float(),
					Derived: derived,
				})
			}
		}
	})
	return entries
}

// Groups returns the distinct group names in declaration order.
func (p *Params) Groups() []string {
	seen := make(map[string]bool)
	var groups []string
	for _, e := range p.Describe() {
		if !seen[e.Group] {
			seen[e.Group] = true
			groups = append(groups, e.Group)
		}
	}
	return groups
}

// Set overrides one scalar base parameter by name. Derive must be called
// afterwards so dependent factors pick up the change.
func (p *Params) Set(name string, value float64) error {
	var found, derived bool
	walk(reflect.ValueOf(p).Elem(), func(f reflect.StructField, v reflect.Value) {
		if found || f.Tag.Get("param") != name {
			return
		}
		found = true
		if f.Tag.Get("derived") == "true" {
			derived = true
			return
		}
		switch v.Kind() {
		case reflect.Float64:
			v.SetFloat(value)
		case reflect.Int:
			v.SetInt(int64(value))
		default:
			found = false
		}
	})
	if derived {
		return fmt.Errorf("%w: %s", ErrDerivedParam, name)
	}
	if !found {
		return fmt.Errorf("%w: %s", ErrUnknownParam, name)
	}
	return nil
}

// Apply sets every override in name order and re-derives the bundle.
func (p *Params) Apply(overrides map[string]float64) error {
	names := make([]string, 0, len(overrides))
	for name := range overrides {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := p.Set(name, overrides[name]); err != nil {
			return err
		}
	}
	return p.Derive()
}

func walk(v reflect.Value, fn func(reflect.StructField, reflect.Value)) {
	t := v.Type()
	for k := 0; k < t.NumField(); k++ {
		f := t.Field(k)
		fv := v.Field(k)
		if f.Type.Kind() == reflect.Struct {
			walk(fv, fn)
			continue
		}
		if f.Tag.Get("param") == "" {
			continue
		}
		fn(f, fv)
	}
}
