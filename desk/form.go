package desk

import (
	"fmt"
	"reflect"

	"flight_desk/validate"
)

// Values is the mutable field state behind a form. Set receives operator
// text; Payload maps the whole form onto the backend input shape.
type Values interface {
	Set(field, value string) error
	Payload() (any, error)
}

type selector interface {
	Select(field string, item any) error
}

type derivedSetter interface {
	SetDerived(field string, value *float64) error
}

type filler interface {
	Fill(item any) error
}

// Form owns the field state of one operator form, its required-field
// validation and its derived fields.
type Form struct {
	kind      Kind
	newValues func() Values
	derived   []DerivedField
	values    Values
}

func NewForm(kind Kind, newValues func() Values, derived ...DerivedField) *Form {
	return &Form{
		kind:      kind,
		newValues: newValues,
		derived:   derived,
		values:    newValues(),
	}
}

func (f *Form) Kind() Kind { return f.kind }

// Input applies operator text to field and refreshes the fields derived
// from it.
func (f *Form) Input(field, value string) error {
	if err := f.values.Set(field, value); err != nil {
		return err
	}
	for _, d := range f.derived {
		if d.Source != field {
			continue
		}
		setter, ok := f.values.(derivedSetter)
		if !ok {
			return fmt.Errorf("%s form cannot hold %s: %w", f.kind, d.Target, ErrUnknownField)
		}
		if err := setter.SetDerived(d.Target, d.Derive(value)); err != nil {
			return err
		}
	}
	return nil
}

// Select stores the object the operator picked for a relation field.
func (f *Form) Select(field string, item any) error {
	s, ok := f.values.(selector)
	if !ok {
		return fmt.Errorf("%s form has no %q selection: %w", f.kind, field, ErrUnknownField)
	}
	return s.Select(field, item)
}

// Fill prefills the form from a loaded entity.
func (f *Form) Fill(item any) error {
	fl, ok := f.values.(filler)
	if !ok {
		return fmt.Errorf("%s form cannot be prefilled", f.kind)
	}
	return fl.Fill(item)
}

// Missing returns the JSON names of the fields that are empty or malformed.
func (f *Form) Missing() []string {
	err := validate.Input(f.values)
	if err == nil {
		return nil
	}
	if fields := validate.Fields(err); len(fields) > 0 {
		return fields
	}
	return []string{err.Error()}
}

func (f *Form) Valid() bool { return len(f.Missing()) == 0 }

func (f *Form) Values() Values { return f.values }

// Snapshot returns a shallow copy of the field state. Selections and derived
// values are replaced on every change, never written through, so the copy
// stays stable while the form keeps changing.
func (f *Form) Snapshot() Values {
	v := reflect.ValueOf(f.values)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return f.values
	}
	cp := reflect.New(v.Elem().Type())
	cp.Elem().Set(v.Elem())
	return cp.Interface().(Values)
}

func (f *Form) Payload() (any, error) { return f.values.Payload() }

func (f *Form) Reset() { f.values = f.newValues() }
