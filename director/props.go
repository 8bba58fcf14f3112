package director

import (
	"reflect"
	"strings"
)

// Assign sets props onto exported struct fields of e
// Spawn uses it for entities without a Spawn method; Spawnable entities may call it themselves
// A field matches by `prop` tag, else by case-insensitive name
// Values that are not assignable or convertible are skipped
func Assign(e Entity, props Props) {
	v := reflect.ValueOf(e)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return
	}
	v = v.Elem()
	if v.Kind() != reflect.Struct {
		return
	}

	fields := propFields(v.Type())
	for key, val := range props {
		idx, ok := fields[strings.ToLower(key)]
		if !ok {
			continue
		}
		field, err := v.FieldByIndexErr(idx)
		if err != nil {
			continue // nil embedded pointer
		}
		setField(field, val)
	}
}

// propFields maps lowercased prop keys to field indexes, embedded structs included
func propFields(t reflect.Type) map[string][]int {
	out := make(map[string][]int)
	for _, f := range reflect.VisibleFields(t) {
		if !f.IsExported() || f.Anonymous {
			continue
		}
		key := f.Tag.Get("prop")
		if key == "-" {
			continue
		}
		if key == "" {
			key = f.Name
		}
		out[strings.ToLower(key)] = f.Index
	}
	return out
}

func setField(field reflect.Value, val any) {
	if !field.CanSet() || val == nil {
		return
	}
	rv := reflect.ValueOf(val)
	switch {
	case rv.Type().AssignableTo(field.Type()):
		field.Set(rv)
	case isNumeric(rv.Kind()) && isNumeric(field.Kind()):
		field.Set(rv.Convert(field.Type()))
	}
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
