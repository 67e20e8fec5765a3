package models

// FormValues maps a placeholder name to its current value. A value is a
// string, a number, a bool, or absent.
type FormValues map[string]any

// Clone returns a shallow copy of v. A nil map clones to an empty one.
func (v FormValues) Clone() FormValues {
	out := make(FormValues, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// FieldErrors maps a placeholder name to a user-facing error message.
type FieldErrors map[string]string

// HasErrors reports whether at least one field failed validation.
func (e FieldErrors) HasErrors() bool {
	return len(e) > 0
}
