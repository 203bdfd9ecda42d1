package api

import "encoding/json"

// NullableString carries the three states of an optional field in an
// update: absent (keep), null (clear) and a string (set). Use it with the
// omitzero tag option so that absent fields are left out on the wire.
type NullableString struct {
	Set   bool
	Value *string
}

// Keep, Null and String build the three states.
func Keep() NullableString           { return NullableString{} }
func Null() NullableString           { return NullableString{Set: true} }
func String(v string) NullableString { return NullableString{Set: true, Value: &v} }

func (n NullableString) IsZero() bool { return !n.Set }

func (n NullableString) MarshalJSON() ([]byte, error) {
	if n.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*n.Value)
}

// UnmarshalJSON only runs for keys present in the document, so reaching it
// at all means the field was supplied.
func (n *NullableString) UnmarshalJSON(b []byte) error {
	n.Set = true
	if string(b) == "null" {
		n.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	n.Value = &s
	return nil
}
