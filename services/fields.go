package services

import "encoding/json"

// OptionalString is one slot of a partial update. Set distinguishes "key
// absent from the request" from "key provided", and Null records an explicit
// JSON null, which is how callers clear a nullable field. A plain nil-check
// cannot express that difference.
type OptionalString struct {
	Set   bool
	Null  bool
	Value string
}

func (o *OptionalString) UnmarshalJSON(b []byte) error {
	o.Set = true
	if string(b) == "null" {
		o.Null = true
		return nil
	}
	return json.Unmarshal(b, &o.Value)
}
