package models

import (
	"bytes"
	"strconv"
)

// ID is a backend-assigned identifier. The backend may send it as a JSON
// number or string; it is kept as its decimal/string form either way.
type ID string

// UnmarshalJSON accepts both `12` and `"12"`
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		s, err := strconv.Unquote(string(data))
		if err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	*id = ID(data)
	return nil
}

// String returns the identifier as used in URLs and form values
func (id ID) String() string {
	return string(id)
}

// Gender is the enumerated gender of a student
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Genders lists the selectable values in display order
var Genders = []Gender{GenderMale, GenderFemale}
