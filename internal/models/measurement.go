package models

import (
	"encoding/json"
	"fmt"
)

// Measurement is a computed value that may be missing because there was nothing
// to compute it from. A no-data Measurement is distinct from a measured zero:
// a 0% success rate means every query failed, no data means none ran.
type Measurement struct {
	value   float64
	present bool
}

// Measured returns a Measurement holding v.
func Measured(v float64) Measurement {
	return Measurement{value: v, present: true}
}

// NoData returns the absent Measurement.
func NoData() Measurement {
	return Measurement{}
}

// Value returns the value and whether it is present.
func (m Measurement) Value() (float64, bool) {
	return m.value, m.present
}

func (m Measurement) IsNoData() bool {
	return !m.present
}

// Format renders the value with the given verb, or fallback when there is no data.
func (m Measurement) Format(verb string, fallback string) string {
	if !m.present {
		return fallback
	}
	return fmt.Sprintf(verb, m.value)
}

// MarshalJSON encodes no data as null.
func (m Measurement) MarshalJSON() ([]byte, error) {
	if !m.present {
		return []byte("null"), nil
	}
	return json.Marshal(m.value)
}

func (m *Measurement) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*m = NoData()
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*m = Measured(v)
	return nil
}
