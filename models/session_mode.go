package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// SessionMode is how a tutoring session is delivered.
type SessionMode string

const (
	SessionOnline  SessionMode = "ONLINE"
	SessionInHouse SessionMode = "IN_HOUSE"
)

func (m SessionMode) Valid() bool {
	return m == SessionOnline || m == SessionInHouse
}

// SessionModes is the set of modes a subject is offered in, stored as a JSON array.
type SessionModes []SessionMode

// Value implements the driver.Valuer interface
func (m SessionModes) Value() (driver.Value, error) {
	if m == nil {
		m = SessionModes{}
	}
	jsonData, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (m *SessionModes) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("failed to unmarshal SessionModes: unsupported type %T", value)
	}

	return json.Unmarshal(data, m)
}

func (m SessionModes) Has(mode SessionMode) bool {
	for _, v := range m {
		if v == mode {
			return true
		}
	}
	return false
}

// Normalize drops duplicates while keeping the first occurrence order.
func (m SessionModes) Normalize() SessionModes {
	out := make(SessionModes, 0, len(m))
	for _, v := range m {
		if !out.Has(v) {
			out = append(out, v)
		}
	}
	return out
}
