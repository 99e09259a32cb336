package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

type (
	// MetadataJSON carries audit-event metadata: ids, counts, levels,
	// reason codes. Content fields are never placed here.
	MetadataJSON map[string]interface{}

	// ReasonsJSON maps an attempted sanitization level to the gate reason
	// codes that rejected it. Nil when the first level passed outright.
	ReasonsJSON map[string][]string

	// SettingsJSON holds the per-project ingestion policy as stored;
	// callers decode it into a typed policy struct.
	SettingsJSON map[string]interface{}
)

func (m MetadataJSON) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *MetadataJSON) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("expected []byte, got %T", value)
	}
	return json.Unmarshal(bytes, m)
}

func (r ReasonsJSON) Value() (driver.Value, error) {
	if r == nil {
		return nil, nil
	}
	return json.Marshal(r)
}

func (r *ReasonsJSON) Scan(value interface{}) error {
	if value == nil {
		*r = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("expected []byte, got %T", value)
	}
	return json.Unmarshal(bytes, r)
}

func (s SettingsJSON) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

func (s *SettingsJSON) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("expected []byte, got %T", value)
	}
	return json.Unmarshal(bytes, s)
}
