package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONList is a list stored as a JSON array in a text column.
// A nil list is written and marshalled as [] so the column never holds null.
type JSONList[T any] []T

func (l JSONList[T]) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal([]T(l))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (l *JSONList[T]) Scan(value any) error {
	var data []byte
	switch v := value.(type) {
	case nil:
		*l = JSONList[T]{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported JSON list source type %T", value)
	}

	if len(data) == 0 || string(data) == "null" {
		*l = JSONList[T]{}
		return nil
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("failed to decode JSON list: %w", err)
	}
	if items == nil {
		items = []T{}
	}
	*l = items
	return nil
}

func (l JSONList[T]) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]T(l))
}

func (JSONList[T]) GormDataType() string {
	return "text"
}
