package store

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// jsonColumn marshals any Go value into a JSONB column and back. Used for
// the snapshot payload envelope and the data-type lists so repositories
// never hand-roll array encodings.
type jsonColumn[T any] struct {
	val T
}

// Value implements [driver.Valuer].
func (c jsonColumn[T]) Value() (driver.Value, error) {
	data, err := json.Marshal(c.val)
	if err != nil {
		return nil, fmt.Errorf("error marshaling json column: %w", err)
	}
	return data, nil
}

// Scan implements [sql.Scanner].
func (c *jsonColumn[T]) Scan(src any) error {
	if src == nil {
		var zero T
		c.val = zero
		return nil
	}

	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported json column source type %T", src)
	}

	if err := json.Unmarshal(data, &c.val); err != nil {
		return fmt.Errorf("error unmarshaling json column: %w", err)
	}
	return nil
}
