package serializers

import (
	"encoding/json"
	"fmt"

	"storefront-gateway/src/interfaces"
)

// -----------------------------------------------------------------------------

// JSONSerializer implements interfaces.ISerializer with encoding/json. It is
// the default envelope encoding on the relay bus and the wire format every
// stream control frame uses.
type JSONSerializer struct{}

// -----------------------------------------------------------------------------

// NewJSONSerializer creates a new JSON serializer.
func NewJSONSerializer() interfaces.ISerializer {
	return &JSONSerializer{}
}

// -----------------------------------------------------------------------------

// Marshal encodes the object as JSON.
func (j *JSONSerializer) Marshal(obj any) ([]byte, error) {
	data, err := json.Marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("json marshal error: %w", err)
	}
	return data, nil
}

// -----------------------------------------------------------------------------

// Unmarshal decodes JSON bytes into the target object.
func (j *JSONSerializer) Unmarshal(data []byte, obj any) error {
	if err := json.Unmarshal(data, obj); err != nil {
		return fmt.Errorf("json unmarshal error: %w", err)
	}
	return nil
}

// -----------------------------------------------------------------------------

// NewSerializer resolves a serializer by its configured format name.
// Unknown or empty formats default to JSON.
func NewSerializer(format string) interfaces.ISerializer {
	switch format {
	case "gob":
		return NewBinSerializer()
	default:
		return NewJSONSerializer()
	}
}
