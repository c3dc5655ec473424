package rdm

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// Bind decodes the section's entries into target, a pointer to a
// struct. Field names are matched case-insensitively against entry
// keys; the `rdm` struct tag overrides the name. Values keep the types
// the store gives them, so a timestamp entry binds to a time.Time
// field directly.
func (s *Section) Bind(target any) error {
	return decodeInto(s.exportForBind(), target)
}

// Bind decodes the whole container into target, a pointer to a struct
// whose fields correspond to sections.
func (o *Obj) Bind(target any) error {
	data := make(map[string]any, len(o.names))
	for _, name := range o.names {
		data[name] = o.sections[name].exportForBind()
	}
	return decodeInto(data, target)
}

func (s *Section) exportForBind() map[string]any {
	data := make(map[string]any, len(s.keys))
	for _, key := range s.keys {
		data[key] = exportBindValue(s.entries[key].value)
	}
	return data
}

// exportBindValue lowers store-specific container types to the plain
// shapes the decoder understands. Scalars pass through unchanged.
func exportBindValue(value any) any {
	switch v := value.(type) {
	case Tuple:
		return exportBindValue([]any(v))
	case Set:
		out := make([]any, 0, len(v))
		for item := range v {
			out = append(out, exportBindValue(item))
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = exportBindValue(item)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(v))
		for key, val := range v {
			out[fmt.Sprint(key)] = exportBindValue(val)
		}
		return out
	case Path:
		return string(v)
	default:
		return value
	}
}

func decodeInto(data map[string]any, target any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "rdm",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("rdm: bind: %w", err)
	}
	if err := dec.Decode(data); err != nil {
		return fmt.Errorf("rdm: bind: %w", err)
	}
	return nil
}
