package rdm

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// DumpOption configures dump behavior using the functional options
// pattern.
type DumpOption func(*dumpConfig)

type dumpConfig struct {
	format    string // "text", "json", "yaml", "toml"
	indent    string
	withTypes bool
}

// AsJSON outputs the container as indented JSON.
func AsJSON() DumpOption {
	return func(cfg *dumpConfig) {
		cfg.format = "json"
	}
}

// AsYAML outputs the container as YAML.
func AsYAML() DumpOption {
	return func(cfg *dumpConfig) {
		cfg.format = "yaml"
	}
}

// AsTOML outputs the container as TOML.
func AsTOML() DumpOption {
	return func(cfg *dumpConfig) {
		cfg.format = "toml"
	}
}

// WithIndent sets the indentation for JSON output. Default is two
// spaces.
func WithIndent(indent string) DumpOption {
	return func(cfg *dumpConfig) {
		cfg.indent = indent
	}
}

// WithTypes appends the declared type of each entry in text mode.
// Structured modes ignore it.
func WithTypes() DumpOption {
	return func(cfg *dumpConfig) {
		cfg.withTypes = true
	}
}

// Dump writes a representation of the container for consumption
// outside the format: a readable section.key listing by default, or
// JSON/YAML/TOML with the structured options. Typed values are
// converted to plain interop values first (sets become sorted
// sequences, timestamps RFC 3339 text, paths plain strings), so the
// output is one-way; round-tripping is what Save and Load are for.
func (o *Obj) Dump(w io.Writer, opts ...DumpOption) error {
	cfg := dumpConfig{
		format: "text",
		indent: "  ",
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	switch cfg.format {
	case "text":
		return o.dumpText(w, cfg)
	case "json":
		data, err := json.MarshalIndent(o.exportMap(), "", cfg.indent)
		if err != nil {
			return err
		}
		data = append(data, '\n')
		_, err = w.Write(data)
		return err
	case "yaml":
		data, err := yaml.Marshal(o.exportMap())
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	case "toml":
		data, err := toml.Marshal(o.exportMap())
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("rdm: unsupported dump format %q", cfg.format)
	}
}

func (o *Obj) dumpText(w io.Writer, cfg dumpConfig) error {
	for _, name := range o.names {
		s := o.sections[name]
		for _, key := range s.keys {
			e := s.entries[key]
			line := fmt.Sprintf("%s.%s: %v", name, key, exportValue(e.value))
			if cfg.withTypes {
				line += fmt.Sprintf(" (%s)", e.typ)
			}
			if _, err := io.WriteString(w, line+"\n"); err != nil {
				return err
			}
		}
	}
	return nil
}

// exportMap converts the container into nested maps of plain values
// for the structured encoders.
func (o *Obj) exportMap() map[string]map[string]any {
	out := make(map[string]map[string]any, len(o.names))
	for _, name := range o.names {
		s := o.sections[name]
		section := make(map[string]any, len(s.keys))
		for _, key := range s.keys {
			section[key] = exportValue(s.entries[key].value)
		}
		out[name] = section
	}
	return out
}

// exportValue maps a stored value onto types the interop encoders
// handle: sets become sorted sequences, tuples sequences, mapping keys
// strings, and the registry scalars their text forms.
func exportValue(value any) any {
	switch v := value.(type) {
	case time.Time:
		return v.Format(time.RFC3339Nano)
	case Date:
		return v.String()
	case Clock:
		return v.String()
	case Path:
		return string(v)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = exportValue(item)
		}
		return out
	case Tuple:
		return exportValue([]any(v))
	case Set:
		out := make([]any, 0, len(v))
		for item := range v {
			out = append(out, exportValue(item))
		}
		sort.Slice(out, func(i, j int) bool {
			return fmt.Sprint(out[i]) < fmt.Sprint(out[j])
		})
		return out
	case map[any]any:
		out := make(map[string]any, len(v))
		for key, val := range v {
			out[fmt.Sprint(exportValue(key))] = exportValue(val)
		}
		return out
	default:
		return value
	}
}
