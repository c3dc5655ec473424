package rdm

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/CoCo-R38/Rheel-Data-Management/internal/fileext"
)

// FileExt is the suffix enforced on every saved and loaded path.
const FileExt = ".rdm"

// Obj is the root container: an insertion-ordered mapping from section
// name to Section. An Obj is exclusively owned by its caller; nothing
// here is safe for concurrent use.
type Obj struct {
	names    []string
	sections map[string]*Section
	reg      *TypeRegistry
}

// Option configures a new Obj.
type Option func(*Obj)

// WithRegistry makes the Obj and its sections use reg instead of the
// shared default registry.
func WithRegistry(reg *TypeRegistry) Option {
	return func(o *Obj) {
		o.reg = reg
	}
}

// New creates an empty container.
func New(opts ...Option) *Obj {
	o := &Obj{
		sections: make(map[string]*Section),
		reg:      DefaultRegistry(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Section returns the named section, lazily creating an empty one on
// first access. Sections keep their first-creation order.
func (o *Obj) Section(name string) *Section {
	if s, ok := o.sections[name]; ok {
		return s
	}
	s := newSection(name, o.reg)
	o.sections[name] = s
	o.names = append(o.names, name)
	return s
}

// Has reports whether the named section exists, without creating it.
func (o *Obj) Has(name string) bool {
	_, ok := o.sections[name]
	return ok
}

// Names returns the section names in insertion order.
func (o *Obj) Names() []string {
	out := make([]string, len(o.names))
	copy(out, o.names)
	return out
}

// Save writes the container to path, correcting the suffix to .rdm.
// Sections are separated by one blank line and trailing whitespace is
// trimmed. The write goes through a temp file in the target directory
// and an atomic rename.
func (o *Obj) Save(path string) error {
	path = fileext.Ensure(path, FileExt)

	var lines []string
	for _, name := range o.names {
		sectionLines, err := o.sections[name].Serialize()
		if err != nil {
			return err
		}
		lines = append(lines, sectionLines...)
		lines = append(lines, "")
	}
	content := strings.TrimRight(strings.Join(lines, "\n"), " \t\n") + "\n"

	tempPath, err := tempFileName(path)
	if err != nil {
		return err
	}
	if err := os.WriteFile(tempPath, []byte(content), 0o644); err != nil {
		return err
	}
	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return err
	}
	return nil
}

// LoadOption configures Load fallback behavior for missing files.
type LoadOption func(*loadConfig)

type loadConfig struct {
	defaultObj *Obj
	defaultMap map[string]map[string]Entry
	reg        *TypeRegistry
}

// WithDefault returns a deep copy of def when the file does not exist.
func WithDefault(def *Obj) LoadOption {
	return func(cfg *loadConfig) {
		cfg.defaultObj = def
	}
}

// WithDefaultMap builds the fallback container from a nested mapping
// via FromMap when the file does not exist.
func WithDefaultMap(def map[string]map[string]Entry) LoadOption {
	return func(cfg *loadConfig) {
		cfg.defaultMap = def
	}
}

// WithLoadRegistry parses and builds with reg instead of the shared
// default registry.
func WithLoadRegistry(reg *TypeRegistry) LoadOption {
	return func(cfg *loadConfig) {
		cfg.reg = reg
	}
}

// Load reads and parses the file at path (suffix corrected to .rdm).
// When the file does not exist the configured default is returned —
// a deep copy of a default Obj, a container built from a default map,
// or an empty container — without touching the filesystem for a
// write. A malformed line aborts the load with a *ParseError carrying
// the line number; lenient callers catch it and fall back themselves.
func Load(path string, opts ...LoadOption) (*Obj, error) {
	cfg := loadConfig{reg: DefaultRegistry()}
	for _, opt := range opts {
		opt(&cfg)
	}

	path = fileext.Ensure(path, FileExt)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			switch {
			case cfg.defaultObj != nil:
				return cfg.defaultObj.Clone(), nil
			case cfg.defaultMap != nil:
				return FromMap(cfg.defaultMap, WithRegistry(cfg.reg))
			default:
				return New(WithRegistry(cfg.reg)), nil
			}
		}
		return nil, fmt.Errorf("rdm: read %s: %w", path, err)
	}

	return parseObj(strings.Split(string(data), "\n"), cfg.reg)
}

// parseObj splits raw lines into per-section buffers and hands each
// buffer to the section parser. A final in-flight buffer is flushed
// after the last header.
func parseObj(rawLines []string, reg *TypeRegistry) (*Obj, error) {
	o := New(WithRegistry(reg))

	currentName := ""
	currentStart := 0
	haveSection := false
	var buffer []string

	flush := func() error {
		if !haveSection {
			return nil
		}
		s, err := sectionFromLines(currentName, buffer, reg, currentStart)
		if err != nil {
			return err
		}
		if _, exists := o.sections[currentName]; !exists {
			o.names = append(o.names, currentName)
		}
		o.sections[currentName] = s
		return nil
	}

	for i, raw := range rawLines {
		stripped := strings.TrimSpace(stripComment(raw))
		if stripped == "" {
			if haveSection {
				buffer = append(buffer, "")
			}
			continue
		}
		if strings.HasPrefix(stripped, "[") && strings.HasSuffix(stripped, "]") {
			if err := flush(); err != nil {
				return nil, err
			}
			currentName = stripped[1 : len(stripped)-1]
			currentStart = i + 2 // body starts on the next 1-based line
			haveSection = true
			buffer = buffer[:0]
			continue
		}
		if haveSection {
			buffer = append(buffer, raw)
		}
		// Body lines before the first header are discarded, matching
		// the line parser this format grew out of.
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return o, nil
}

// Entry pairs a declared type with a value, the building block of
// FromMap and WithDefaultMap.
type Entry struct {
	Type  Type
	Value any
}

// FromMap builds a container from a nested mapping of section name to
// key to typed entry. Every entry goes through Section.Set and
// inherits its validation and deep-copy semantics. Sections and keys
// are created in sorted order since Go maps carry none.
func FromMap(m map[string]map[string]Entry, opts ...Option) (*Obj, error) {
	o := New(opts...)

	sectionNames := make([]string, 0, len(m))
	for name := range m {
		sectionNames = append(sectionNames, name)
	}
	sort.Strings(sectionNames)

	for _, name := range sectionNames {
		s := o.Section(name)
		keys := make([]string, 0, len(m[name]))
		for key := range m[name] {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			e := m[name][key]
			if err := s.Set(key, e.Type, e.Value); err != nil {
				return nil, fmt.Errorf("section %q: %w", name, err)
			}
		}
	}
	return o, nil
}

// Clone returns a deep copy of the container.
func (o *Obj) Clone() *Obj {
	out := New(WithRegistry(o.reg))
	for _, name := range o.names {
		out.names = append(out.names, name)
		out.sections[name] = o.sections[name].Clone()
	}
	return out
}

// Equal reports whether two containers hold equal sections in the
// same order.
func (o *Obj) Equal(other *Obj) bool {
	if len(o.names) != len(other.names) {
		return false
	}
	for i, name := range o.names {
		if other.names[i] != name {
			return false
		}
		if !o.sections[name].Equal(other.sections[name]) {
			return false
		}
	}
	return true
}

// tempFileName builds a unique sibling path for the atomic save.
func tempFileName(target string) (string, error) {
	random := make([]byte, 8)
	if _, err := rand.Read(random); err != nil {
		return "", err
	}
	dir, base := filepath.Split(target)
	return dir + "." + base + ".tmp." + hex.EncodeToString(random), nil
}
