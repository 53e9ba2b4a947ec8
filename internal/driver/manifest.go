package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Manifest is a file listing templates together with their argument types.
//
// TOML:
//
//	locale = "de"
//	[[template]]
//	name = "greeting"
//	text = "Hello, {}!"
//	args = ["string"]
//
// YAML uses the key "templates" for the list.
type Manifest struct {
	Path      string  `toml:"-" yaml:"-"`
	Locale    string  `toml:"locale" yaml:"locale"`
	Templates []Entry `toml:"template" yaml:"templates"`
}

// Entry is one template of a manifest.
type Entry struct {
	Name string   `toml:"name" yaml:"name"`
	Text string   `toml:"text" yaml:"text"`
	Args []string `toml:"args" yaml:"args"`
	// Values are sample arguments; when present the template is also
	// rendered.
	Values []string `toml:"values" yaml:"values"`
}

// Origin names the entry in diagnostics: "path:name" or "path#index".
func (m *Manifest) Origin(i int) string {
	e := m.Templates[i]
	if e.Name != "" {
		return m.Path + ":" + e.Name
	}
	return fmt.Sprintf("%s#%d", m.Path, i)
}

// Tag returns the manifest locale, language.Und when unset.
func (m *Manifest) Tag() (language.Tag, error) {
	if m.Locale == "" {
		return language.Und, nil
	}
	tag, err := language.Parse(m.Locale)
	if err != nil {
		return language.Und, fmt.Errorf("%s: locale %q: %w", m.Path, m.Locale, err)
	}
	return tag, nil
}

// LoadManifest reads a TOML or YAML manifest, chosen by extension.
// Unknown keys are an error in both formats.
func LoadManifest(path string) (*Manifest, error) {
	var (
		m   Manifest
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = loadTOML(path, &m)
	case ".yaml", ".yml":
		err = loadYAML(path, &m)
	default:
		return nil, fmt.Errorf("%s: unsupported manifest format (want .toml, .yaml or .yml)", path)
	}
	if err != nil {
		return nil, err
	}
	m.Path = path
	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

func loadTOML(path string, m *Manifest) error {
	meta, err := toml.DecodeFile(path, m)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

func loadYAML(path string, m *Manifest) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(m); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func (m *Manifest) validate() error {
	seen := make(map[string]int, len(m.Templates))
	for i, e := range m.Templates {
		if len(e.Values) > 0 && len(e.Values) != len(e.Args) {
			return fmt.Errorf("%s: %d values for %d args", m.Origin(i), len(e.Values), len(e.Args))
		}
		if e.Name == "" {
			continue
		}
		if prev, ok := seen[e.Name]; ok {
			return fmt.Errorf("%s: template %q defined twice (entries %d and %d)", m.Path, e.Name, prev, i)
		}
		seen[e.Name] = i
	}
	return nil
}
