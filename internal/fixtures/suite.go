// Package fixtures loads and runs suites of scoring expectations.
package fixtures

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"jscore/internal/jsparse"
)

// Suite is a named list of scoring cases.
type Suite struct {
	Name string `toml:"name" yaml:"name"`

	// Language applies to cases that do not set their own
	Language string `toml:"language" yaml:"language"`

	Cases []Case `toml:"cases" yaml:"cases"`

	// Path is the file the suite was loaded from
	Path string `toml:"-" yaml:"-"`
}

// Case is one source snippet and the score it must produce.
type Case struct {
	Name     string `toml:"name" yaml:"name"`
	Source   string `toml:"source" yaml:"source"`
	Language string `toml:"language" yaml:"language"`
	Want     int    `toml:"want" yaml:"want"`
}

// Load reads a suite from a .toml, .yaml or .yml file.
func Load(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read suite: %w", err)
	}

	var suite Suite
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		md, err := toml.Decode(string(data), &suite)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("parse %s: unknown key %q", path, undecoded[0].String())
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&suite); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported suite format %q", ext)
	}

	if suite.Name == "" {
		suite.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	suite.Path = path

	if err := suite.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &suite, nil
}

// Validate checks that every case is named uniquely and has a usable language.
func (s *Suite) Validate() error {
	if len(s.Cases) == 0 {
		return fmt.Errorf("suite %q has no cases", s.Name)
	}
	if s.Language != "" {
		if _, err := jsparse.ParseLanguage(s.Language); err != nil {
			return err
		}
	}

	seen := make(map[string]bool, len(s.Cases))
	for i, c := range s.Cases {
		if c.Name == "" {
			return fmt.Errorf("case %d has no name", i+1)
		}
		if seen[c.Name] {
			return fmt.Errorf("duplicate case name %q", c.Name)
		}
		seen[c.Name] = true

		if c.Language != "" {
			if _, err := jsparse.ParseLanguage(c.Language); err != nil {
				return fmt.Errorf("case %q: %w", c.Name, err)
			}
		}
	}
	return nil
}

// language resolves the language for c, defaulting to JavaScript.
func (s *Suite) language(c Case) jsparse.Language {
	name := c.Language
	if name == "" {
		name = s.Language
	}
	if name == "" {
		return jsparse.LangJavaScript
	}
	lang, err := jsparse.ParseLanguage(name)
	if err != nil {
		return jsparse.LangJavaScript
	}
	return lang
}
