// Package skills holds the closed vocabulary the engine ranks against:
// the canonical skill synonym table plus the keyword sets for seniority,
// role, domain, and education detection. The tables are immutable after
// Load and safe for concurrent reads.
package skills

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Entry maps a canonical skill token to its surface-form synonyms.
// Synonym order matters: expansion takes the first few.
type Entry struct {
	Canonical string   `yaml:"canonical"`
	Synonyms  []string `yaml:"synonyms"`
}

// KeywordSet is a named keyword group used for first-match-wins detection.
type KeywordSet struct {
	Name  string
	Terms []string
}

// EducationLevel grades an education keyword group.
type EducationLevel struct {
	Level   string
	Score   float64
	Aliases []string
}

// DomainProfile describes one professional domain by its vocabulary and
// typical technologies, used by the domain-relevance heuristic.
type DomainProfile struct {
	Name         string
	Keywords     []string
	Technologies []string
}

// Table is the process-wide read-only vocabulary. Entries keep declaration
// order so that intent extraction and expansion stay deterministic.
type Table struct {
	entries []Entry
	index   map[string]int
}

// Default returns the built-in table.
func Default() *Table {
	return newTable(defaultEntries)
}

// Load returns the built-in table, overlaid with entries from the given YAML
// file when path is non-empty. Overlay entries replace built-ins with the
// same canonical token and append otherwise.
func Load(path string) (*Table, error) {
	t := Default()
	if path == "" {
		return t, nil
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read synonyms file %s: %w", path, err)
	}

	var overlay struct {
		Synonyms []Entry `yaml:"synonyms"`
	}
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return nil, fmt.Errorf("parse synonyms file %s: %w", path, err)
	}

	for _, e := range overlay.Synonyms {
		if e.Canonical == "" {
			return nil, fmt.Errorf("synonyms file %s: entry without canonical token", path)
		}
		if i, ok := t.index[e.Canonical]; ok {
			t.entries[i] = e
		} else {
			t.index[e.Canonical] = len(t.entries)
			t.entries = append(t.entries, e)
		}
	}
	return t, nil
}

func newTable(entries []Entry) *Table {
	t := &Table{
		entries: make([]Entry, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	copy(t.entries, entries)
	for i, e := range t.entries {
		t.index[e.Canonical] = i
	}
	return t
}

// Entries returns the entries in declaration order.
func (t *Table) Entries() []Entry { return t.entries }

// Synonyms returns the synonym set for a canonical token, or nil.
func (t *Table) Synonyms(canonical string) []string {
	if i, ok := t.index[canonical]; ok {
		return t.entries[i].Synonyms
	}
	return nil
}

// MatchCanonical returns, in table order, every canonical skill whose
// canonical token or synonym set intersects the given token set.
func (t *Table) MatchCanonical(tokens map[string]struct{}) []string {
	var matched []string
	for _, e := range t.entries {
		if _, ok := tokens[e.Canonical]; ok {
			matched = append(matched, e.Canonical)
			continue
		}
		for _, syn := range e.Synonyms {
			if _, ok := tokens[syn]; ok {
				matched = append(matched, e.Canonical)
				break
			}
		}
	}
	return matched
}

// Seniorities returns the seniority keyword sets, most specific first.
func Seniorities() []KeywordSet { return seniorityKeywords }

// Domains returns the domain keyword sets, first match wins.
func Domains() []KeywordSet { return domainKeywords }

// Roles returns the role-type keyword sets, first match wins.
func Roles() []KeywordSet { return roleKeywords }

// EducationLevels returns the education grading table, highest level first.
func EducationLevels() []EducationLevel { return educationLevels }

// DomainProfiles returns the domain relevance profiles.
func DomainProfiles() []DomainProfile { return domainProfiles }
