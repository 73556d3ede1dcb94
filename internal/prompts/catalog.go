package prompts

import (
	"embed"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"prepcoach/coach/internal/utils"
)

// DefaultCategory is the fallback for empty or unrecognized category tags.
const DefaultCategory = "General"

// embeds all .yaml files in the templates folder into the binary at compile time
//
//go:embed templates/*.yaml
var templateFS embed.FS

// Catalog is an immutable mapping from interview category to the system
// prompt used for that interviewer persona. Loaded once at startup,
// read-only afterwards, safe for concurrent use.
type Catalog struct {
	entries map[string]catalogEntry // normalized name -> entry
}

type catalogEntry struct {
	Name   string
	Prompt string
}

// on-disk template schema
type promptTemplate struct {
	Name         string `yaml:"name"`
	SystemPrompt string `yaml:"system_prompt"`
}

// NewCatalog loads every embedded template and verifies the fallback exists.
func NewCatalog() (*Catalog, error) {
	c := &Catalog{entries: make(map[string]catalogEntry)}

	if err := c.loadTemplates(); err != nil {
		return nil, fmt.Errorf("failed to load prompt templates: %w", err)
	}

	if _, ok := c.entries[utils.NormalizeCategory(DefaultCategory)]; !ok {
		return nil, fmt.Errorf("catalog is missing the %s fallback template", DefaultCategory)
	}

	return c, nil
}

// Lookup resolves a category tag to its system prompt. It is a total
// function: empty or unrecognized tags resolve to the General prompt.
func (c *Catalog) Lookup(category string) string {
	if entry, ok := c.entries[utils.NormalizeCategory(category)]; ok {
		return entry.Prompt
	}
	return c.entries[utils.NormalizeCategory(DefaultCategory)].Prompt
}

// Canonical returns the canonical spelling of a category tag, falling back
// to General for unknown input.
func (c *Catalog) Canonical(category string) string {
	if entry, ok := c.entries[utils.NormalizeCategory(category)]; ok {
		return entry.Name
	}
	return DefaultCategory
}

// Categories lists the canonical category names, General first.
func (c *Catalog) Categories() []string {
	names := make([]string, 0, len(c.entries))
	for _, entry := range c.entries {
		if entry.Name == DefaultCategory {
			continue
		}
		names = append(names, entry.Name)
	}
	sort.Strings(names)
	return append([]string{DefaultCategory}, names...)
}

// Templates exposes the loaded entry count for readiness checks.
func (c *Catalog) Templates() int {
	return len(c.entries)
}

func (c *Catalog) loadTemplates() error {
	files, err := templateFS.ReadDir("templates")
	if err != nil {
		return fmt.Errorf("failed to read templates directory: %w", err)
	}

	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".yaml") {
			continue
		}

		data, err := templateFS.ReadFile("templates/" + file.Name())
		if err != nil {
			return fmt.Errorf("failed to read template file %s: %w", file.Name(), err)
		}

		var tmpl promptTemplate
		if err := yaml.Unmarshal(data, &tmpl); err != nil {
			return fmt.Errorf("failed to parse template file %s: %w", file.Name(), err)
		}

		if tmpl.Name == "" || strings.TrimSpace(tmpl.SystemPrompt) == "" {
			return fmt.Errorf("template file %s must set name and system_prompt", file.Name())
		}

		c.entries[utils.NormalizeCategory(tmpl.Name)] = catalogEntry{
			Name:   tmpl.Name,
			Prompt: strings.TrimSpace(tmpl.SystemPrompt),
		}
	}

	return nil
}
