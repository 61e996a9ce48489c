// Package programs provides the built-in training program templates.
package programs

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/claude/ironpulse/internal/models"
	"github.com/claude/ironpulse/internal/normalize"
)

//go:embed templates.yaml
var templatesYAML []byte

// Catalog holds the built-in templates keyed by the mode that selects them.
type Catalog struct {
	byMode map[models.ProgramMode]models.Program
	order  []models.ProgramMode
}

// Builtin decodes and normalizes the embedded templates.
func Builtin() (*Catalog, error) {
	return Parse(templatesYAML)
}

// Parse decodes a YAML list of programs. Each program id must be a non-custom mode.
func Parse(data []byte) (*Catalog, error) {
	var raw []map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding templates: %w", err)
	}

	c := &Catalog{byMode: make(map[models.ProgramMode]models.Program, len(raw))}
	for i, r := range raw {
		p := normalize.Program(r, fmt.Sprintf("template-%d", i+1))
		mode := models.ProgramMode(p.ID)
		if !mode.Valid() || mode == models.ModeCustom {
			return nil, fmt.Errorf("template %q: id is not a built-in mode", p.ID)
		}
		if _, dup := c.byMode[mode]; dup {
			return nil, fmt.Errorf("template %q: duplicate id", p.ID)
		}
		c.byMode[mode] = p
		c.order = append(c.order, mode)
	}
	if _, ok := c.byMode[models.ModeThreeDay]; !ok {
		return nil, fmt.Errorf("templates: missing %q", models.ModeThreeDay)
	}
	return c, nil
}

// Get returns the template selected by mode.
func (c *Catalog) Get(mode models.ProgramMode) (models.Program, bool) {
	p, ok := c.byMode[mode]
	return p, ok
}

// All returns the templates in declaration order.
func (c *Catalog) All() []models.Program {
	out := make([]models.Program, 0, len(c.order))
	for _, m := range c.order {
		out = append(out, c.byMode[m])
	}
	return out
}

// Current resolves the program selected by mode, falling back to the first
// template when custom is selected without a stored program.
func (c *Catalog) Current(mode models.ProgramMode, custom *models.Program) models.Program {
	if mode == models.ModeCustom && custom != nil {
		return *custom
	}
	if p, ok := c.byMode[mode]; ok {
		return p
	}
	return c.byMode[models.ModeThreeDay]
}
