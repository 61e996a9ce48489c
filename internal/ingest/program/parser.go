// Package program imports training programs from delimited text.
package program

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/claude/ironpulse/internal/models"
	"github.com/claude/ironpulse/internal/normalize"
)

// Imported program identity.
const (
	ProgramID   = "custom"
	ProgramName = "Programme importe"
)

// ImportError reports why a document could not be imported.
type ImportError struct {
	Cause string
}

func (e *ImportError) Error() string {
	return "import: " + e.Cause
}

// column synonyms, matched against folded header cells.
var columns = map[string][]string{
	"day":      {"jour", "day", "session", "seance"},
	"exercise": {"exercice", "exercise", "nom", "name"},
	"group":    {"groupe", "group", "muscle"},
	"warmup":   {"echauffement", "serieechauffement", "warmup"},
	"sets":     {"series", "sets"},
	"reps":     {"reps", "repetitions", "rep"},
	"rir":      {"rir"},
	"rest":     {"repos", "rest"},
	"notes":    {"notes", "commentaire", "comment"},
	"video":    {"video", "lienvideo"},
	"variants": {"variantes", "variantesexercice", "variations", "variants"},
}

var restLabel = regexp.MustCompile(`(?i)repos|rest`)

// header maps logical columns to cell positions; absent columns are -1.
type header map[string]int

func parseHeader(row []string) header {
	folded := make([]string, len(row))
	for i, c := range row {
		folded[i] = normalize.Header(c)
	}
	h := header{}
	for name, synonyms := range columns {
		h[name] = -1
		for i, f := range folded {
			if contains(synonyms, f) {
				h[name] = i
				break
			}
		}
	}
	return h
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func (h header) cell(row []string, name string) string {
	i := h[name]
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

type dayBuilder struct {
	id        string
	label     string
	rest      bool
	exercises []any
}

// Parse builds a program from delimited text. Rows are grouped into days by
// case-insensitive label in order of first appearance. A label that looks
// like a rest day stays rest only while no exercise row is attached to it.
func Parse(text string) (models.Program, error) {
	var rows [][]string
	for _, r := range splitRows(text) {
		if !blankRow(r) {
			rows = append(rows, r)
		}
	}
	if len(rows) < 2 {
		return models.Program{}, &ImportError{Cause: "document vide"}
	}

	h := parseHeader(rows[0])
	if h["day"] < 0 || h["exercise"] < 0 || h["group"] < 0 {
		return models.Program{}, &ImportError{Cause: "colonnes minimales manquantes: jour, exercice, groupe"}
	}

	var days []*dayBuilder
	byLabel := map[string]*dayBuilder{}
	for _, row := range rows[1:] {
		label := h.cell(row, "day")
		if label == "" {
			continue
		}
		key := strings.ToLower(label)
		d, ok := byLabel[key]
		if !ok {
			d = &dayBuilder{
				id:    fmt.Sprintf("custom-day-%d", len(days)+1),
				label: label,
				rest:  restLabel.MatchString(label),
			}
			byLabel[key] = d
			days = append(days, d)
		}

		name := h.cell(row, "exercise")
		if name == "" {
			continue
		}
		d.rest = false

		sets := any(h.cell(row, "sets"))
		if sets == "" {
			sets = 3
		}
		d.exercises = append(d.exercises, map[string]any{
			"id":       fmt.Sprintf("custom-%s-%d", d.id, len(d.exercises)+1),
			"name":     name,
			"group":    orDefault(h.cell(row, "group"), normalize.DefaultGroup),
			"warmup":   h.cell(row, "warmup"),
			"sets":     sets,
			"reps":     h.cell(row, "reps"),
			"rir":      h.cell(row, "rir"),
			"rest":     h.cell(row, "rest"),
			"notes":    h.cell(row, "notes"),
			"video":    h.cell(row, "video"),
			"variants": h.cell(row, "variants"),
		})
	}

	p := models.Program{ID: ProgramID, Name: ProgramName, Days: make([]models.Day, 0, len(days))}
	trainable := false
	for _, d := range days {
		day := normalize.Day(map[string]any{
			"id":        d.id,
			"label":     d.label,
			"isRestDay": d.rest || len(d.exercises) == 0,
			"exercises": d.exercises,
		})
		if !day.IsRestDay {
			trainable = true
		}
		p.Days = append(p.Days, day)
	}
	if !trainable {
		return models.Program{}, &ImportError{Cause: "aucune seance valide trouvee"}
	}
	return p, nil
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
