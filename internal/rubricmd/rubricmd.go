// Package rubricmd parses markdown rubrics into the YAML rubric format
// consumed by the validator.
//
// The markdown layout is the one faculty author by hand: a header block
// of "**Key**: value" lines, then one "## Criterion N: Name (W%)"
// section per criterion with an optional performance-levels table,
// keywords, and common issues.
package rubricmd

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/eykd/rubriclint-go/internal/ident"
)

// Rubric is the converted document, marshalled field-for-field into
// rubric.yml.
type Rubric struct {
	Assignment Assignment  `yaml:"assignment"`
	Criteria   []Criterion `yaml:"criteria"`
}

// Assignment holds the rubric header metadata.
type Assignment struct {
	Name        string `yaml:"name"`
	Course      string `yaml:"course"`
	Type        string `yaml:"type,omitempty"`
	TotalPoints int    `yaml:"total_points"`
}

// Criterion is one gradable dimension.
type Criterion struct {
	ID           string   `yaml:"id"`
	Name         string   `yaml:"name"`
	Weight       int      `yaml:"weight"`
	Description  string   `yaml:"description,omitempty"`
	Levels       []Level  `yaml:"levels,omitempty"`
	Keywords     []string `yaml:"keywords,omitempty"`
	CommonIssues []string `yaml:"common_issues,omitempty"`
}

// Level is a named point-range band within a criterion.
type Level struct {
	Name        string `yaml:"name"`
	PointRange  []int  `yaml:"point_range,flow"`
	Description string `yaml:"description,omitempty"`
}

var (
	headerRe   = regexp.MustCompile(`\*\*(.+?)\*\*:\s*(.+)`)
	headingRe  = regexp.MustCompile(`##\s+Criterion\s+\d+:\s+(.+?)\s+\((\d+)%\)`)
	levelRowRe = regexp.MustCompile(`\|\s*\*\*(.+?)\*\*\s*\|\s*(\d+)-(\d+)\s*\|\s*(.+?)\s*\|`)
	bulletRe   = regexp.MustCompile(`-\s+(.+)`)
)

// Parse converts markdown rubric content into a Rubric. It fails only
// when no criteria sections are found; per-field validation is the
// validator's job, not the converter's.
func Parse(content string) (*Rubric, error) {
	rubric := &Rubric{}

	for _, line := range strings.Split(content, "\n") {
		m := headerRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		value := strings.TrimSpace(m[2])
		switch strings.ToLower(m[1]) {
		case "course":
			rubric.Assignment.Course = value
		case "assignment":
			rubric.Assignment.Name = value
		case "type":
			rubric.Assignment.Type = value
		case "total points":
			rubric.Assignment.TotalPoints, _ = strconv.Atoi(value)
		}
	}

	// Slice the document into per-criterion sections by heading position:
	// each body runs from its heading to the next heading or EOF.
	headings := headingRe.FindAllStringSubmatchIndex(content, -1)
	for i, loc := range headings {
		name := strings.TrimSpace(content[loc[2]:loc[3]])
		weight, _ := strconv.Atoi(content[loc[4]:loc[5]])

		bodyEnd := len(content)
		if i+1 < len(headings) {
			bodyEnd = headings[i+1][0]
		}
		body := content[loc[1]:bodyEnd]

		criterion := Criterion{
			ID:          ident.ID(name),
			Name:        name,
			Weight:      weight,
			Description: parseDescription(body),
			Levels:      parseLevels(body),
		}
		criterion.Keywords = parseKeywords(body)
		criterion.CommonIssues = parseSectionBullets(body, "Common Issues")

		rubric.Criteria = append(rubric.Criteria, criterion)
	}

	if len(rubric.Criteria) == 0 {
		return nil, fmt.Errorf("no criterion sections found (expected '## Criterion N: Name (W%%)' headings)")
	}

	return rubric, nil
}

// parseDescription returns the free text between the criterion heading
// and its first subsection.
func parseDescription(body string) string {
	end := strings.Index(body, "###")
	if end >= 0 {
		body = body[:end]
	}
	return strings.Trim(strings.TrimSpace(body), "-\n ")
}

// parseLevels extracts the performance-level table rows.
func parseLevels(body string) []Level {
	var levels []Level
	for _, row := range levelRowRe.FindAllStringSubmatch(body, -1) {
		min, _ := strconv.Atoi(row[2])
		max, _ := strconv.Atoi(row[3])
		levels = append(levels, Level{
			Name:        strings.TrimSpace(row[1]),
			PointRange:  []int{min, max},
			Description: strings.TrimSpace(row[4]),
		})
	}
	return levels
}

// parseKeywords extracts the comma-separated "### Keywords" section.
func parseKeywords(body string) []string {
	section := extractSection(body, "Keywords")
	if section == "" {
		return nil
	}
	var keywords []string
	for _, k := range strings.Split(section, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keywords = append(keywords, k)
		}
	}
	return keywords
}

// parseSectionBullets extracts the bullet items of a "### <title>" section.
func parseSectionBullets(body, title string) []string {
	section := extractSection(body, title)
	if section == "" {
		return nil
	}
	var items []string
	for _, m := range bulletRe.FindAllStringSubmatch(section, -1) {
		items = append(items, strings.TrimSpace(m[1]))
	}
	return items
}

// extractSection returns the text of a "### <title>" section up to the
// next subsection or horizontal rule.
func extractSection(body, title string) string {
	re := regexp.MustCompile(`(?s)###\s+` + regexp.QuoteMeta(title) + `\s*\n(.*?)(?:\n###|\n---|\z)`)
	m := re.FindStringSubmatch(body)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// Render marshals the rubric to YAML with a generated-file header so
// hand edits go to the markdown source instead.
func Render(rubric *Rubric) (string, error) {
	data, err := yaml.Marshal(rubric)
	if err != nil {
		return "", fmt.Errorf("marshalling rubric: %w", err)
	}
	header := fmt.Sprintf("# %s - %s Rubric\n# Generated from Markdown. Edit the .md file and regenerate.\n\n",
		rubric.Assignment.Course, rubric.Assignment.Name)
	return header + string(data), nil
}
