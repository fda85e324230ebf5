package schema

import (
	"fmt"
	"strconv"

	"github.com/eykd/rubriclint-go/internal/artifact"
	"github.com/eykd/rubriclint-go/internal/yamltree"
)

// ExpectedWeightSum is the conventional total of criterion weights.
const ExpectedWeightSum = 100

// criterionRequiredFields must all be present on every criterion.
var criterionRequiredFields = []string{"id", "name", "weight", "description"}

// ValidateRubric checks rubric.yml for the assignment triplet, the
// criteria sequence, and the cross-field invariants between criteria.
// Findings are appended in check order, first detected first.
func ValidateRubric(tree yamltree.Tree) []artifact.Finding {
	var findings []artifact.Finding

	if yamltree.IsEmpty(tree) {
		return append(findings, artifact.Error(artifact.ClassSchema,
			"file is empty or contains only comments"))
	}

	findings = append(findings, validateAssignment(tree)...)
	findings = append(findings, validateCriteria(tree)...)

	return findings
}

// validateAssignment checks the assignment.{name,course,total_points}
// triplet. Each missing or invalid sub-field is its own error.
func validateAssignment(tree yamltree.Tree) []artifact.Finding {
	var findings []artifact.Finding

	value, ok := yamltree.Get(tree, "assignment")
	if !ok {
		return append(findings, artifact.Error(artifact.ClassSchema,
			"'assignment' section is required but missing"))
	}
	assignment, isMapping := yamltree.AsMapping(value)
	if !isMapping {
		return append(findings, artifact.Error(artifact.ClassSchema,
			"'assignment' must be a mapping"))
	}

	for _, field := range []string{"name", "course"} {
		if _, present := assignment[field]; !present {
			findings = append(findings, artifact.Error(artifact.ClassSchema,
				fmt.Sprintf("'assignment.%s' is required but missing", field)))
		}
	}

	total, present := assignment["total_points"]
	if !present {
		findings = append(findings, artifact.Error(artifact.ClassSchema,
			"'assignment.total_points' is required but missing"))
	} else if n, isNumber := yamltree.AsNumber(total); !isNumber || n <= 0 {
		findings = append(findings, artifact.Error(artifact.ClassSemantic,
			fmt.Sprintf("'assignment.total_points' must be a positive number, got: %v", total)))
	}

	return findings
}

// validateCriteria checks the criteria sequence: per-criterion required
// fields, id uniqueness, weight positivity, performance levels, and the
// weight sum invariant.
func validateCriteria(tree yamltree.Tree) []artifact.Finding {
	var findings []artifact.Finding

	value, ok := yamltree.Get(tree, "criteria")
	if !ok {
		return append(findings, artifact.Error(artifact.ClassSchema,
			"'criteria' list is required but missing"))
	}
	criteria, isSequence := yamltree.AsSequence(value)
	if !isSequence {
		return append(findings, artifact.Error(artifact.ClassSchema,
			"'criteria' must be a list"))
	}
	if len(criteria) == 0 {
		return append(findings, artifact.Error(artifact.ClassSchema,
			"'criteria' list is empty, at least one criterion is required"))
	}

	totalWeight := 0.0
	seenIDs := map[string]bool{}

	for i, entry := range criteria {
		index := i + 1
		criterion, isMapping := yamltree.AsMapping(entry)
		if !isMapping {
			findings = append(findings, artifact.Error(artifact.ClassSchema,
				fmt.Sprintf("Criterion %d must be a mapping", index)))
			continue
		}

		for _, field := range criterionRequiredFields {
			if _, present := criterion[field]; !present {
				findings = append(findings, artifact.Error(artifact.ClassSchema,
					fmt.Sprintf("Criterion %d: '%s' is required but missing", index, field)))
			}
		}

		// Every repeat occurrence of an id is its own error; the first
		// occurrence stays valid.
		if id, present := criterion["id"]; present {
			idStr := fmt.Sprintf("%v", id)
			if seenIDs[idStr] {
				findings = append(findings, artifact.Error(artifact.ClassSemantic,
					fmt.Sprintf("Criterion %d: duplicate id '%s'", index, idStr)))
			}
			seenIDs[idStr] = true
		}

		if weight, present := criterion["weight"]; present {
			if n, isNumber := yamltree.AsNumber(weight); !isNumber || n <= 0 {
				findings = append(findings, artifact.Error(artifact.ClassSemantic,
					fmt.Sprintf("Criterion %d (%s): 'weight' must be a positive number, got: %v",
						index, criterionName(criterion), weight)))
			} else {
				totalWeight += n
			}
		}

		findings = append(findings, validateLevels(criterion, index)...)
	}

	// Exact comparison: any nonzero deviation warns. Weights that do not
	// sum to 100 may be intentional, so this never escalates to an error.
	if totalWeight != ExpectedWeightSum {
		findings = append(findings, artifact.Warning(artifact.ClassSemantic,
			fmt.Sprintf("Criterion weights sum to %s, expected %d. This may be intentional, but typically weights should sum to 100%%.",
				formatNumber(totalWeight), ExpectedWeightSum)))
	}

	return findings
}

// validateLevels checks a criterion's optional performance levels: each
// level needs a name, and a point_range must be a [min, max] pair of
// numbers with min <= max.
func validateLevels(criterion map[string]any, index int) []artifact.Finding {
	var findings []artifact.Finding

	value, present := criterion["levels"]
	if !present {
		return append(findings, artifact.Warning(artifact.ClassSchema,
			fmt.Sprintf("Criterion %d (%s): 'levels' section is missing (recommended)",
				index, criterionName(criterion))))
	}

	levels, isSequence := yamltree.AsSequence(value)
	if !isSequence {
		return append(findings, artifact.Error(artifact.ClassSchema,
			fmt.Sprintf("Criterion %d (%s): 'levels' must be a list",
				index, criterionName(criterion))))
	}

	for _, entry := range levels {
		level, isMapping := yamltree.AsMapping(entry)
		if !isMapping {
			findings = append(findings, artifact.Error(artifact.ClassSchema,
				fmt.Sprintf("Criterion %d (%s): each level must be a mapping",
					index, criterionName(criterion))))
			continue
		}

		name, _ := yamltree.AsString(level["name"])
		if name == "" {
			findings = append(findings, artifact.Error(artifact.ClassSchema,
				fmt.Sprintf("Criterion %d (%s): level is missing a 'name'",
					index, criterionName(criterion))))
			name = "?"
		}

		rangeValue, hasRange := level["point_range"]
		if !hasRange {
			continue
		}
		pair, isSeq := yamltree.AsSequence(rangeValue)
		if !isSeq || len(pair) != 2 {
			findings = append(findings, artifact.Error(artifact.ClassSchema,
				fmt.Sprintf("Criterion %d (%s), level '%s': 'point_range' must be a list of 2 numbers [min, max]",
					index, criterionName(criterion), name)))
			continue
		}
		min, minOK := yamltree.AsNumber(pair[0])
		max, maxOK := yamltree.AsNumber(pair[1])
		if !minOK || !maxOK {
			findings = append(findings, artifact.Error(artifact.ClassSchema,
				fmt.Sprintf("Criterion %d (%s), level '%s': 'point_range' must be a list of 2 numbers [min, max]",
					index, criterionName(criterion), name)))
			continue
		}
		if min > max {
			findings = append(findings, artifact.Error(artifact.ClassSemantic,
				fmt.Sprintf("Criterion %d (%s), level '%s': point_range min (%s) > max (%s)",
					index, criterionName(criterion), name, formatNumber(min), formatNumber(max))))
		}
	}

	return findings
}

// criterionName returns the criterion's name for messages, or "?" when
// the name itself is missing.
func criterionName(criterion map[string]any) string {
	if name, ok := yamltree.AsString(criterion["name"]); ok && name != "" {
		return name
	}
	return "?"
}

// formatNumber renders a number without a trailing ".0" for whole values.
func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
