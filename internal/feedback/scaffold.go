package feedback

import (
	"context"

	"github.com/eykd/rubriclint-go/internal/artifact"
)

// configTemplate is the starter config.yml. It validates clean: both
// token limits are set and the model name is a recognized one.
const configTemplate = `# AI feedback system configuration
report_file: report.qmd
report_format: quarto

model:
  primary: gpt-4o

max_input_tokens: 8000
max_output_tokens: 2000
`

// rubricTemplate is the starter rubric.yml with weights summing to 100.
const rubricTemplate = `assignment:
  name: Example Assignment
  course: STAT 101
  total_points: 100

criteria:
  - id: analysis_quality
    name: Analysis Quality
    weight: 60
    description: Soundness of the statistical analysis and its interpretation.
    levels:
      - name: Exemplary
        point_range: [50, 60]
      - name: Satisfactory
        point_range: [30, 49]
      - name: Needs Improvement
        point_range: [0, 29]

  - id: communication
    name: Communication
    weight: 40
    description: Clarity and organization of the written report.
    levels:
      - name: Exemplary
        point_range: [35, 40]
      - name: Satisfactory
        point_range: [20, 34]
      - name: Needs Improvement
        point_range: [0, 19]
`

// guidanceTemplate is the starter guidance.md, long enough to clear the
// minimum-length recommendation.
const guidanceTemplate = `# Feedback Guidance

Describe here how the AI should grade this assignment: the tone to take,
the aspects of the report to emphasize, and any course-specific
conventions the feedback should respect. Concrete examples of good and
bad submissions help the model calibrate its comments.
`

// scaffoldFiles maps each artifact to its starter content, in the order
// they are written.
var scaffoldFiles = []struct {
	kind    artifact.Kind
	content string
}{
	{artifact.KindSystemConfig, configTemplate},
	{artifact.KindRubric, rubricTemplate},
	{artifact.KindGuidance, guidanceTemplate},
}

// ScaffoldResult holds the outcome of scaffolding a configuration
// directory.
type ScaffoldResult struct {
	Created []string
	Skipped []string
}

// Scaffold writes starter artifact files into the configuration
// directory, acquiring the advisory lock first. Existing files are left
// alone unless force is set.
func (s *Service) Scaffold(ctx context.Context, force bool) (*ScaffoldResult, error) {
	if err := s.locker.TryLock(ctx); err != nil {
		return nil, err
	}
	defer s.locker.Unlock()

	result := &ScaffoldResult{}
	for _, file := range scaffoldFiles {
		name := file.kind.Filename()
		if !force {
			exists, err := s.writer.FileExists(ctx, name)
			if err != nil {
				return nil, err
			}
			if exists {
				result.Skipped = append(result.Skipped, name)
				continue
			}
		}
		if err := s.writer.WriteFile(ctx, name, file.content); err != nil {
			return nil, err
		}
		result.Created = append(result.Created, name)
	}
	return result, nil
}
