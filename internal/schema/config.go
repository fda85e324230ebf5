// Package schema validates the parsed artifact documents against their
// declared field schemas and cross-field invariants.
package schema

import (
	"fmt"
	"strings"

	"github.com/eykd/rubriclint-go/internal/artifact"
	"github.com/eykd/rubriclint-go/internal/yamltree"
)

// KnownModels lists the model names the validator can vouch for. An
// unknown name is only unverified, not wrong, so it warns rather than
// errors.
var KnownModels = []string{
	"gpt-4o",
	"gpt-4o-mini",
	"gpt-5",
	"gpt-5.2",
	"o1",
	"o1-mini",
	"o1-preview",
	"o3",
	"o4-mini",
	"llama-3.1-405b-instruct",
	"llama-3.2-11b",
	"llama-3.2-90b",
	"phi-4",
	"phi-3.5-vision",
	"mistral-large",
	"mistral-large-2",
	"mistral-medium-2505",
	"deepseek-r1",
	"deepseek-r1-0528",
	"grok-2",
	"grok-3",
	"grok-3-mini",
}

// KnownFormats lists the recognized report formats.
var KnownFormats = []string{"quarto", "markdown", "jupyter", "latex", "html"}

// KnownTruncationStrategies lists the recognized truncation strategies.
var KnownTruncationStrategies = []string{"smart", "head", "tail"}

// tokenLimitFields are optional-but-recommended positive integer fields.
var tokenLimitFields = []string{"max_input_tokens", "max_output_tokens"}

// timeoutFields must be positive numbers when present.
var timeoutFields = []string{"request_timeout", "workflow_timeout"}

// featureFlags must be booleans when present.
var featureFlags = []string{
	"enable_code_analysis",
	"enable_figure_checking",
	"enable_citation_checking",
	"enable_section_checking",
}

// debugFlags are the boolean fields allowed under debug_mode.
var debugFlags = []string{
	"enabled",
	"save_prompts",
	"save_responses",
	"save_context",
	"save_api_metadata",
	"prettify_json",
	"upload_artifacts",
}

// isKnown reports whether name appears in the known list.
func isKnown(name string, known []string) bool {
	for _, k := range known {
		if k == name {
			return true
		}
	}
	return false
}

// ValidateSystemConfig checks config.yml for required fields, field
// types, and recommended settings. Findings are appended in check
// order, first detected first.
func ValidateSystemConfig(tree yamltree.Tree) []artifact.Finding {
	var findings []artifact.Finding

	if yamltree.IsEmpty(tree) {
		return append(findings, artifact.Error(artifact.ClassSchema,
			"file is empty or contains only comments"))
	}

	// report_file is the old spelling, report.filename the new one.
	// Either satisfies the requirement; report_file wins when both exist.
	if value, path, ok := yamltree.FirstOf(tree, "report_file", "report.filename"); !ok {
		findings = append(findings, artifact.Error(artifact.ClassSchema,
			"'report_file' or 'report.filename' is required but missing"))
	} else if _, isString := yamltree.AsString(value); !isString {
		findings = append(findings, artifact.Error(artifact.ClassSchema,
			fmt.Sprintf("'%s' must be a string, got: %v", path, value)))
	}

	findings = append(findings, validateModelSection(tree)...)

	for _, field := range tokenLimitFields {
		value, ok := yamltree.Get(tree, field)
		if !ok {
			findings = append(findings, artifact.Warning(artifact.ClassSchema,
				fmt.Sprintf("'%s' is not set, consider adding it for better control over token usage", field)))
			continue
		}
		if n, isInt := yamltree.AsInt(value); !isInt || n <= 0 {
			findings = append(findings, artifact.Error(artifact.ClassSchema,
				fmt.Sprintf("'%s' must be a positive integer, got: %v", field, value)))
		}
	}

	if value, ok := yamltree.Get(tree, "report_format"); ok {
		if format, isString := yamltree.AsString(value); !isString || !isKnown(format, KnownFormats) {
			findings = append(findings, artifact.Warning(artifact.ClassSchema,
				fmt.Sprintf("'report_format' uses unknown format '%v', known formats: %s",
					value, strings.Join(KnownFormats, ", "))))
		}
	}

	if value, ok := yamltree.Get(tree, "truncation_strategy"); ok {
		if strategy, isString := yamltree.AsString(value); !isString || !isKnown(strategy, KnownTruncationStrategies) {
			findings = append(findings, artifact.Warning(artifact.ClassSchema,
				fmt.Sprintf("'truncation_strategy' uses unknown strategy '%v', known strategies: %s",
					value, strings.Join(KnownTruncationStrategies, ", "))))
		}
	}

	for _, field := range timeoutFields {
		value, ok := yamltree.Get(tree, field)
		if !ok {
			continue
		}
		if n, isNumber := yamltree.AsNumber(value); !isNumber || n <= 0 {
			findings = append(findings, artifact.Error(artifact.ClassSchema,
				fmt.Sprintf("'%s' must be a positive number, got: %v", field, value)))
		}
	}

	for _, flag := range featureFlags {
		value, ok := yamltree.Get(tree, flag)
		if !ok {
			continue
		}
		if _, isBool := yamltree.AsBool(value); !isBool {
			findings = append(findings, artifact.Error(artifact.ClassSchema,
				fmt.Sprintf("'%s' must be a boolean (true/false), got: %v", flag, value)))
		}
	}

	findings = append(findings, validateDebugMode(tree)...)

	return findings
}

// validateModelSection checks the model mapping and its primary and
// fallback model names.
func validateModelSection(tree yamltree.Tree) []artifact.Finding {
	var findings []artifact.Finding

	value, ok := yamltree.Get(tree, "model")
	if !ok {
		return append(findings, artifact.Error(artifact.ClassSchema,
			"'model' section is required and must be a mapping"))
	}
	if _, isMapping := yamltree.AsMapping(value); !isMapping {
		return append(findings, artifact.Error(artifact.ClassSchema,
			"'model' section is required and must be a mapping"))
	}

	primary, ok := yamltree.Get(tree, "model.primary")
	if !ok {
		findings = append(findings, artifact.Error(artifact.ClassSchema,
			"'model.primary' is required but missing"))
	} else if name, isString := yamltree.AsString(primary); !isString {
		findings = append(findings, artifact.Error(artifact.ClassSchema,
			fmt.Sprintf("'model.primary' must be a string, got: %v", primary)))
	} else if !isKnown(name, KnownModels) {
		findings = append(findings, artifact.Warning(artifact.ClassSchema,
			fmt.Sprintf("'model.primary' uses unknown model '%s', known models: %s... (this may be fine if new models were added)",
				name, strings.Join(KnownModels[:5], ", "))))
	}

	if fallback, ok := yamltree.Get(tree, "model.fallback"); ok {
		if name, isString := yamltree.AsString(fallback); !isString || !isKnown(name, KnownModels) {
			findings = append(findings, artifact.Warning(artifact.ClassSchema,
				fmt.Sprintf("'model.fallback' uses unknown model '%v'", fallback)))
		}
	}

	return findings
}

// validateDebugMode checks the optional debug_mode mapping and its
// boolean flags, warning when upload_artifacts is enabled because the
// artifacts contain report content and grading prompts.
func validateDebugMode(tree yamltree.Tree) []artifact.Finding {
	var findings []artifact.Finding

	value, ok := yamltree.Get(tree, "debug_mode")
	if !ok {
		return nil
	}

	debug, isMapping := yamltree.AsMapping(value)
	if !isMapping {
		return append(findings, artifact.Error(artifact.ClassSchema,
			"'debug_mode' must be a mapping"))
	}

	for _, flag := range debugFlags {
		flagValue, present := debug[flag]
		if !present {
			continue
		}
		if _, isBool := yamltree.AsBool(flagValue); !isBool {
			findings = append(findings, artifact.Error(artifact.ClassSchema,
				fmt.Sprintf("'debug_mode.%s' must be a boolean, got: %v", flag, flagValue)))
		}
	}

	if enabled, isBool := yamltree.AsBool(debug["upload_artifacts"]); isBool && enabled {
		findings = append(findings, artifact.Warning(artifact.ClassSchema,
			"'debug_mode.upload_artifacts' is enabled: artifacts will contain student report content and grading prompts, only use in instructor-controlled repos"))
	}

	return findings
}
