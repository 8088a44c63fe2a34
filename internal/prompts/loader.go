// Package prompts provides a loader for externalized LLM prompt templates.
// Templates are plain-text files with {field}-style placeholders, read from
// a prompts directory at pipeline construction time.
package prompts

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Template file names expected under the prompts directory.
const (
	StoryGeneration      = "story_generation.txt"
	StoryCritique        = "story_critique.txt"
	ScreenplayGeneration = "screenplay_generation.txt"
	ScreenplayCritique   = "screenplay_critique.txt"
)

// Load reads a template file from dir.
// A missing file is a configuration error, not a recoverable condition.
func Load(dir, filename string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, filename))
	if err != nil {
		return "", fmt.Errorf("failed to read prompt template %s: %w", filename, err)
	}
	return string(data), nil
}

// MustLoad reads a template file from dir, panicking if it is absent.
// Use this for prompts that are required at initialization time.
func MustLoad(dir, filename string) string {
	template, err := Load(dir, filename)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return template
}

// Format replaces template placeholders in the form {key} with values from
// data. Substitution is literal find-and-replace: placeholders without a
// matching key are left verbatim.
func Format(template string, data map[string]string) string {
	result := template
	for key, value := range data {
		placeholder := fmt.Sprintf("{%s}", key)
		result = strings.ReplaceAll(result, placeholder, value)
	}
	return result
}
