package prompts

import (
	"fmt"
	"strings"

	"github.com/sant0-9/essaypolish/internal/essay"
)

const (
	intro        = "Please act as an expert English writing tutor specializing in Chinese high school education."
	analyzeLine  = "Analyze the following %s and provide detailed polishing suggestions:"
	focusHeader  = "\n【Focus Areas】"
	contentBlock = "\n【Content to Analyze】\n%s"
)

var outputRequirements = []string{
	"\n【Output Requirements】",
	"1. 修改建议 (中文)",
	"2. Revised version",
	"3. 修改说明 (英文)",
}

// focusAreas maps each essay type to the bullets for each of its options
var focusAreas = map[essay.Type]map[essay.Option]string{
	essay.Argumentative: {
		essay.Structure: "- Logical flow between paragraphs\n" +
			"- Thesis statement clarity",
		essay.Vocabulary: "- Academic vocabulary enhancement\n" +
			"- Proper collocations",
		essay.Grammar: "- Complex sentence structures\n" +
			"- Subject-verb agreement",
	},
	essay.Continuation: {
		essay.Coherence: "- Plot continuity with original story\n" +
			"- Character consistency",
		essay.Vividness: "- Sensory descriptions\n" +
			"- Dialogue naturalness",
		essay.Climax: "- Suspense building\n" +
			"- Meaningful ending",
	},
}

// FocusArea returns the bullet block for an option, or false if the
// option does not belong to the essay type
func FocusArea(t essay.Type, o essay.Option) (string, bool) {
	block, ok := focusAreas[t][o]
	return block, ok
}

// Build renders the polishing prompt for req.
// Options that don't belong to req.Type are skipped. Level is not used.
func Build(req essay.Request) (string, error) {
	table, ok := focusAreas[req.Type]
	if !ok {
		return "", fmt.Errorf("%w: %q", essay.ErrUnknownType, string(req.Type))
	}
	if !req.InputType.Valid() {
		return "", fmt.Errorf("%w: %d", essay.ErrUnknownInputType, int(req.InputType))
	}

	lines := []string{
		intro,
		fmt.Sprintf(analyzeLine, req.InputType.Label()),
		focusHeader,
	}

	for _, opt := range req.Options {
		if block, ok := table[opt]; ok {
			lines = append(lines, block)
		}
	}

	lines = append(lines, fmt.Sprintf(contentBlock, req.Content))
	lines = append(lines, outputRequirements...)

	return strings.Join(lines, "\n"), nil
}
