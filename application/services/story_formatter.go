package services

import (
	"sort"
	"strings"

	"github.com/eman0056/dream-to-story-app/domain"
)

var sectionLabels = []string{"MOOD:", "STORY:", "MORAL:"}

type labelMatch struct {
	label string
	start int
	end   int
}

// ParseStoryResult splits a raw model response into mood, story and moral.
// Labels are matched case-insensitively, the first occurrence of each label
// wins and a section runs until the next label or the end of the text. Any
// subset of labels may be present. When no label is found at all the whole
// raw text is returned as the story.
func ParseStoryResult(raw string) domain.StoryResult {
	upper := strings.ToUpper(raw)

	matches := make([]labelMatch, 0, len(sectionLabels))
	for _, label := range sectionLabels {
		idx := strings.Index(upper, label)
		if idx < 0 {
			continue
		}
		matches = append(matches, labelMatch{
			label: label,
			start: idx,
			end:   idx + len(label),
		})
	}

	if len(matches) == 0 {
		return domain.StoryResult{Story: raw}
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].start < matches[j].start
	})

	var result domain.StoryResult
	for i, match := range matches {
		sectionEnd := len(raw)
		if i+1 < len(matches) {
			sectionEnd = matches[i+1].start
		}
		section := strings.TrimSpace(raw[match.end:sectionEnd])

		switch match.label {
		case "MOOD:":
			result.Mood = section
		case "STORY:":
			result.Story = section
		case "MORAL:":
			result.Moral = section
		}
	}

	return result
}
