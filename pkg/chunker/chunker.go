// Package chunker splits report text into pieces that fit a message size limit.
// Lengths are counted in runes.
package chunker

import (
	"strings"
	"unicode/utf8"
)

// Split cuts text into chunks of at most limit runes. Text is split on blank
// lines into sections; the first line of a section is its title and is
// repeated at the top of every chunk cut from that section. A section with no
// entries gets placeholder as its only entry.
func Split(text string, limit int, placeholder string) []string {
	if limit <= 0 || runeLen(text) <= limit {
		return []string{text}
	}

	sections := sectionsOf(text)
	if len(sections) == 0 {
		return SplitLines(text, limit)
	}

	var chunks []string
	for _, section := range sections {
		chunks = append(chunks, splitSection(section, limit, placeholder)...)
	}
	if len(chunks) == 0 {
		return SplitLines(text, limit)
	}
	return chunks
}

// SplitLines packs whole lines greedily. A line longer than limit is cut into
// limit-sized slices.
func SplitLines(text string, limit int) []string {
	if limit <= 0 || runeLen(text) <= limit {
		return []string{text}
	}

	var chunks []string
	current := ""
	for _, line := range strings.Split(text, "\n") {
		candidate := line
		if current != "" {
			candidate = current + "\n" + line
		}
		if runeLen(candidate) <= limit {
			current = candidate
			continue
		}

		if current != "" {
			chunks = append(chunks, current)
			current = ""
		}
		if runeLen(line) <= limit {
			current = line
			continue
		}
		chunks = append(chunks, slice(line, limit)...)
	}
	if current != "" {
		chunks = append(chunks, current)
	}

	if len(chunks) == 0 {
		return []string{text}
	}
	return chunks
}

func splitSection(section []string, limit int, placeholder string) []string {
	title := section[0]
	entries := section[1:]
	if len(entries) == 0 {
		entries = []string{placeholder}
	}

	// No room for content next to the title.
	if runeLen(title)+2 > limit {
		return SplitLines(strings.Join(append([]string{title}, entries...), "\n"), limit)
	}

	var chunks []string
	current := []string{title}
	size := runeLen(title)

	for _, entry := range entries {
		entryLen := runeLen(entry)
		if size+1+entryLen <= limit {
			current = append(current, entry)
			size += 1 + entryLen
			continue
		}

		if len(current) > 1 {
			chunks = append(chunks, strings.Join(current, "\n"))
		}

		if runeLen(title)+1+entryLen <= limit {
			current = []string{title, entry}
			size = runeLen(title) + 1 + entryLen
			continue
		}

		room := limit - runeLen(title) - 1
		for _, part := range slice(entry, room) {
			chunks = append(chunks, title+"\n"+part)
		}
		current = []string{title}
		size = runeLen(title)
	}

	if len(current) > 1 {
		chunks = append(chunks, strings.Join(current, "\n"))
	}
	return chunks
}

// sectionsOf groups non-blank lines; blank lines separate groups.
func sectionsOf(text string) [][]string {
	var sections [][]string
	var current []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			if len(current) > 0 {
				sections = append(sections, current)
				current = nil
			}
			continue
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		sections = append(sections, current)
	}
	return sections
}

func slice(s string, size int) []string {
	if size < 1 {
		size = 1
	}
	runes := []rune(s)
	parts := make([]string, 0, len(runes)/size+1)
	for start := 0; start < len(runes); start += size {
		end := min(start+size, len(runes))
		parts = append(parts, string(runes[start:end]))
	}
	return parts
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
