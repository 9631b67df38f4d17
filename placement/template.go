package placement

import (
	"regexp"
	"strconv"
	"strings"

	"bac_exam_platform/models"
)

var slotMarker = regexp.MustCompile(`\[(\d+)\]`)

// SlotNumbers returns the N of every [N] marker in template order,
// duplicates included.
func SlotNumbers(template string) []int {
	matches := slotMarker.FindAllStringSubmatch(template, -1)
	slots := make([]int, 0, len(matches))
	for _, m := range matches {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		slots = append(slots, n)
	}
	return slots
}

// DistinctSlots returns each slot number once, in order of first appearance.
func DistinctSlots(template string) []int {
	seen := make(map[int]bool)
	var slots []int
	for _, n := range SlotNumbers(template) {
		if seen[n] {
			continue
		}
		seen[n] = true
		slots = append(slots, n)
	}
	return slots
}

// Expected pairs the i-th marker of the template with words[i]. Markers
// beyond the word list have no expected word.
func Expected(template string, words []string) map[int]string {
	expected := make(map[int]string)
	for i, n := range SlotNumbers(template) {
		if i >= len(words) {
			break
		}
		if _, ok := expected[n]; !ok {
			expected[n] = words[i]
		}
	}
	return expected
}

// Filled reports whether every marker of the template has a word.
func Filled(template string, slots models.SlotAnswer) bool {
	for _, n := range SlotNumbers(template) {
		if _, ok := slots[n]; !ok {
			return false
		}
	}
	return true
}

// Fill substitutes placed words into the template. Unfilled markers are
// left as they are.
func Fill(template string, slots models.SlotAnswer) string {
	return slotMarker.ReplaceAllStringFunc(template, func(marker string) string {
		n, err := strconv.Atoi(strings.Trim(marker, "[]"))
		if err != nil {
			return marker
		}
		if word, ok := slots[n]; ok {
			return word
		}
		return marker
	})
}

// Segment is one piece of a template laid out for display.
type Segment struct {
	Text   string `json:"text,omitempty"`
	IsSlot bool   `json:"isSlot,omitempty"`
	Slot   int    `json:"slot,omitempty"`
	Word   string `json:"word,omitempty"`
}

// Segments splits a template into literal text and slots.
func Segments(template string, slots models.SlotAnswer) []Segment {
	var segments []Segment
	last := 0
	for _, loc := range slotMarker.FindAllStringSubmatchIndex(template, -1) {
		if loc[0] > last {
			segments = append(segments, Segment{Text: template[last:loc[0]]})
		}
		n, _ := strconv.Atoi(template[loc[2]:loc[3]])
		segments = append(segments, Segment{IsSlot: true, Slot: n, Word: slots[n]})
		last = loc[1]
	}
	if last < len(template) {
		segments = append(segments, Segment{Text: template[last:]})
	}
	return segments
}
