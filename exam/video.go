package exam

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseClock converts an "mm:ss" clip bound to seconds. Empty or
// malformed values yield 0.
func ParseClock(s string) int {
	minutes, seconds, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0
	}
	m, err := strconv.Atoi(minutes)
	if err != nil {
		return 0
	}
	sec, err := strconv.Atoi(seconds)
	if err != nil {
		return 0
	}
	return m*60 + sec
}

// VideoID extracts the YouTube id from youtu.be and watch?v= links.
func VideoID(url string) string {
	if _, rest, ok := strings.Cut(url, "youtu.be/"); ok {
		id, _, _ := strings.Cut(rest, "?")
		return id
	}
	if strings.Contains(url, "youtube.com/watch?v=") {
		_, rest, _ := strings.Cut(url, "v=")
		id, _, _ := strings.Cut(rest, "&")
		return id
	}
	return ""
}

// EmbedURL builds the player URL for a chapter video, starting at the
// given "mm:ss" offset when one is set.
func EmbedURL(url, start string) string {
	if url == "" {
		return ""
	}
	embed := fmt.Sprintf("https://www.youtube.com/embed/%s?autoplay=1&enablejsapi=1", VideoID(url))
	if start != "" {
		embed += fmt.Sprintf("&start=%d", ParseClock(start))
	}
	return embed
}

// Clip is the part of a chapter video that matches an exam extract.
type Clip struct {
	EmbedURL string `json:"embedUrl"`
	Start    int    `json:"start"`
	End      int    `json:"end"`
	Duration int    `json:"duration"`
}

func NewClip(url, start, end string) Clip {
	c := Clip{
		EmbedURL: EmbedURL(url, start),
		Start:    ParseClock(start),
		End:      ParseClock(end),
	}
	if c.End > c.Start {
		c.Duration = c.End - c.Start
	}
	return c
}
