// Package tags provides unified tag reading for music files.
// It consolidates metadata handling across the audio container formats the
// organizer accepts, with per-format fallbacks for files the primary decoder
// cannot parse.
package tags

import (
	"errors"
	"path/filepath"
	"strconv"
	"strings"
)

// File extensions the organizer accepts.
const (
	ExtAIF  = ".aif"
	ExtAIFF = ".aiff"
	ExtAPE  = ".ape"
	ExtFLAC = ".flac"
	ExtM4A  = ".m4a"
	ExtM4B  = ".m4b"
	ExtM4R  = ".m4r"
	ExtMP2  = ".mp2"
	ExtMP3  = ".mp3"
	ExtMP4  = ".mp4"
	ExtMPC  = ".mpc"
	ExtOGG  = ".ogg"
	ExtOPUS = ".opus"
	ExtWAV  = ".wav"
	ExtWMA  = ".wma"
)

// Extensions is the fixed allow-list of supported audio containers.
var Extensions = []string{
	ExtAIF, ExtAIFF, ExtAPE, ExtFLAC, ExtM4A, ExtM4B, ExtM4R,
	ExtMP2, ExtMP3, ExtMP4, ExtMPC, ExtOGG, ExtOPUS, ExtWAV, ExtWMA,
}

var supported = func() map[string]bool {
	m := make(map[string]bool, len(Extensions))
	for _, ext := range Extensions {
		m[ext] = true
	}
	return m
}()

// ErrUnsupported is returned by Read for files outside the allow-list.
var ErrUnsupported = errors.New("unsupported file format")

// Tag contains the metadata the organizer derives destination paths from.
// Absent fields are zero-valued; callers decide on fallbacks.
type Tag struct {
	Path        string
	Title       string
	Artist      string
	AlbumArtist string
	Album       string

	TrackNumber int
	TotalTracks int
	DiscNumber  int
}

// IsSupported returns true if the path has a supported music file extension.
func IsSupported(path string) bool {
	return supported[Ext(path)]
}

// Ext returns the lower-cased extension of path, including the dot.
func Ext(path string) string {
	return strings.ToLower(filepath.Ext(path))
}

// taglibTags wraps a taglib result map with helper methods.
// This reduces duplication across format-specific readers.
type taglibTags map[string][]string

// get returns the first value for any of the given keys, or empty string if not found.
func (t taglibTags) get(keys ...string) string {
	for _, key := range keys {
		if values, ok := t[key]; ok && len(values) > 0 {
			return values[0]
		}
	}
	return ""
}

// getInt returns the first value as an integer, or 0 if not found or invalid.
func (t taglibTags) getInt(key string) int {
	if values, ok := t[key]; ok && len(values) > 0 {
		if n, err := strconv.Atoi(values[0]); err == nil {
			return n
		}
	}
	return 0
}

// parseNumberPair parses a track/disc number that may be "N" or "N/M" format.
func parseNumberPair(s string) (num, total int) {
	if s == "" {
		return 0, 0
	}
	parts := strings.SplitN(s, "/", 2)
	num, _ = strconv.Atoi(strings.TrimSpace(parts[0]))
	if len(parts) == 2 {
		total, _ = strconv.Atoi(strings.TrimSpace(parts[1]))
	}
	return num, total
}
