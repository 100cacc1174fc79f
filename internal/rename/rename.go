// Package rename computes destination paths for music files from their tag
// metadata. A destination is always Artist/Album/Title under a configured
// root, with optional filename sanitization and a numeric-suffix collision
// policy.
package rename

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Placeholders used when a tag is absent or sanitizes to nothing.
const (
	UnknownArtist = "Unknown Artist"
	UnknownAlbum  = "Unknown Album"
	UnknownTitle  = "Unknown Title"
)

// ErrEscapesRoot is returned when a computed destination would resolve
// outside the destination root.
var ErrEscapesRoot = errors.New("destination escapes library root")

// Metadata contains the tag fields path construction needs.
type Metadata struct {
	Artist      string
	Album       string
	Title       string
	TrackNumber int
	SourcePath  string
}

// Path is a computed destination rooted under Root.
type Path struct {
	Root     string
	Artist   string // artist directory segment
	Album    string // album directory segment
	Filename string // file name including extension
}

// Dir returns the directory the file will live in.
func (p Path) Dir() string {
	return filepath.Join(p.Root, p.Artist, p.Album)
}

// Abs returns the full destination path.
func (p Path) Abs() string {
	return filepath.Join(p.Dir(), p.Filename)
}

var (
	// reIllegalChars matches characters not allowed in path segments on
	// common filesystems: \ / : * ? " < > |
	reIllegalChars = regexp.MustCompile(`[\\/:*?"<>|]+`)
	// reControlChars matches ASCII control characters
	reControlChars = regexp.MustCompile(`[\x00-\x1f\x7f]+`)
	// reMultiSpace matches runs of whitespace
	reMultiSpace = regexp.MustCompile(`\s+`)
)

// cleanSegment makes a tag value safe to use as a single path segment.
// Illegal characters become spaces, control characters are dropped,
// whitespace runs collapse, and leading/trailing whitespace and dots are
// trimmed. The result may be empty.
func cleanSegment(s string) string {
	s = reIllegalChars.ReplaceAllString(s, " ")
	s = reControlChars.ReplaceAllString(s, "")
	s = reMultiSpace.ReplaceAllString(s, " ")
	return strings.Trim(s, " .")
}

// Build computes the destination path for a file from its metadata.
// Absent artist/album fall back to the Unknown placeholders; an absent title
// falls back to the source file's base name. The extension is preserved
// verbatim from the source. When the track number is present the filename is
// prefixed with a zero-padded ordinal so directory listings sort in track
// order.
//
// Build fails with ErrEscapesRoot when the resolved path would not remain
// under root. With sanitize enabled that cannot happen; with it disabled,
// path separators embedded in tags are kept as long as the result still
// resolves inside the root.
func Build(m Metadata, root string, sanitize bool) (Path, error) {
	ext := filepath.Ext(m.SourcePath)

	artist := m.Artist
	album := m.Album
	title := m.Title
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(m.SourcePath), ext)
	}

	if sanitize {
		artist = cleanSegment(artist)
		album = cleanSegment(album)
		title = cleanSegment(title)
	}
	if artist == "" {
		artist = UnknownArtist
	}
	if album == "" {
		album = UnknownAlbum
	}
	if title == "" {
		title = UnknownTitle
	}

	filename := title + ext
	if m.TrackNumber > 0 {
		filename = fmt.Sprintf("%02d %s", m.TrackNumber, filename)
	}

	p := Path{Root: root, Artist: artist, Album: album, Filename: filename}
	if !withinRoot(root, p.Abs()) {
		return Path{}, fmt.Errorf("%w: %q", ErrEscapesRoot, p.Abs())
	}
	return p, nil
}

// withinRoot reports whether path resolves strictly inside root.
func withinRoot(root, path string) bool {
	root = filepath.Clean(root)
	path = filepath.Clean(path)
	return path != root && strings.HasPrefix(path, root+string(filepath.Separator))
}

// ContentsEqual reports whether two files hold identical content.
// It is supplied by the relocation layer so collision checks share its
// integrity checksum.
type ContentsEqual func(a, b string) (bool, error)

// Resolve applies the collision policy to a computed path.
// If nothing exists at the destination it is returned as is. If an existing
// file is byte-identical to source, Resolve reports a duplicate so the
// caller can skip the move. Otherwise a numeric suffix is appended before
// the extension and incremented until the collision clears.
func Resolve(p Path, source string, identical ContentsEqual) (dest string, duplicate bool, err error) {
	base := p.Abs()
	ext := filepath.Ext(p.Filename)
	stem := strings.TrimSuffix(base, ext)

	dest = base
	for n := 1; ; n++ {
		_, statErr := os.Stat(dest)
		if os.IsNotExist(statErr) {
			return dest, false, nil
		}
		if statErr != nil {
			return "", false, statErr
		}

		same, cmpErr := identical(source, dest)
		if cmpErr != nil {
			return "", false, cmpErr
		}
		if same {
			return dest, true, nil
		}

		dest = fmt.Sprintf("%s (%d)%s", stem, n, ext)
	}
}
