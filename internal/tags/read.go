package tags

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dhowden/tag"
)

// Read reads tag metadata from a music file.
// Partial metadata is not an error: any of artist, album, title or track
// number may be absent in the result. Read fails only when the file is
// outside the supported-format allow-list or no decoder can parse it.
func Read(path string) (*Tag, error) {
	if !IsSupported(path) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupported, filepath.Ext(path))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		switch Ext(path) {
		case ExtMP3, ExtMP2:
			// dhowden/tag has issues with some UTF-16 encoded ID3 tags
			return readWithID3v2(path)
		default:
			// dhowden/tag can't parse some containers (e.g. ffmpeg-created
			// M4A, some FLAC/Ogg files) and doesn't cover WMA/APE/AIFF
			return readWithTaglib(path)
		}
	}

	track, totalTracks := m.Track()
	disc, _ := m.Disc()

	albumArtist := m.AlbumArtist()
	if albumArtist == "" {
		albumArtist = m.Artist()
	}

	return &Tag{
		Path:        path,
		Title:       m.Title(),
		Artist:      m.Artist(),
		AlbumArtist: albumArtist,
		Album:       m.Album(),
		TrackNumber: track,
		TotalTracks: totalTracks,
		DiscNumber:  disc,
	}, nil
}
