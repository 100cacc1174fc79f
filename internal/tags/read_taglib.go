package tags

import (
	"go.senan.xyz/taglib"
)

// readWithTaglib reads metadata using TagLib. It serves both as the fallback
// when dhowden/tag fails and as the primary reader for formats dhowden/tag
// does not handle (WMA, APE, AIFF, Musepack, WAV).
func readWithTaglib(path string) (*Tag, error) {
	rawTags, err := taglib.ReadTags(path)
	if err != nil {
		return nil, err
	}
	tags := taglibTags(rawTags)

	artist := tags.get(taglib.Artist)
	albumArtist := tags.get(taglib.AlbumArtist)
	if albumArtist == "" {
		albumArtist = artist
	}

	totalTracks := tags.getInt("TOTALTRACKS")
	track := tags.getInt(taglib.TrackNumber)
	if track == 0 {
		// Some taggers store "N/M" in the track field
		track, totalTracks = parseNumberPair(tags.get(taglib.TrackNumber))
	}

	return &Tag{
		Path:        path,
		Title:       tags.get(taglib.Title),
		Artist:      artist,
		AlbumArtist: albumArtist,
		Album:       tags.get(taglib.Album),
		TrackNumber: track,
		TotalTracks: totalTracks,
		DiscNumber:  tags.getInt(taglib.DiscNumber),
	}, nil
}
