// Package youtube adapts YouTube's video search and caption APIs to the
// application's domain types.
//
// SearchClient queries the YouTube Data API v3 (google.golang.org/api) for the
// first embeddable video matching a search string. TranscriptClient retrieves
// caption segments through github.com/kkdai/youtube, which reads the public
// caption tracks and needs no API key.
package youtube
