// Package avatar derives content fingerprints from avatar image URLs.
//
// Steam serves the same image from several hosts and at several sizes, e.g.
//
//	https://steamcdn-a.akamaihd.net/steamcommunity/public/images/avatars/90/90588b80..._medium.jpg
//	https://avatars.akamai.steamstatic.com/90588b80..._full.jpg
//
// The content hash in the last path segment is the only part shared by both.
package avatar

import (
	"net/url"
	"strings"
)

// Fingerprint returns the content identifier of an avatar URL: the last path
// segment up to its final '_'. It reports false when the URL does not parse,
// has no path segment after the host, or the segment has no size suffix.
func Fingerprint(avatarURL string) (string, bool) {
	u, err := url.Parse(avatarURL)
	if err != nil {
		return "", false
	}

	slash := strings.LastIndexByte(u.Path, '/')
	if slash < 0 {
		return "", false
	}
	segment := u.Path[slash+1:]

	sep := strings.LastIndexByte(segment, '_')
	if sep <= 0 {
		return "", false
	}
	return segment[:sep], true
}
