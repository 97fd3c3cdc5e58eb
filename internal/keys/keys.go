// Package keys decomposes flat object keys ("A/B/file.pdf") into folder paths
// and metadata markers. Folders do not exist in the backend; they are implied
// by key prefixes, and per-folder metadata (color, emoji, order, row) is
// encoded in reserved sidecar key names. All functions are pure.
package keys

import (
	"net/url"
	"strconv"
	"strings"
)

// Kind classifies the final segment of a key.
type Kind int

const (
	// KindFile is an ordinary document.
	KindFile Kind = iota
	// KindPresence is the placeholder that keeps an empty folder alive.
	KindPresence
	// KindColor encodes a folder color as a hex suffix.
	KindColor
	// KindEmoji encodes a folder glyph as a URL-escaped suffix.
	KindEmoji
	// KindOrder encodes an integer sort rank within a row.
	KindOrder
	// KindRow encodes an integer row-group id.
	KindRow
)

// Reserved marker names. The marker value lives in the key itself, so
// changing a value means deleting the old key and putting a new one.
const (
	PresenceName = ".keep"

	colorPrefix = ".meta_color_"
	emojiPrefix = ".meta_emoji_"
	orderPrefix = ".meta_order_"
	rowPrefix   = ".meta_row_"
)

// Parsed is the decomposition of a single object key.
type Parsed struct {
	// Folder is the top-level folder name, empty for root-level keys.
	Folder string
	// Rel is the path relative to the top-level folder (joined remainder).
	Rel string
	// Base is the final path segment.
	Base string
	// Kind classifies Base.
	Kind Kind
	// Value is the decoded marker value; empty for files and presence markers.
	Value string
}

// Parse splits key on "/" and classifies its final segment. A key with a
// single segment is a root-level file (or root-level marker).
func Parse(key string) Parsed {
	p := Parsed{Base: key}
	if i := strings.Index(key, "/"); i >= 0 {
		p.Folder = key[:i]
		p.Rel = key[i+1:]
		p.Base = key[strings.LastIndex(key, "/")+1:]
	}
	p.Kind, p.Value = Classify(p.Base)
	return p
}

// Classify inspects a bare file name and returns its marker kind and decoded
// value. Names that look like markers but carry malformed values (a non-integer
// order, an undecodable emoji) classify as ordinary files.
func Classify(name string) (Kind, string) {
	switch {
	case name == PresenceName:
		return KindPresence, ""
	case strings.HasPrefix(name, colorPrefix):
		return KindColor, strings.TrimPrefix(name, colorPrefix)
	case strings.HasPrefix(name, emojiPrefix):
		raw := strings.TrimPrefix(name, emojiPrefix)
		decoded, err := url.PathUnescape(raw)
		if err != nil {
			return KindFile, ""
		}
		return KindEmoji, decoded
	case strings.HasPrefix(name, orderPrefix):
		raw := strings.TrimPrefix(name, orderPrefix)
		if _, err := strconv.Atoi(raw); err != nil {
			return KindFile, ""
		}
		return KindOrder, raw
	case strings.HasPrefix(name, rowPrefix):
		raw := strings.TrimPrefix(name, rowPrefix)
		if _, err := strconv.Atoi(raw); err != nil {
			return KindFile, ""
		}
		return KindRow, raw
	}
	return KindFile, ""
}

// IsMarker reports whether name is a presence or metadata marker.
func IsMarker(name string) bool {
	k, _ := Classify(name)
	return k != KindFile
}

// MarkerName builds the reserved file name for a marker of the given kind.
// Emoji values are URL-escaped; color values are stored without the "#".
func MarkerName(kind Kind, value string) string {
	switch kind {
	case KindPresence:
		return PresenceName
	case KindColor:
		return colorPrefix + strings.TrimPrefix(value, "#")
	case KindEmoji:
		return emojiPrefix + url.PathEscape(value)
	case KindOrder:
		return orderPrefix + value
	case KindRow:
		return rowPrefix + value
	}
	return value
}

// MarkerKey builds the full object key for a marker under the given folder
// prefix (prefix must be empty or end with "/").
func MarkerKey(prefix string, kind Kind, value string) string {
	return prefix + MarkerName(kind, value)
}

// Dir returns the folder prefix of a key, including the trailing slash,
// or "" for root-level keys.
func Dir(key string) string {
	i := strings.LastIndex(key, "/")
	if i < 0 {
		return ""
	}
	return key[:i+1]
}

// Base returns the final segment of a key.
func Base(key string) string {
	return key[strings.LastIndex(key, "/")+1:]
}
