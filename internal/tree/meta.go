// Package tree turns a flat object listing into a virtual folder hierarchy:
// it reads sidecar metadata markers into folder attributes and groups keys
// into subfolders and files at an arbitrary prefix. Everything here is a pure
// function over an explicit object list; no storage calls are made.
package tree

import (
	"strconv"

	"github.com/pouchain/docstore/internal/keys"
	"github.com/pouchain/docstore/internal/objstore"
)

// OrderLast is the sort rank applied to folders without an order marker.
// They sort after every folder that carries an explicit rank.
const OrderLast = 1<<31 - 1

// DefaultEmoji is shown for folders without an emoji marker.
const DefaultEmoji = "📁"

// DefaultRow is the row group for folders without a row marker.
const DefaultRow = 1

// Palette is the fixed folder color palette, assigned to folders lacking an
// explicit color marker by their position in sorted enumeration, cycling
// modulo the palette length.
var Palette = []string{
	"#FF9500", "#AF52DE", "#5856D6", "#FF2D55",
	"#5AC8FA", "#34C759", "#FF3B30", "#FFCC00",
}

// PaletteColor returns the palette entry for enumeration position i.
func PaletteColor(i int) string {
	return Palette[i%len(Palette)]
}

// Meta holds the marker-derived attributes of one folder. Color is empty when
// no explicit color marker exists; callers assign a palette default.
type Meta struct {
	Color string
	Emoji string
	Order int
	Row   int
}

// ReadFolderMeta scans an already-fetched object list for markers directly
// under folderPrefix (which must end with "/", or be empty for the root) and
// applies defaults for absent kinds.
func ReadFolderMeta(objects []objstore.Object, folderPrefix string) Meta {
	m := Meta{Emoji: DefaultEmoji, Order: OrderLast, Row: DefaultRow}

	for _, obj := range objects {
		if keys.Dir(obj.Key) != folderPrefix {
			continue
		}
		kind, value := keys.Classify(keys.Base(obj.Key))
		switch kind {
		case keys.KindColor:
			m.Color = "#" + value
		case keys.KindEmoji:
			m.Emoji = value
		case keys.KindOrder:
			if n, err := strconv.Atoi(value); err == nil {
				m.Order = n
			}
		case keys.KindRow:
			if n, err := strconv.Atoi(value); err == nil {
				m.Row = n
			}
		}
	}
	return m
}
