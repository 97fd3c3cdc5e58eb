package tree

import (
	"sort"
	"strings"

	"github.com/pouchain/docstore/internal/keys"
	"github.com/pouchain/docstore/internal/objstore"
)

// Children is the direct content of one virtual folder: deduplicated
// subfolder names and the files stored immediately under the prefix.
// Marker objects never appear in Files.
type Children struct {
	Subfolders []string          `json:"subfolders"`
	Files      []objstore.Object `json:"files"`
}

// BuildChildren groups the listing at the given prefix. An empty prefix means
// the root; otherwise prefix must end with "/". Subfolder names are sorted
// lexicographically and files by full key.
func BuildChildren(objects []objstore.Object, prefix string) Children {
	sub := make(map[string]struct{})
	var files []objstore.Object

	for _, obj := range objects {
		if !strings.HasPrefix(obj.Key, prefix) {
			continue
		}
		rel := obj.Key[len(prefix):]
		if rel == "" {
			continue
		}
		if i := strings.Index(rel, "/"); i >= 0 {
			if name := rel[:i]; name != "" {
				sub[name] = struct{}{}
			}
			continue
		}
		if !keys.IsMarker(rel) {
			files = append(files, obj)
		}
	}

	c := Children{Subfolders: make([]string, 0, len(sub)), Files: files}
	for name := range sub {
		c.Subfolders = append(c.Subfolders, name)
	}
	sort.Strings(c.Subfolders)
	sort.Slice(c.Files, func(i, j int) bool { return c.Files[i].Key < c.Files[j].Key })
	return c
}

// Card is the derived view of one top-level folder, as rendered on the
// dashboard grid. It is rebuilt on every listing and never persisted.
type Card struct {
	Name      string   `json:"name"`
	Color     string   `json:"color"`
	Emoji     string   `json:"emoji"`
	Order     int      `json:"order"`
	Row       int      `json:"row"`
	FileCount int      `json:"fileCount"`
	Owners    []string `json:"owners,omitempty"`
}

// BuildCards derives the top-level folder cards from a listing. Colorless
// folders get a palette color by their position in sorted enumeration. Cards
// are sorted by row ascending, then order ascending, then name; a folder with
// no order marker therefore lands after every explicitly ranked one.
// owners maps a folder path (with or without trailing slash) to display names.
func BuildCards(objects []objstore.Object, owners map[string][]string) []Card {
	seen := make(map[string]struct{})
	var names []string
	for _, obj := range objects {
		p := keys.Parse(obj.Key)
		if p.Folder == "" {
			continue
		}
		if _, ok := seen[p.Folder]; !ok {
			seen[p.Folder] = struct{}{}
			names = append(names, p.Folder)
		}
	}
	sort.Strings(names)

	cards := make([]Card, 0, len(names))
	for i, name := range names {
		prefix := name + "/"
		meta := ReadFolderMeta(objects, prefix)
		color := meta.Color
		if color == "" {
			color = PaletteColor(i)
		}
		cards = append(cards, Card{
			Name:      name,
			Color:     color,
			Emoji:     meta.Emoji,
			Order:     meta.Order,
			Row:       meta.Row,
			FileCount: len(BuildChildren(objects, prefix).Files),
			Owners:    ownerNames(owners, name),
		})
	}

	sort.Slice(cards, func(i, j int) bool {
		a, b := cards[i], cards[j]
		if a.Row != b.Row {
			return a.Row < b.Row
		}
		if a.Order != b.Order {
			return a.Order < b.Order
		}
		return a.Name < b.Name
	})
	return cards
}

func ownerNames(owners map[string][]string, folder string) []string {
	if owners == nil {
		return nil
	}
	if names, ok := owners[folder]; ok {
		return names
	}
	return owners[folder+"/"]
}

// RootFiles returns the root-level files of a listing (keys without "/"),
// excluding markers, sorted by key.
func RootFiles(objects []objstore.Object) []objstore.Object {
	return BuildChildren(objects, "").Files
}
