package keys

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want Parsed
	}{
		{name: "nested file", key: "Docs/reports/a.pdf",
			want: Parsed{Folder: "Docs", Rel: "reports/a.pdf", Base: "a.pdf", Kind: KindFile}},
		{name: "root file", key: "root.txt",
			want: Parsed{Base: "root.txt", Kind: KindFile}},
		{name: "presence marker", key: "Docs/.keep",
			want: Parsed{Folder: "Docs", Rel: ".keep", Base: ".keep", Kind: KindPresence}},
		{name: "color marker", key: "Docs/.meta_color_FF0000",
			want: Parsed{Folder: "Docs", Rel: ".meta_color_FF0000", Base: ".meta_color_FF0000", Kind: KindColor, Value: "FF0000"}},
		{name: "order marker", key: "Docs/.meta_order_3",
			want: Parsed{Folder: "Docs", Rel: ".meta_order_3", Base: ".meta_order_3", Kind: KindOrder, Value: "3"}},
		{name: "row marker", key: "Docs/.meta_row_2",
			want: Parsed{Folder: "Docs", Rel: ".meta_row_2", Base: ".meta_row_2", Kind: KindRow, Value: "2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.key))
		})
	}
}

func TestClassify_EmojiDecoding(t *testing.T) {
	kind, value := Classify(".meta_emoji_%F0%9F%93%81")
	assert.Equal(t, KindEmoji, kind)
	assert.Equal(t, "📁", value)
}

func TestClassify_MalformedValuesAreFiles(t *testing.T) {
	tests := []string{
		".meta_order_abc",
		".meta_row_1.5",
		".meta_emoji_%ZZ",
	}
	for _, name := range tests {
		t.Run(name, func(t *testing.T) {
			kind, _ := Classify(name)
			assert.Equal(t, KindFile, kind)
		})
	}
}

func TestIsMarker(t *testing.T) {
	assert.True(t, IsMarker(".keep"))
	assert.True(t, IsMarker(".meta_color_FF0000"))
	assert.True(t, IsMarker(".meta_emoji_x"))
	assert.False(t, IsMarker("report.pdf"))
	assert.False(t, IsMarker(".meta_order_oops"))
}

func TestMarkerName(t *testing.T) {
	assert.Equal(t, ".keep", MarkerName(KindPresence, ""))
	assert.Equal(t, ".meta_color_FF9500", MarkerName(KindColor, "#FF9500"))
	assert.Equal(t, ".meta_color_FF9500", MarkerName(KindColor, "FF9500"))
	assert.Equal(t, ".meta_emoji_%F0%9F%93%81", MarkerName(KindEmoji, "📁"))
	assert.Equal(t, ".meta_order_7", MarkerName(KindOrder, "7"))
}

func TestMarkerName_RoundTrip(t *testing.T) {
	name := MarkerName(KindEmoji, "🚀")
	kind, value := Classify(name)
	assert.Equal(t, KindEmoji, kind)
	assert.Equal(t, "🚀", value)
}

func TestMarkerKey(t *testing.T) {
	assert.Equal(t, "Docs/.meta_row_2", MarkerKey("Docs/", KindRow, "2"))
	assert.Equal(t, ".keep", MarkerKey("", KindPresence, ""))
}

func TestDirAndBase(t *testing.T) {
	assert.Equal(t, "Docs/reports/", Dir("Docs/reports/a.pdf"))
	assert.Equal(t, "", Dir("root.txt"))
	assert.Equal(t, "a.pdf", Base("Docs/reports/a.pdf"))
	assert.Equal(t, "root.txt", Base("root.txt"))
}
