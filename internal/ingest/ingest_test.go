// SPDX-License-Identifier: MIT
package ingest

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcastrom/dedupetv/internal/channel"
)

const samplePlaylist = `#EXTM3U
#EXTINF:-1 tvg-id="caracol.co" tvg-logo="http://logos/caracol.png" group-title="Colombia",CARACOL TV HD
http://host.tv/live/caracol.m3u8
#EXTINF:-1 group-title="News",CNN
http://host.tv/live/cnn.m3u8
#EXTINF:-1,Missing URL Entry
#EXTINF:-1,Canal Uno SD
http://host.tv/live/canaluno.m3u8
`

func TestParseM3U(t *testing.T) {
	records := ParseM3U(samplePlaylist, "m3u")
	require.Len(t, records, 3)

	caracol := records[0]
	assert.Equal(t, "CARACOL TV HD", caracol.Name)
	assert.Equal(t, "http://host.tv/live/caracol.m3u8", caracol.StreamURL)
	assert.Equal(t, "m3u", caracol.SourceTag)
	assert.Equal(t, channel.QualityHD, caracol.Quality)
	assert.Equal(t, "caracol.co", caracol.Meta("tvg_id"))
	assert.Equal(t, "Colombia", caracol.Meta("group"))
	assert.True(t, strings.HasPrefix(caracol.ID, "m3u_caracol-tv-hd-"))

	assert.Equal(t, channel.QualityAuto, records[1].Quality)
	assert.Equal(t, channel.QualitySD, records[2].Quality)
}

func TestParseM3UStableIDs(t *testing.T) {
	a := ParseM3U(samplePlaylist, "m3u")
	b := ParseM3U(samplePlaylist, "m3u")
	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i].ID, b[i].ID, "IDs must be deterministic across parses")
	}
}

const sampleCSV = `Channel,Stream URL,Quality,Category
CARACOL TV,http://host.tv/live/caracol.m3u8,HD,Colombia
CNN,http://host.tv/live/cnn.m3u8,,News
,http://host.tv/live/orphan.m3u8,,News
ESPN,http://host.tv/live/espn.m3u8,4K,Sports
`

func TestParseCSV(t *testing.T) {
	records, err := ParseCSV(strings.NewReader(sampleCSV), "csv")
	require.NoError(t, err)
	require.Len(t, records, 3, "the row with an empty name must be dropped")

	assert.Equal(t, "CARACOL TV", records[0].Name)
	assert.Equal(t, channel.QualityHD, records[0].Quality)
	assert.Equal(t, "Colombia", records[0].Meta("group"))
	assert.True(t, strings.HasPrefix(records[0].ID, "csv_"))

	assert.Equal(t, channel.QualityAuto, records[1].Quality)
	assert.Equal(t, channel.Quality4K, records[2].Quality)
}

func TestParseCSVExplicitID(t *testing.T) {
	in := "id,name,url\nch42,CNN,http://host.tv/cnn\ncsv_ch43,ESPN,http://host.tv/espn\n"
	records, err := ParseCSV(strings.NewReader(in), "csv")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "csv_ch42", records[0].ID)
	assert.Equal(t, "csv_ch43", records[1].ID, "already-prefixed IDs are kept as-is")
}

func TestParseCSVMissingColumns(t *testing.T) {
	_, err := ParseCSV(strings.NewReader("foo,bar\n1,2\n"), "csv")
	require.Error(t, err)
}

func TestDecodeReaderLatin1(t *testing.T) {
	// "España" in Latin-1 bytes.
	raw := []byte{'E', 's', 'p', 'a', 0xF1, 'a'}
	r, err := DecodeReader(strings.NewReader(string(raw)), "latin1")
	require.NoError(t, err)

	decoded, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "España", string(decoded))

	_, err = DecodeReader(strings.NewReader(""), "ebcdic")
	require.Error(t, err)
}

func TestLoadAllPreservesSourceOrder(t *testing.T) {
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "channels.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("name,url\nCNN,http://a.tv/1\n"), 0o644))

	m3uPath := filepath.Join(dir, "playlist.m3u")
	require.NoError(t, os.WriteFile(m3uPath, []byte("#EXTM3U\n#EXTINF:-1,ESPN\nhttp://b.tv/2\n"), 0o644))

	sources := []Source{
		{Tag: "csv", Path: csvPath, Kind: KindCSV},
		{Tag: "m3u", Path: m3uPath, Kind: KindM3U},
	}

	records, counts, err := LoadAll(context.Background(), sources)
	require.NoError(t, err)
	require.Len(t, records, 2)
	// CSV listed first, so CSV records come first regardless of load timing.
	assert.Equal(t, "csv", records[0].SourceTag)
	assert.Equal(t, "m3u", records[1].SourceTag)
	assert.Equal(t, map[string]int{"csv": 1, "m3u": 1}, counts)
}

func TestLoadAllMissingFile(t *testing.T) {
	_, _, err := LoadAll(context.Background(), []Source{
		{Tag: "csv", Path: "/does/not/exist.csv", Kind: KindCSV},
	})
	require.Error(t, err)
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Das Erste HD", "das-erste-hd"},
		{"España TV Niños", "espana-tv-ninos"},
		{"Sky Sport 1 (HD)", "sky-sport-1-hd"},
		{"  CNN  ", "cnn"},
		{"", "channel"},
		{"!!!", "channel"},
	}
	for _, tt := range tests {
		if got := slugify(tt.input); got != tt.expected {
			t.Errorf("slugify(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
