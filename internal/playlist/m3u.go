// SPDX-License-Identifier: MIT
package playlist

import (
	"bytes"
	"fmt"
	"io"

	"github.com/jcastrom/dedupetv/internal/channel"
)

// WriteM3U renders the merged channel list as an M3U playlist. Group, logo
// and lineup number come from record metadata when the source supplied them.
func WriteM3U(w io.Writer, records []channel.Record) error {
	buf := &bytes.Buffer{}
	buf.WriteString("#EXTM3U\n")
	for i, rec := range records {
		number := rec.Meta("number")
		if number == "" {
			number = fmt.Sprintf("%d", i+1)
		}
		buf.WriteString(fmt.Sprintf(
			`#EXTINF:-1 tvg-chno="%s" tvg-id="%s" tvg-logo="%s" group-title="%s",%s`+"\n",
			number, tvgID(rec), rec.Meta("logo"), rec.Meta("group"), rec.Name,
		))
		buf.WriteString(rec.StreamURL + "\n")
	}
	_, err := io.Copy(w, buf)
	return err
}

// tvgID prefers the EPG id carried over from the source playlist and falls
// back to the record ID.
func tvgID(rec channel.Record) string {
	if id := rec.Meta("tvg_id"); id != "" {
		return id
	}
	return rec.ID
}
