package articlefetcher

import (
	"io"
	"net/http"
	"strings"
)

// Pages larger than this are cut off before parsing; article bodies worth
// explaining fit comfortably within it.
const maxBodyBytes = 5 << 20

func copyBounded(builder *strings.Builder, resp *http.Response) (int64, error) {
	return io.Copy(builder, io.LimitReader(resp.Body, maxBodyBytes))
}
