// Package media stores uploaded product images.
package media

import (
	"context"
	"io"
	"path"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// PublicPrefix is the URL path uploaded files are served under.
const PublicPrefix = "/uploads/"

// Store saves an uploaded file under name and returns its public path.
type Store interface {
	Save(ctx context.Context, name, contentType string, body io.Reader) (string, error)
}

var whitespace = regexp.MustCompile(`\s+`)

// UploadName builds the stored file name: the upload time in Unix
// milliseconds, an underscore, then the original base name lowercased with
// whitespace runs replaced by '-'.
func UploadName(now time.Time, original string) string {
	base := path.Base(strings.ReplaceAll(original, `\`, "/"))
	if base == "." || base == "/" || base == ".." {
		base = "upload"
	}
	base = strings.ToLower(whitespace.ReplaceAllString(base, "-"))
	return strconv.FormatInt(now.UnixMilli(), 10) + "_" + base
}
