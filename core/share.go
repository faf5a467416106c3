package core

import (
	"context"
	"net/url"
	"strings"
)

// ShareService is any service that can hand a pre-filled share URL over to the user (eg. open a chat).
type ShareService interface {
	Share(ctx context.Context, shareURL string) error
}

// ShareURL builds `<base>/<handle>?text=<text>`, percent-encoding text like encodeURIComponent does.
func ShareURL(base, handle, text string) string {
	base = strings.TrimRight(base, "/")
	handle = strings.TrimPrefix(handle, "@")
	return base + "/" + url.PathEscape(handle) + "?text=" + EncodeURIComponent(text)
}

// EncodeURIComponent escapes s for use inside a query component, spaces become %20.
func EncodeURIComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
