package core

import (
	"context"
	"time"
)

const (
	ExportExt         = ".doc"
	ExportContentType = "application/msword;charset=utf-8"
)

// ExportService is any service that can deliver an exported document to the user.
type ExportService interface {
	// Export stores content under filename and returns where it ended up.
	Export(ctx context.Context, filename string, content []byte) (string, error)
}

// ExportFilename returns `<prefix><YYYY-MM-DD>.doc`.
func ExportFilename(prefix string, now time.Time) string {
	return prefix + now.Format("2006-01-02") + ExportExt
}
