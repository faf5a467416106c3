package exportsvc

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/JaMeS-18-18/ForPluto/core"
)

type fileService struct {
	dir string
}

var _ core.ExportService = (*fileService)(nil)

// NewFileService writes exported documents into dir.
func NewFileService(dir string) core.ExportService {
	return &fileService{dir: dir}
}

// Export writes content to dir/filename through a temp file and returns the final path.
func (svc fileService) Export(ctx context.Context, filename string, content []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if filename == "" || filename != filepath.Base(filename) {
		return "", errors.Errorf("invalid export filename %q", filename)
	}
	if err := os.MkdirAll(svc.dir, 0o755); err != nil {
		return "", errors.Wrapf(err, "creating export directory %s", svc.dir)
	}

	tmp, err := os.CreateTemp(svc.dir, "."+filename+"-*.tmp")
	if err != nil {
		return "", errors.Wrap(err, "creating temp file")
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err = tmp.Write(content); err != nil {
		_ = tmp.Close()
		return "", errors.Wrapf(err, "writing %s", tmp.Name())
	}
	if err = tmp.Close(); err != nil {
		return "", errors.Wrapf(err, "closing %s", tmp.Name())
	}
	dst := filepath.Join(svc.dir, filename)
	if err = os.Rename(tmp.Name(), dst); err != nil {
		return "", errors.Wrapf(err, "moving export to %s", dst)
	}
	return dst, nil
}
