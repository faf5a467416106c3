package sharesvc

import (
	"context"

	"github.com/pkg/browser"
	"github.com/pkg/errors"

	"github.com/JaMeS-18-18/ForPluto/core"
)

var openURLFunc = browser.OpenURL // mockable

type browserService struct {
	logger core.Logger
}

var _ core.ShareService = (*browserService)(nil)

// NewBrowserService opens share URLs with the system browser, which hands t.me links to the Telegram app.
func NewBrowserService(logger core.Logger) core.ShareService {
	return &browserService{logger: logger}
}

func (svc browserService) Share(ctx context.Context, shareURL string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := openURLFunc(shareURL); err != nil {
		return errors.Wrap(err, "opening share URL")
	}
	svc.logger.Debug("share: opened " + shareURL)
	return nil
}
