package sharesvc

import (
	"context"
	"sync"

	"github.com/JaMeS-18-18/ForPluto/core"
)

type consoleService struct {
	logger core.Logger

	mu   sync.Mutex
	sent []string
}

var _ core.ShareService = (*consoleService)(nil)

// NewConsoleService logs share URLs instead of opening them (DEV & TEST).
func NewConsoleService(logger core.Logger) *consoleService {
	return &consoleService{logger: logger}
}

func (svc *consoleService) Share(_ context.Context, shareURL string) error {
	svc.logger.Info("share: " + shareURL)
	svc.mu.Lock()
	svc.sent = append(svc.sent, shareURL)
	svc.mu.Unlock()
	return nil
}

// Sent returns the URLs shared so far.
func (svc *consoleService) Sent() []string {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	return append([]string{}, svc.sent...)
}
