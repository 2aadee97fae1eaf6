package policy

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/turtacn/cadetops/internal/domain/service"
	"github.com/turtacn/cadetops/pkg/logger"
)

const reloadDebounce = 100 * time.Millisecond

// Watcher serves the policy loaded from a file and reloads it when the file changes.
// A reload that fails to parse or validate is logged and the previous policy stays active.
// Watcher 提供从文件加载的策略，并在文件变更时重新加载。
// 解析或验证失败的重新加载会被记录，之前的策略保持生效。
type Watcher struct {
	path     string
	base     service.AnalyticsPolicy
	provider *service.StaticPolicyProvider
	watcher  *fsnotify.Watcher
	logger   logger.Logger

	reloaded chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// NewWatcher loads path onto base and starts watching its directory.
// The directory is watched so that editors replacing the file by rename are picked up.
// NewWatcher 将 path 加载到 base 上并开始监视其所在目录。
func NewWatcher(path string, base service.AnalyticsPolicy, log logger.Logger) (*Watcher, error) {
	initial, err := LoadPolicyFile(path, base)
	if err != nil {
		return nil, fmt.Errorf("initial policy load failed: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch policy file: %w", err)
	}

	w := &Watcher{
		path:     filepath.Clean(path),
		base:     base,
		provider: service.NewStaticPolicyProvider(initial),
		watcher:  fw,
		logger:   log.WithComponent("policy-watcher"),
		reloaded: make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
	go w.watchLoop()
	return w, nil
}

// Current returns the active policy.
func (w *Watcher) Current() service.AnalyticsPolicy {
	return w.provider.Current()
}

// Reloaded signals after every reload attempt, successful or not.
func (w *Watcher) Reloaded() <-chan struct{} {
	return w.reloaded
}

// Close stops watching.
func (w *Watcher) Close() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.done)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) watchLoop() {
	timer := time.NewTimer(reloadDebounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				timer.Reset(reloadDebounce)
			}

		case <-timer.C:
			w.reload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error(context.Background(), "Policy watcher error", err)

		case <-w.done:
			timer.Stop()
			return
		}
	}
}

func (w *Watcher) reload() {
	ctx := context.Background()
	defer func() {
		select {
		case w.reloaded <- struct{}{}:
		default:
		}
	}()

	policy, err := LoadPolicyFile(w.path, w.base)
	if err != nil {
		w.logger.Error(ctx, "Failed to reload analytics policy, keeping previous", err, logger.Fields{"path": w.path})
		return
	}
	if err := w.provider.Set(policy); err != nil {
		w.logger.Error(ctx, "Rejected analytics policy", err, logger.Fields{"path": w.path})
		return
	}
	w.logger.Info(ctx, "Reloaded analytics policy", logger.Fields{"path": w.path})
}

var _ service.PolicyProvider = (*Watcher)(nil)
