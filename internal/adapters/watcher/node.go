package watcher

import (
	"context"
	"time"

	"github.com/grindlemire/graft"
	"go.trai.ch/knit/internal/adapters/fs"
	"go.trai.ch/knit/internal/adapters/logger"
	"go.trai.ch/knit/internal/core/ports"
)

const (
	// WatcherNodeID is the unique identifier for the file watcher Graft node.
	WatcherNodeID graft.ID = "adapter.watcher"
	// ContentCacheNodeID is the unique identifier for the module content cache Graft node.
	ContentCacheNodeID graft.ID = "adapter.content_cache"
)

// DefaultDebounceWindow is the default time window for debouncing file events.
const DefaultDebounceWindow = 50 * time.Millisecond

func init() {
	graft.Register(graft.Node[ports.Watcher]{
		ID:        WatcherNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Watcher, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewWatcher(log)
		},
	})

	graft.Register(graft.Node[ports.ModuleCache]{
		ID:        ContentCacheNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.LoaderNodeID},
		Run: func(ctx context.Context) (ports.ModuleCache, error) {
			loader, err := graft.Dep[ports.ModuleLoader](ctx)
			if err != nil {
				return nil, err
			}
			return NewContentCache(loader), nil
		},
	})
}
