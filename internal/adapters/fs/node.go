package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/knit/internal/core/ports"
)

const (
	FileSystemNodeID graft.ID = "adapter.fs.filesystem"
	WalkerNodeID     graft.ID = "adapter.fs.walker"
	HasherNodeID     graft.ID = "adapter.fs.hasher"
	LoaderNodeID     graft.ID = "adapter.fs.loader"
	DiscovererNodeID graft.ID = "adapter.fs.discoverer"
)

func init() {
	graft.Register(graft.Node[ports.FileSystem]{
		ID:        FileSystemNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.FileSystem, error) {
			return NewOSFS(), nil
		},
	})

	// Walker Node (Concrete implementation needed by Discoverer)
	graft.Register(graft.Node[*Walker]{
		ID:        WalkerNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (*Walker, error) {
			return NewWalker(), nil
		},
	})

	graft.Register(graft.Node[ports.Hasher]{
		ID:        HasherNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.Hasher, error) {
			return NewHasher(), nil
		},
	})

	graft.Register(graft.Node[ports.ModuleLoader]{
		ID:        LoaderNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{FileSystemNodeID, HasherNodeID},
		Run: func(ctx context.Context) (ports.ModuleLoader, error) {
			fsys, err := graft.Dep[ports.FileSystem](ctx)
			if err != nil {
				return nil, err
			}
			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(fsys, hasher), nil
		},
	})

	graft.Register(graft.Node[ports.ManifestDiscoverer]{
		ID:        DiscovererNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{FileSystemNodeID, WalkerNodeID},
		Run: func(ctx context.Context) (ports.ManifestDiscoverer, error) {
			fsys, err := graft.Dep[ports.FileSystem](ctx)
			if err != nil {
				return nil, err
			}
			walker, err := graft.Dep[*Walker](ctx)
			if err != nil {
				return nil, err
			}
			return NewDiscoverer(fsys, walker), nil
		},
	})
}
