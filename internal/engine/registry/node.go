package registry

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/knit/internal/adapters/fs"        //nolint:depguard // Wired in engine wiring
	"go.trai.ch/knit/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/knit/internal/adapters/manifest"  //nolint:depguard // Wired in engine wiring
	"go.trai.ch/knit/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/knit/internal/core/ports"
)

// NodeID is the unique identifier for the registry builder Graft node.
const NodeID graft.ID = "engine.registry"

func init() {
	graft.Register(graft.Node[*Builder]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			manifest.NodeID,
			fs.FileSystemNodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
		},
		Run: func(ctx context.Context) (*Builder, error) {
			scanner, err := graft.Dep[ports.ManifestScanner](ctx)
			if err != nil {
				return nil, err
			}

			fsys, err := graft.Dep[ports.FileSystem](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			return NewBuilder(scanner, fsys, log, tracer), nil
		},
	})
}
