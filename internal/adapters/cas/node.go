package cas

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/knit/internal/core/ports"
)

// NodeID is the unique identifier for the bundle info store Graft node.
const NodeID graft.ID = "adapter.bundle_info_store"

func init() {
	graft.Register(graft.Node[ports.BundleInfoStore]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.BundleInfoStore, error) {
			return NewStore(), nil
		},
	})
}
