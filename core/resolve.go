package core

import (
	"fmt"
	"net/netip"

	"github.com/encodeous/ffscan/state"
	"github.com/gaissmai/bart"
)

// AddressResolver maps addresses to the node advertising the longest matching prefix
type AddressResolver struct {
	table bart.Table[state.NodeId]
}

func NewAddressResolver(cfg *state.TopologyCfg) *AddressResolver {
	r := &AddressResolver{}
	for _, node := range cfg.Nodes {
		for _, prefix := range node.Prefixes {
			r.table.Insert(prefix.Masked(), node.Id)
		}
	}
	return r
}

func (r *AddressResolver) Resolve(addr netip.Addr) (state.NodeId, bool) {
	return r.table.Lookup(addr.Unmap())
}

// ResolveNode interprets s as a node id, or failing that, as an address owned by a node.
func ResolveNode(topo *state.Topology, r *AddressResolver, s string) (state.NodeId, error) {
	if topo.HasNode(state.NodeId(s)) {
		return state.NodeId(s), nil
	}
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return "", fmt.Errorf("%w: %s", state.ErrUnknownNode, s)
	}
	node, ok := r.Resolve(addr)
	if !ok {
		return "", fmt.Errorf("no node advertises a prefix containing %s", addr)
	}
	return node, nil
}
