package state

import (
	"net"
	"net/netip"

	"github.com/cilium/cilium/pkg/ip"
)

// CoalescePrefix merges adjacent and overlapping prefixes. Every prefix must
// be valid, which TopologyConfigValidator guarantees.
func CoalescePrefix(prefixes []netip.Prefix) []netip.Prefix {
	nets := make([]*net.IPNet, len(prefixes))
	for i, p := range prefixes {
		p = p.Masked()
		nets[i] = &net.IPNet{
			IP:   p.Addr().AsSlice(),
			Mask: net.CIDRMask(p.Bits(), p.Addr().BitLen()),
		}
	}
	v4, v6 := ip.CoalesceCIDRs(nets)

	merged := make([]netip.Prefix, 0, len(v4)+len(v6))
	for _, n := range append(v4, v6...) {
		addr, ok := netip.AddrFromSlice(n.IP)
		if !ok {
			continue
		}
		bits, _ := n.Mask.Size()
		merged = append(merged, netip.PrefixFrom(addr.Unmap(), bits))
	}
	return merged
}
