package state

const (
	// MaxNextHops is the number of next hops a fast-failover node keeps per destination.
	MaxNextHops = 2
	// DefaultCost is the cost assigned to links declared in the graph section.
	DefaultCost = uint32(1)
)

var (
	ConfigPath = "topology.yaml"
)
