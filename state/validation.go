package state

import (
	"errors"
	"fmt"
	"net/netip"
	"os"
	"path"
	"path/filepath"
	"regexp"
)

var namePattern, _ = regexp.Compile("^[0-9a-z._-]+$")

var ErrDuplicateNode = errors.New("duplicate node")

func PathValidator(s string) error {
	_, err := os.Stat(path.Dir(s))
	if err != nil {
		return err
	}
	_, err = filepath.Abs(s)
	return err
}

func NameValidator(s string) error {
	if !namePattern.MatchString(s) {
		return fmt.Errorf("%s is not a valid name, must match pattern %s", s, namePattern.String())
	}
	if len(s) > 100 {
		return fmt.Errorf("len(\"%s\") = %d > 100 is too long", s, len(s))
	}
	return nil
}

// TopologyConfigValidator rejects configs that cannot be turned into a consistent topology.
func TopologyConfigValidator(cfg *TopologyCfg) error {
	if len(cfg.Nodes) == 0 {
		return fmt.Errorf("topology must define at least one node")
	}
	nodes := make(map[NodeId]struct{})
	owners := make(map[netip.Prefix]NodeId)
	for _, node := range cfg.Nodes {
		if err := NameValidator(string(node.Id)); err != nil {
			return err
		}
		if _, ok := nodes[node.Id]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateNode, node.Id)
		}
		nodes[node.Id] = struct{}{}
		for _, prefix := range node.Prefixes {
			if !prefix.IsValid() {
				return fmt.Errorf("node %s has an invalid prefix", node.Id)
			}
			// only identical prefixes clash, nested ones resolve by longest match
			prefix = prefix.Masked()
			if owner, ok := owners[prefix]; ok && owner != node.Id {
				return fmt.Errorf("prefix %s is assigned to both %s and %s", prefix, owner, node.Id)
			}
			owners[prefix] = node.Id
		}
	}

	links := make(map[Link]struct{})
	for _, link := range cfg.Links {
		if link.A == link.B {
			return fmt.Errorf("%w: %s", ErrSelfLoop, link.A)
		}
		for _, end := range []NodeId{link.A, link.B} {
			if _, ok := nodes[end]; !ok {
				return fmt.Errorf("%w: %s", ErrUnknownNode, end)
			}
		}
		key := MakeSortedPair(link.A, link.B)
		if _, ok := links[key]; ok {
			return fmt.Errorf("duplicate link found: %s, %s", key.V1, key.V2)
		}
		links[key] = struct{}{}
		if link.Cost != nil && !costInRange(*link.Cost) {
			return fmt.Errorf("link %s-%s has cost %d, must be within [0, 2^32)", link.A, link.B, *link.Cost)
		}
	}

	if len(cfg.Graph) != 0 {
		if _, err := cfg.GetLinks(); err != nil {
			return fmt.Errorf("invalid graph: %w", err)
		}
	}
	return nil
}
