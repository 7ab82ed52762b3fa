package utils

import (
	"fmt"

	"github.com/bwmarrin/snowflake"
)

// SnowflakeIDGenerator hands out time-ordered ids with a caller-chosen prefix, e.g. "C1714...".
type SnowflakeIDGenerator struct {
	node *snowflake.Node
}

// NewSnowflakeIDGenerator creates a generator for the given node number (0-1023).
func NewSnowflakeIDGenerator(nodeID int64) (*SnowflakeIDGenerator, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("failed to create snowflake node %d: %w", nodeID, err)
	}
	return &SnowflakeIDGenerator{node: node}, nil
}

func (g *SnowflakeIDGenerator) NewID(prefix string) string {
	return prefix + g.node.Generate().String()
}
