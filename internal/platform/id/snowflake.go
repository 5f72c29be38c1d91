package id

import (
	"fmt"

	"github.com/bwmarrin/snowflake"
)

// Generator は Snowflake アルゴリズムで時刻順の int64 ID を採番します。
type Generator struct {
	node *snowflake.Node
}

// NewGenerator は指定ノード番号の Generator を生成します。
func NewGenerator(nodeID int64) (*Generator, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("id: create snowflake node %d: %w", nodeID, err)
	}
	return &Generator{node: node}, nil
}

// Generate は新しい ID を返します。
func (g *Generator) Generate() int64 {
	return g.node.Generate().Int64()
}
