package util

import (
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	singletonSnowflakeNode *snowflake.Node
	snowflakeNodeOnce      sync.Once
)

func getSnowflakeNode() *snowflake.Node {
	snowflakeNodeOnce.Do(func() {
		snowflakeNode, err := snowflake.NewNode(1)
		if err != nil {
			panic(err)
		}
		singletonSnowflakeNode = snowflakeNode
	})
	return singletonSnowflakeNode
}

func GetSnowflakeIDInt64() int64 {
	return getSnowflakeNode().Generate().Int64()
}
