package testing

import "context"

type RedisContainer interface {
	GetURI() string
	Terminate(context.Context) error
}

type MySQLContainer interface {
	GetURI() string
	Terminate(context.Context) error
}
