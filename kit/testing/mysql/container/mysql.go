package container

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/superj80820/shortlink/kit/testing"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mysql"
)

type mysqlContainer struct {
	uri       string
	container *mysql.MySQLContainer
}

type Option func(*config)

type config struct {
	sqlSchemaPaths []string
}

func UseSQLSchema(sqlSchemaPaths ...string) Option {
	return func(c *config) {
		c.sqlSchemaPaths = sqlSchemaPaths
	}
}

func CreateMySQL(ctx context.Context, options ...Option) (testing.MySQLContainer, error) {
	containerConfig := new(config)
	for _, option := range options {
		option(containerConfig)
	}

	mysqlDBName := "db"
	mysqlDBUsername := "root"
	mysqlDBPassword := "password"
	containerOptions := []testcontainers.ContainerCustomizer{
		testcontainers.WithImage("mysql:8"),
		mysql.WithDatabase(mysqlDBName),
		mysql.WithUsername(mysqlDBUsername),
		mysql.WithPassword(mysqlDBPassword),
	}
	if len(containerConfig.sqlSchemaPaths) != 0 {
		containerOptions = append(containerOptions, mysql.WithScripts(containerConfig.sqlSchemaPaths...))
	}
	container, err := mysql.RunContainer(ctx, containerOptions...)
	if err != nil {
		return nil, errors.Wrap(err, "run container failed")
	}
	mysqlDBHost, err := container.Host(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "get container host failed")
	}
	mysqlDBPort, err := container.MappedPort(ctx, "3306")
	if err != nil {
		return nil, errors.Wrap(err, "mapped container port failed")
	}

	return &mysqlContainer{
		uri: fmt.Sprintf(
			"%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			mysqlDBUsername,
			mysqlDBPassword,
			mysqlDBHost,
			mysqlDBPort.Port(),
			mysqlDBName,
		),
		container: container,
	}, nil
}

func (m *mysqlContainer) GetURI() string {
	return m.uri
}

func (m *mysqlContainer) Terminate(ctx context.Context) error {
	if err := m.container.Terminate(ctx); err != nil {
		return errors.Wrap(err, "terminate failed")
	}
	return nil
}
