package config

import "github.com/urfave/cli/v3"

// Server holds server configuration
type Server struct {
	Addr       string
	ModelHosts []string
}

// Flags returns CLI flags for server configuration
func (c *Server) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Server address",
			Value:       "localhost:8080",
			Destination: &c.Addr,
			Sources:     cli.EnvVars("TEXPACK_ADDR"),
		},
		&cli.StringSliceFlag{
			Name:        "allow-model-host",
			Usage:       "Host that model URLs may point to; any host is accepted when unset",
			Destination: &c.ModelHosts,
			Sources:     cli.EnvVars("TEXPACK_ALLOW_MODEL_HOST"),
		},
	}
}
