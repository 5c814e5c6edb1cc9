package main

import (
	"github.com/krancour/yuadmin/internal/console"
	"github.com/krancour/yuadmin/internal/session"
	"github.com/krancour/yuadmin/internal/tokenstore"
	"github.com/krancour/yuadmin/sdk/api"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

// getClient returns an API client for the address saved by `yuadmin login`.
// The client reads its bearer token from the token store on every request.
func getClient(c *cli.Context) (api.Client, error) {
	config, err := getConfig()
	if err != nil {
		return nil, errors.Wrapf(err, "error retrieving configuration")
	}
	store, err := tokenstore.NewStoreFromEnvironment()
	if err != nil {
		return nil, err
	}
	return api.NewClient(config.APIAddress, store, c.Bool(flagInsecure)), nil
}

// getBootstrapper returns a Bootstrapper for the given address, along with
// the client and token store it works with.
func getBootstrapper(
	c *cli.Context,
	apiAddress string,
) (session.Bootstrapper, tokenstore.Store, error) {
	store, err := tokenstore.NewStoreFromEnvironment()
	if err != nil {
		return nil, nil, err
	}
	consoleConfig, err := console.GetConfig()
	if err != nil {
		return nil, nil, err
	}
	sessionConfig, err := consoleConfig.SessionConfig()
	if err != nil {
		return nil, nil, err
	}
	client := api.NewClient(apiAddress, store, c.Bool(flagInsecure))
	return session.NewBootstrapper(store, client.Users(), sessionConfig),
		store,
		nil
}
