package main

import (
	"fmt"

	"github.com/cuemby/clusterview/pkg/client"
	"github.com/cuemby/clusterview/pkg/dispatch"
	"github.com/cuemby/clusterview/pkg/state"
)

// app wires the store, the API client and the dispatcher
type app struct {
	store      *state.Store
	client     *client.Client
	dispatcher *dispatch.Dispatcher
}

func newApp(cfg *Config, opts ...state.Option) (*app, error) {
	c, err := client.NewClient(client.Config{
		BaseURL: cfg.APIURL,
		Token:   cfg.Token,
		Timeout: cfg.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}

	store := state.NewStore(opts...)
	return &app{
		store:      store,
		client:     c,
		dispatcher: dispatch.New(c, store),
	}, nil
}
