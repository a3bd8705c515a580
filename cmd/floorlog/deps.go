package main

import (
	"log/slog"

	"floorlog/internal/blob"
	"floorlog/internal/config"
	"floorlog/internal/store"
)

// withStore opens the configured store, runs fn, and closes it. The remote
// blob store is used when a repository is configured; otherwise operations
// fall back to the local single-writer table. The choice is made here, once
// per invocation, never mid-session.
func withStore(cfg *config.Config, fn func(store.Store) error) error {
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()
	return fn(st)
}

func openStore(cfg *config.Config) (store.Store, error) {
	if cfg.RemoteConfigured() {
		client := blob.NewGitHubClient(cfg.Remote.APIURL, cfg.Remote.Owner, cfg.Remote.Repo, cfg.Remote.Branch)
		slog.Debug("using remote store",
			"owner", cfg.Remote.Owner, "repo", cfg.Remote.Repo, "branch", cfg.Remote.Branch)
		return store.NewRemote(client, cfg.Remote.RecordsPath, cfg.Remote.RosterPath), nil
	}

	slog.Debug("no remote configured, using local store", "db", cfg.DBPath)
	local, err := store.OpenLocal(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	return local, nil
}
