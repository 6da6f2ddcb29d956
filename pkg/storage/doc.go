/*
Package storage checkpoints the cluster snapshot to BoltDB so a restarted
clusterview starts from the last-known-good state instead of an empty one.

# Layout

The database lives at <dataDir>/clusterview.db with one bucket per
collection:

	nodes, nodes_nics, pods, pods_nics,   keyed by resource name
	containers, deployments
	pod_records, deployment_records,      keyed by big-endian sequence,
	services, namespaces, configmaps      preserving the original order
	meta                                  name indexes and saved_at

Values are JSON. Save rewrites every bucket in a single transaction, so a
reader always sees one complete checkpoint. Loading flags, errors and
per-kind status are not persisted: a loaded snapshot has every kind Idle.

# Usage

	store, err := storage.NewBoltStore(dataDir)
	if err != nil {
		return err
	}
	defer store.Close()

	if _, err := storage.Restore(store, clusterStore); err != nil {
		return err
	}

	cp := storage.NewCheckpointer(store, clusterStore, 30*time.Second, broker)
	go cp.Run(ctx)

The Checkpointer skips a tick when the snapshot has not changed since the last
save and writes a final checkpoint when its context ends.
*/
package storage
