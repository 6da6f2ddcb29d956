package storage

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cuemby/clusterview/pkg/state"
	bolt "go.etcd.io/bbolt"
)

var (
	// Keyed collections, one entry per resource name
	bucketNodes       = []byte("nodes")
	bucketNodesNICs   = []byte("nodes_nics")
	bucketPods        = []byte("pods")
	bucketPodsNICs    = []byte("pods_nics")
	bucketContainers  = []byte("containers")
	bucketDeployments = []byte("deployments")

	// Sequences, keyed by position
	bucketPodRecords        = []byte("pod_records")
	bucketDeploymentRecords = []byte("deployment_records")
	bucketServices          = []byte("services")
	bucketNamespaces        = []byte("namespaces")
	bucketConfigmaps        = []byte("configmaps")

	// Name indexes and checkpoint metadata
	bucketMeta = []byte("meta")

	keySavedAt        = []byte("saved_at")
	keyAllNodes       = []byte("all_nodes")
	keyAllPods        = []byte("all_pods")
	keyAllContainers  = []byte("all_containers")
	keyAllDeployments = []byte("all_deployments")
)

var allBuckets = [][]byte{
	bucketNodes,
	bucketNodesNICs,
	bucketPods,
	bucketPodsNICs,
	bucketContainers,
	bucketDeployments,
	bucketPodRecords,
	bucketDeploymentRecords,
	bucketServices,
	bucketNamespaces,
	bucketConfigmaps,
	bucketMeta,
}

// BoltStore implements Store using BoltDB
type BoltStore struct {
	db *bolt.DB
}

// NewBoltStore opens (or creates) the checkpoint database in dataDir
func NewBoltStore(dataDir string) (*BoltStore, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	dbPath := filepath.Join(dataDir, "clusterview.db")

	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range allBuckets {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltStore{db: db}, nil
}

// Close closes the database
func (s *BoltStore) Close() error {
	return s.db.Close()
}

// Save replaces the checkpoint with snap in a single transaction. Loading
// state, errors and per-kind status are not persisted.
func (s *BoltStore) Save(snap *state.Snapshot) error {
	if snap == nil {
		return fmt.Errorf("snapshot is nil")
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range allBuckets {
			if tx.Bucket(bucket) != nil {
				if err := tx.DeleteBucket(bucket); err != nil {
					return fmt.Errorf("failed to clear bucket %s: %w", bucket, err)
				}
			}
			if _, err := tx.CreateBucket(bucket); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
		}

		steps := []func() error{
			func() error { return putKeyed(tx.Bucket(bucketNodes), snap.Nodes) },
			func() error { return putKeyed(tx.Bucket(bucketNodesNICs), snap.NodesNICs) },
			func() error { return putKeyed(tx.Bucket(bucketPods), snap.Pods) },
			func() error { return putKeyed(tx.Bucket(bucketPodsNICs), snap.PodsNICs) },
			func() error { return putKeyed(tx.Bucket(bucketContainers), snap.Containers) },
			func() error { return putKeyed(tx.Bucket(bucketDeployments), snap.Deployments) },
			func() error { return putSequence(tx.Bucket(bucketPodRecords), snap.PodRecords) },
			func() error { return putSequence(tx.Bucket(bucketDeploymentRecords), snap.DeploymentRecords) },
			func() error { return putSequence(tx.Bucket(bucketServices), snap.Services) },
			func() error { return putSequence(tx.Bucket(bucketNamespaces), snap.Namespaces) },
			func() error { return putSequence(tx.Bucket(bucketConfigmaps), snap.Configmaps) },
		}
		for _, step := range steps {
			if err := step(); err != nil {
				return err
			}
		}

		meta := tx.Bucket(bucketMeta)
		indexes := map[string][]string{
			string(keyAllNodes):       snap.AllNodes,
			string(keyAllPods):        snap.AllPods,
			string(keyAllContainers):  snap.AllContainers,
			string(keyAllDeployments): snap.AllDeployments,
		}
		for key, names := range indexes {
			if err := putJSON(meta, []byte(key), names); err != nil {
				return err
			}
		}
		return meta.Put(keySavedAt, []byte(time.Now().UTC().Format(time.RFC3339Nano)))
	})
}

// Load rebuilds the checkpointed snapshot. Every kind is Idle in the result.
func (s *BoltStore) Load() (*state.Snapshot, error) {
	snap := state.NewSnapshot()

	err := s.db.View(func(tx *bolt.Tx) error {
		meta := tx.Bucket(bucketMeta)
		if meta == nil || meta.Get(keySavedAt) == nil {
			return ErrNoCheckpoint
		}

		steps := []func() error{
			func() error { return getKeyed(tx.Bucket(bucketNodes), snap.Nodes) },
			func() error { return getKeyed(tx.Bucket(bucketNodesNICs), snap.NodesNICs) },
			func() error { return getKeyed(tx.Bucket(bucketPods), snap.Pods) },
			func() error { return getKeyed(tx.Bucket(bucketPodsNICs), snap.PodsNICs) },
			func() error { return getKeyed(tx.Bucket(bucketContainers), snap.Containers) },
			func() error { return getKeyed(tx.Bucket(bucketDeployments), snap.Deployments) },
			func() error { return getSequence(tx.Bucket(bucketPodRecords), &snap.PodRecords) },
			func() error { return getSequence(tx.Bucket(bucketDeploymentRecords), &snap.DeploymentRecords) },
			func() error { return getSequence(tx.Bucket(bucketServices), &snap.Services) },
			func() error { return getSequence(tx.Bucket(bucketNamespaces), &snap.Namespaces) },
			func() error { return getSequence(tx.Bucket(bucketConfigmaps), &snap.Configmaps) },
			func() error { return getJSON(meta, keyAllNodes, &snap.AllNodes) },
			func() error { return getJSON(meta, keyAllPods, &snap.AllPods) },
			func() error { return getJSON(meta, keyAllContainers, &snap.AllContainers) },
			func() error { return getJSON(meta, keyAllDeployments, &snap.AllDeployments) },
		}
		for _, step := range steps {
			if err := step(); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// SavedAt returns the time of the last Save
func (s *BoltStore) SavedAt() (time.Time, error) {
	var savedAt time.Time
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketMeta).Get(keySavedAt)
		if data == nil {
			return nil
		}
		t, err := time.Parse(time.RFC3339Nano, string(data))
		if err != nil {
			return fmt.Errorf("invalid checkpoint time: %w", err)
		}
		savedAt = t
		return nil
	})
	return savedAt, err
}

func putJSON(b *bolt.Bucket, key []byte, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return b.Put(key, data)
}

func getJSON(b *bolt.Bucket, key []byte, v any) error {
	data := b.Get(key)
	if data == nil {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return nil
}

func putKeyed[V any](b *bolt.Bucket, m map[string]V) error {
	for name, v := range m {
		if err := putJSON(b, []byte(name), v); err != nil {
			return err
		}
	}
	return nil
}

func getKeyed[V any](b *bolt.Bucket, m map[string]V) error {
	return b.ForEach(func(k, data []byte) error {
		var v V
		if err := json.Unmarshal(data, &v); err != nil {
			return fmt.Errorf("failed to decode %s: %w", k, err)
		}
		m[string(k)] = v
		return nil
	})
}

// putSequence stores items under big-endian sequence keys so that iteration
// returns them in their original order
func putSequence[T any](b *bolt.Bucket, items []T) error {
	for _, item := range items {
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		if err := putJSON(b, itob(seq), item); err != nil {
			return err
		}
	}
	return nil
}

func getSequence[T any](b *bolt.Bucket, out *[]T) error {
	items := []T{}
	err := b.ForEach(func(k, data []byte) error {
		var item T
		if err := json.Unmarshal(data, &item); err != nil {
			return fmt.Errorf("failed to decode item %d: %w", binary.BigEndian.Uint64(k), err)
		}
		items = append(items, item)
		return nil
	})
	if err != nil {
		return err
	}
	*out = items
	return nil
}

func itob(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}

var _ Store = (*BoltStore)(nil)
