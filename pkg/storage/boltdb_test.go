package storage

import (
	"context"
	"testing"
	"time"

	"github.com/cuemby/clusterview/pkg/state"
	"github.com/cuemby/clusterview/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *BoltStore {
	t.Helper()
	store, err := NewBoltStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func populated() *state.Snapshot {
	snap := state.NewSnapshot()
	snap = state.Reduce(snap, state.NodesFetched{
		Nodes: types.Nodes{
			"worker-1": {
				Detail: types.NodeDetail{Hostname: "worker-1", Status: "Ready"},
				NICs: types.NICs{
					"eth0": {Type: types.NICTypePhysical, IP: "10.0.0.2", Traffic: types.NICTraffic{
						ReceiveBytesTotal: []types.Sample{{Timestamp: 1, Value: 100}, {Timestamp: 2, Value: 150}},
					}},
				},
			},
			"master": {Detail: types.NodeDetail{Hostname: "master"}},
		},
		Order: []string{"worker-1", "master"},
	})
	snap = state.Reduce(snap, state.PodsFetched{
		Pods:  types.Pods{"web-0": {PodName: "web-0", Namespace: "dev"}},
		Order: []string{"web-0"},
	})
	snap = state.Reduce(snap, state.ServicesFetched{
		Services: []types.Service{{ID: "s2", Name: "b"}, {ID: "s1", Name: "a"}, {ID: "s3", Name: "c"}},
	})
	snap = state.Reduce(snap, state.NamespacesFetched{
		Namespaces: []types.Namespace{{ID: "n1", Name: "dev"}},
	})
	snap = state.Reduce(snap, state.PodRecordsFetched{
		Records: []types.PodRecord{{ID: "p1", Name: "web-0", Namespace: "dev"}},
	})
	return snap
}

func TestLoadWithoutCheckpoint(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Load()
	assert.ErrorIs(t, err, ErrNoCheckpoint)

	savedAt, err := store.SavedAt()
	require.NoError(t, err)
	assert.True(t, savedAt.IsZero())
}

func TestSaveLoad(t *testing.T) {
	store := newTestStore(t)
	snap := populated()

	require.NoError(t, store.Save(snap))

	loaded, err := store.Load()
	require.NoError(t, err)

	assert.Equal(t, snap.Nodes, loaded.Nodes)
	assert.Equal(t, snap.NodesNICs, loaded.NodesNICs)
	assert.Equal(t, snap.Pods, loaded.Pods)
	assert.Equal(t, snap.PodRecords, loaded.PodRecords)
	assert.Equal(t, snap.AllNodes, loaded.AllNodes)
	assert.Equal(t, snap.AllPods, loaded.AllPods)
	assert.Equal(t, snap.Namespaces, loaded.Namespaces)

	// Sequence order survives the round trip
	require.Len(t, loaded.Services, 3)
	assert.Equal(t, "s2", loaded.Services[0].ID)
	assert.Equal(t, "s1", loaded.Services[1].ID)
	assert.Equal(t, "s3", loaded.Services[2].ID)

	for _, k := range state.Kinds {
		assert.Equal(t, state.KindIdle, loaded.StatusOf(k).Phase)
	}

	savedAt, err := store.SavedAt()
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), savedAt, time.Minute)
}

func TestSaveReplaces(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save(populated()))

	next := state.Reduce(populated(), state.ServicesFetched{Services: []types.Service{{ID: "only"}}})
	next = state.Reduce(next, state.PodsFetched{Pods: types.Pods{}})
	require.NoError(t, store.Save(next))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, []types.Service{{ID: "only"}}, loaded.Services)
	assert.Empty(t, loaded.Pods)
	assert.Empty(t, loaded.AllPods)
}

func TestSaveNil(t *testing.T) {
	store := newTestStore(t)
	assert.Error(t, store.Save(nil))
}

func TestReopen(t *testing.T) {
	dir := t.TempDir()

	store, err := NewBoltStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Save(populated()))
	require.NoError(t, store.Close())

	store, err = NewBoltStore(dir)
	require.NoError(t, err)
	defer store.Close()

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"worker-1", "master"}, loaded.AllNodes)
}

func TestRestore(t *testing.T) {
	store := newTestStore(t)
	target := state.NewStore()

	ok, err := Restore(store, target)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Save(populated()))
	ok, err = Restore(store, target)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"worker-1", "master"}, target.Snapshot().AllNodes)
	assert.Len(t, target.Snapshot().NodesNICs["worker-1"]["eth0"].Traffic.ReceiveBytesTotal, 2)
}

func TestCheckpointer(t *testing.T) {
	store := newTestStore(t)
	source := state.NewStore(state.WithInitial(populated()))

	cp := NewCheckpointer(store, source, time.Hour, nil)
	require.NoError(t, cp.Checkpoint())
	first, err := store.SavedAt()
	require.NoError(t, err)

	// Unchanged snapshot is not written again
	require.NoError(t, cp.Checkpoint())
	again, err := store.SavedAt()
	require.NoError(t, err)
	assert.Equal(t, first, again)

	// Run saves once more on shutdown
	source.Dispatch(state.NamespaceCreated{Namespace: types.Namespace{ID: "n2", Name: "prod"}})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, cp.Run(ctx))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Len(t, loaded.Namespaces, 2)
}
