package state

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/securespot/securespot-go/internal/model"
	"github.com/securespot/securespot-go/internal/store"
)

func TestParkingIssueThenClearLeavesNothingPersisted(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	holder := NewParkingToken(st)

	require.NoError(t, holder.Issue(ctx, "PK-123"))
	_, err := st.Get(ctx, store.KeyParkingToken)
	require.NoError(t, err)

	require.NoError(t, holder.Clear(ctx))
	_, err = st.Get(ctx, store.KeyParkingToken)
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, ok := holder.Record()
	assert.False(t, ok)
}

func TestParkingRecordSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()

	holder := NewParkingToken(st)
	require.NoError(t, holder.Issue(ctx, "PK-123"))

	restarted := NewParkingToken(st)
	restarted.Load(ctx)
	record, ok := restarted.Record()
	require.True(t, ok)
	assert.Equal(t, "PK-123", record.Token)
}

func TestParkingIssueReplacesPriorRecord(t *testing.T) {
	ctx := context.Background()
	holder := NewParkingToken(store.NewMemory())

	require.NoError(t, holder.Issue(ctx, "PK-old"))
	require.NoError(t, holder.Issue(ctx, "PK-new"))

	record, ok := holder.Record()
	require.True(t, ok)
	assert.Equal(t, "PK-new", record.Token)
}

func TestParkingSnapshotDerivesStatus(t *testing.T) {
	ctx := context.Background()
	holder := NewParkingToken(store.NewMemory())
	require.NoError(t, holder.Issue(ctx, "PK-123"))

	record, ok := holder.Record()
	require.True(t, ok)
	issued := record.IssuedAt()

	snapshot, ok := holder.Snapshot(issued.Add(1801 * time.Second))
	require.True(t, ok)
	assert.Equal(t, model.ParkingInactive, snapshot.Status)
	assert.Equal(t, int64(1801), snapshot.ElapsedSeconds)
	assert.Equal(t, "30:01", model.FormatElapsed(snapshot.ElapsedSeconds))
}

func TestParkingLoadDiscardsCorruptRecord(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	require.NoError(t, st.Set(ctx, store.KeyParkingToken, "not json"))

	holder := NewParkingToken(st)
	holder.Load(ctx)
	_, ok := holder.Record()
	assert.False(t, ok)
}

func TestParkingSnapshotEmptyHolder(t *testing.T) {
	holder := NewParkingToken(store.NewMemory())
	_, ok := holder.Snapshot(time.Now())
	assert.False(t, ok)
}
