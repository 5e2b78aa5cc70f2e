package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/relmap/internal/clause"
	"github.com/roach88/relmap/internal/model"
	"github.com/roach88/relmap/internal/schema"
)

func TestRecordRevision_AssignsSeqAndID(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	rev, created, err := s.RecordRevision(ctx, createTestRevision("fp-a", "sqlite"))
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, int64(1), rev.Seq)
	assert.Equal(t, "rev-1", rev.ID)
	assert.Equal(t, 1, rev.TableCount)

	got, err := s.GetRevision(ctx, "rev-1")
	require.NoError(t, err)
	assert.Equal(t, rev, got)
}

func TestRecordRevision_IdempotentPerFingerprintAndDialect(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	first, created, err := s.RecordRevision(ctx, createTestRevision("fp-a", "sqlite"))
	require.NoError(t, err)
	require.True(t, created)

	again, created, err := s.RecordRevision(ctx, createTestRevision("fp-a", "sqlite"))
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first, again)

	other, created, err := s.RecordRevision(ctx, createTestRevision("fp-a", "postgres"))
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "rev-2", other.ID)

	all, err := s.ListRevisions(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestRecordRevision_KeepsCallerID(t *testing.T) {
	s := createTestStore(t)

	rev := createTestRevision("fp-a", "sqlite")
	rev.ID = "custom"
	got, _, err := s.RecordRevision(context.Background(), rev)
	require.NoError(t, err)
	assert.Equal(t, "custom", got.ID)
}

func TestRecordRevision_RequiresKey(t *testing.T) {
	s := createTestStore(t)

	_, _, err := s.RecordRevision(context.Background(), createTestRevision("", "sqlite"))
	assert.Error(t, err)
	_, _, err = s.RecordRevision(context.Background(), createTestRevision("fp", ""))
	assert.Error(t, err)
}

func TestLatestRevision(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	_, err := s.LatestRevision(ctx, "sqlite")
	assert.True(t, errors.Is(err, ErrNotFound))

	for _, fp := range []string{"fp-1", "fp-2", "fp-3"} {
		_, _, err := s.RecordRevision(ctx, createTestRevision(fp, "sqlite"))
		require.NoError(t, err)
	}
	_, _, err = s.RecordRevision(ctx, createTestRevision("fp-4", "postgres"))
	require.NoError(t, err)

	latest, err := s.LatestRevision(ctx, "sqlite")
	require.NoError(t, err)
	assert.Equal(t, "fp-3", latest.Fingerprint)
	assert.Equal(t, int64(3), latest.Seq)
}

func TestListRevisions_OrderedBySeq(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	empty, err := s.ListRevisions(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	for _, fp := range []string{"c", "a", "b"} {
		_, _, err := s.RecordRevision(ctx, createTestRevision(fp, "sqlite"))
		require.NoError(t, err)
	}

	all, err := s.ListRevisions(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"c", "a", "b"}, []string{all[0].Fingerprint, all[1].Fingerprint, all[2].Fingerprint})
	assert.Equal(t, []TableSummary{{Name: "T", Checks: 0}}, all[2].Tables)
}

func TestGetRevision_NotFound(t *testing.T) {
	s := createTestStore(t)

	_, err := s.GetRevision(context.Background(), "nope")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestNewRevision_SummarizesSchema(t *testing.T) {
	url := schema.MustField("URL", schema.TypeText, true)
	tbl := model.NewTable("Sites", url)
	c, err := clause.NewNullity(url, clause.IsNotNull)
	require.NoError(t, err)
	require.NoError(t, tbl.AddCheck("url_ok", c))
	other := model.NewTable("Empty", schema.MustField("A", schema.TypeInt32, false))

	s := &model.Schema{Tables: []*model.Table{tbl, other}}
	rev := NewRevision(model.MustFingerprint(s), "sqlite", "DDL", s)

	assert.Equal(t, 2, rev.TableCount)
	assert.Equal(t, []TableSummary{{Name: "Sites", Checks: 1}, {Name: "Empty", Checks: 0}}, rev.Tables)

	st := createTestStore(t)
	stored, created, err := st.RecordRevision(context.Background(), rev)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, rev.Tables, stored.Tables)
}
