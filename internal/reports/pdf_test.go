package reports

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/broxB/AgroPlan-sub000/internal/field"
	"github.com/broxB/AgroPlan-sub000/internal/guidelines"
)

func TestWriteBalancePDF(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	rec, err := f.store.FieldByID(ctx, f.fieldIDs["Winterweizen"])
	require.NoError(t, err)
	require.NotNil(t, rec)

	snapshot, err := field.NewBuilder(f.store, guidelines.New("../../guidelines")).Build(ctx, *rec)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteBalancePDF(&buf, snapshot))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}
