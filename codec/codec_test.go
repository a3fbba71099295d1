package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/bkgo/bktree"
)

func TestJSONRecordsRoundTrip(t *testing.T) {
	tree := bktree.New()
	for _, term := range []string{"Carditis", "Cardiitis", "Arthritis"} {
		tree.Insert(term)
	}
	records := tree.Records()

	data, err := JSON{}.Marshal(records)
	require.NoError(t, err)

	var decoded []bktree.Record
	require.NoError(t, JSON{}.Unmarshal(data, &decoded))
	assert.Equal(t, records, decoded)

	rebuilt, err := bktree.FromRecords(decoded)
	require.NoError(t, err)
	assert.Equal(t, tree.Search("Carditis", 4), rebuilt.Search("Carditis", 4))
}

func TestByName(t *testing.T) {
	c, ok := ByName("json")
	require.True(t, ok)
	assert.Equal(t, "json", c.Name())

	_, ok = ByName("msgpack")
	assert.False(t, ok)
}
