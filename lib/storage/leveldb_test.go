package storage

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"conclave.io/conclave/lib/common"
	"conclave.io/conclave/lib/errors"
)

func TestLevelDBBackendNewGetSet(t *testing.T) {
	st := NewTestStorage()
	defer st.Close()

	type record struct {
		Address string
		Votes   uint64
	}

	input := record{Address: "GABC", Votes: 10}
	require.NoError(t, st.New("tl-GABC", input))

	{
		err := st.New("tl-GABC", input)
		require.Equal(t, errors.StorageRecordAlreadyExists, err)
	}

	var fetched record
	require.NoError(t, st.Get("tl-GABC", &fetched))
	require.Equal(t, input, fetched)

	input.Votes = 20
	require.NoError(t, st.Set("tl-GABC", input))
	require.NoError(t, st.Get("tl-GABC", &fetched))
	require.Equal(t, uint64(20), fetched.Votes)

	{
		err := st.Set("tl-unknown", input)
		require.Equal(t, errors.StorageRecordDoesNotExist, err)
	}
}

func TestLevelDBBackendRemove(t *testing.T) {
	st := NewTestStorage()
	defer st.Close()

	require.NoError(t, st.New("rm-0", "showme"))
	require.NoError(t, st.Remove("rm-0"))

	exists, err := st.Has("rm-0")
	require.NoError(t, err)
	require.False(t, exists)

	require.Equal(t, errors.StorageRecordDoesNotExist, st.Remove("rm-0"))
}

func TestLevelDBBackendTransaction(t *testing.T) {
	st := NewTestStorage()
	defer st.Close()

	{
		ts, err := st.OpenTransaction()
		require.NoError(t, err)
		require.NoError(t, ts.New("tx-a", "first"))
		require.NoError(t, ts.New("tx-b", "second"))
		require.NoError(t, ts.Commit())

		exists, err := st.Has("tx-a")
		require.NoError(t, err)
		require.True(t, exists)
		exists, err = st.Has("tx-b")
		require.NoError(t, err)
		require.True(t, exists)
	}

	{
		ts, err := st.OpenTransaction()
		require.NoError(t, err)
		require.NoError(t, ts.New("tx-c", "discarded"))
		require.NoError(t, ts.Discard())

		exists, err := st.Has("tx-c")
		require.NoError(t, err)
		require.False(t, exists)
	}

	// Commit/Discard only apply to transaction backends
	require.Error(t, st.Commit())
	require.Error(t, st.Discard())
}

func TestLevelDBBackendIterator(t *testing.T) {
	st := NewTestStorage()
	defer st.Close()

	total := 10
	for i := 0; i < total; i++ {
		require.NoError(t, st.New(fmt.Sprintf("it-%020d", i), i))
	}
	require.NoError(t, st.New("zz-0", "unrelated"))

	{
		var collected []int
		iterFunc, closeFunc := st.GetIterator("it-", nil)
		for {
			item, hasNext := iterFunc()
			if !hasNext {
				break
			}
			var v int
			require.NoError(t, common.DecodeJSONValue(item.Value, &v))
			collected = append(collected, v)
		}
		closeFunc()

		require.Equal(t, total, len(collected))
		for i, v := range collected {
			require.Equal(t, i, v)
		}
	}

	{
		iterFunc, closeFunc := st.GetIterator("it-", NewDefaultListOptions(true, nil, 0))
		item, hasNext := iterFunc()
		require.True(t, hasNext)
		require.Equal(t, fmt.Sprintf("it-%020d", total-1), string(item.Key))
		closeFunc()
	}

	{
		var collected int
		iterFunc, closeFunc := st.GetIterator("it-", NewDefaultListOptions(false, nil, 3))
		for {
			if _, hasNext := iterFunc(); !hasNext {
				break
			}
			collected++
		}
		closeFunc()

		require.Equal(t, 3, collected)
	}
}
