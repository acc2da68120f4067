package dbutil

import (
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func TestFinalizeRebindsPlaceholders(t *testing.T) {
	query, args := Finalize("SELECT * FROM assets WHERE user_id=? AND id=?", []interface{}{"u1", "a1"})
	require.Equal(t, "SELECT * FROM assets WHERE user_id=$1 AND id=$2", query)
	require.Equal(t, []interface{}{"u1", "a1"}, args)
}

func TestFinalizeRewritesLimit(t *testing.T) {
	query, args := Finalize("SELECT * FROM assets WHERE user_id=? LIMIT ?,?", []interface{}{"u1", 20, 10})
	require.Equal(t, "SELECT * FROM assets WHERE user_id=$1 LIMIT $2 OFFSET $3", query)
	require.Equal(t, []interface{}{"u1", 10, 20}, args)
}

func TestIsConflict(t *testing.T) {
	require.True(t, IsConflict(&pq.Error{Code: "23505"}))
	require.False(t, IsConflict(&pq.Error{Code: "23503"}))
	require.False(t, IsConflict(errors.New("plain")))
	require.False(t, IsConflict(nil))
}
