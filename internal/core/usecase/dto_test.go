package usecase

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewCountRecord(t *testing.T) {
	rec, err := newCountRecord("orders", "alice", 7)
	require.NoError(t, err)
	require.Equal(t, "orders", rec.Topic)
	require.Equal(t, []byte("alice"), rec.Key)
	require.JSONEq(t, `{"count":7}`, string(rec.Value))
	require.Equal(t, `{"count":7}`, string(rec.Value))

	d, err := UnmarshalCountJSON(rec.Value)
	require.NoError(t, err)
	require.Equal(t, 7, d.Count)
}

func TestUnmarshalCountJSON_Invalid(t *testing.T) {
	_, err := UnmarshalCountJSON([]byte("{"))
	require.Error(t, err)
}
