package models_test

import (
	"encoding/json"
	"testing"

	"servicedesk/models"

	"github.com/stretchr/testify/require"
)

func TestMoneyJSON(t *testing.T) {
	var in struct {
		A models.Money `json:"a"`
		B models.Money `json:"b"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a": 12.5, "b": "3.456"}`), &in))

	out, err := json.Marshal(in)
	require.NoError(t, err)
	require.JSONEq(t, `{"a": "12.50", "b": "3.46"}`, string(out))
}

func TestMoneyScan(t *testing.T) {
	var m models.Money
	require.NoError(t, m.Scan(float64(99.9)))
	require.Equal(t, "99.90", m.String())

	require.NoError(t, m.Scan([]byte("1500.00")))
	require.True(t, m.Equal(models.MustMoney("1500")))
}

func TestMoneyRejectsGarbage(t *testing.T) {
	var m models.Money
	require.Error(t, json.Unmarshal([]byte(`"twelve"`), &m))
}
