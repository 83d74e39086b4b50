package navigation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResult_StableCodes(t *testing.T) {
	assert.EqualValues(t, 0, NextTile)
	assert.EqualValues(t, 1, Pending)
	assert.EqualValues(t, 2, Completed)
	assert.EqualValues(t, 3, PathNotFound)
}

func TestResult_String(t *testing.T) {
	assert.Equal(t, "Completed", Completed.String())
	assert.Equal(t, "PathNotFound", PathNotFound.String())
	assert.Equal(t, "Result(9)", Result(9).String())
}

func TestResult_JSONIsNumeric(t *testing.T) {
	data, err := json.Marshal(struct {
		R Result `json:"r"`
	}{PathNotFound})
	require.NoError(t, err)
	assert.JSONEq(t, `{"r":3}`, string(data))

	var r Result
	require.NoError(t, json.Unmarshal([]byte(`1`), &r))
	assert.Equal(t, Pending, r)
}

func TestResult_JSONRejectsUnknown(t *testing.T) {
	_, err := json.Marshal(Result(4))
	assert.Error(t, err)

	var r Result
	assert.Error(t, json.Unmarshal([]byte(`4`), &r))
	assert.Error(t, json.Unmarshal([]byte(`"Completed"`), &r))
}
