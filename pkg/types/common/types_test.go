package common

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestID_Validate_ValidUUID(t *testing.T) {
	id := ID("550e8400-e29b-41d4-a716-446655440000")
	assert.NoError(t, id.Validate())
}

func TestID_Validate_EmptyString(t *testing.T) {
	err := ID("").Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be empty")
}

func TestID_Validate_InvalidFormat(t *testing.T) {
	err := ID("not-a-uuid").Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid ID format")
}

func TestNewID_GeneratesValidUUID(t *testing.T) {
	id := NewID()
	assert.NoError(t, id.Validate())
	assert.NotEqual(t, id, NewID())
}

func TestTimestamp_MarshalJSON(t *testing.T) {
	ts := Timestamp(time.Date(2023, 10, 27, 10, 0, 0, 0, time.UTC))
	data, err := json.Marshal(ts)
	require.NoError(t, err)
	assert.Equal(t, `"2023-10-27T10:00:00Z"`, string(data))
}

func TestTimestamp_UnmarshalJSON(t *testing.T) {
	var ts Timestamp
	require.NoError(t, json.Unmarshal([]byte(`"2023-10-27T10:00:00Z"`), &ts))
	assert.Equal(t, time.Date(2023, 10, 27, 10, 0, 0, 0, time.UTC), time.Time(ts))

	assert.Error(t, json.Unmarshal([]byte(`"invalid-date"`), &ts))
}

func TestNewSuccessResponse(t *testing.T) {
	resp := NewSuccessResponse([]string{"PTC_FM"})
	assert.True(t, resp.Success)
	assert.Nil(t, resp.Error)
	assert.Equal(t, []string{"PTC_FM"}, resp.Data)
	assert.False(t, time.Time(resp.Timestamp).IsZero())
}

func TestNewErrorResponse(t *testing.T) {
	resp := NewErrorResponse("MOL_002", "bond type not implemented", "code=7")
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "MOL_002", resp.Error.Code)
	assert.Equal(t, "code=7", resp.Error.Detail)

	data, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"data"`)
}

//Personal.AI order the ending
