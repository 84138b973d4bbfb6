package models

import (
	"encoding/json"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseEnvelope(t *testing.T) {
	ok := OK("done", echo.Map{"count": 3})
	assert.True(t, ok.Success)
	assert.Equal(t, "done", ok.Message)

	fail := Fail("broken")
	assert.False(t, fail.Success)
	assert.Equal(t, "broken", fail.Message)
	assert.Nil(t, fail.Data)
}

// Payload fields serialize at the top level next to success and message,
// not nested under a data key.
func TestResponseFlattensPayload(t *testing.T) {
	raw, err := json.Marshal(OK("", echo.Map{
		"count":    2,
		"bookings": []string{"BK260830100001", "BK260830100002"},
	}))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"success": true,
		"count": 2,
		"bookings": ["BK260830100001", "BK260830100002"]
	}`, string(raw))
}

func TestResponseOmitsEmptyFields(t *testing.T) {
	raw, err := json.Marshal(OK("", nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true}`, string(raw))

	raw, err = json.Marshal(Fail("Booking not found"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"message":"Booking not found"}`, string(raw))
}
