package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionModesValueAndScan(t *testing.T) {
	modes := SessionModes{SessionOnline, SessionInHouse}

	v, err := modes.Value()
	require.NoError(t, err)
	assert.Equal(t, `["ONLINE","IN_HOUSE"]`, v)

	var fromString SessionModes
	require.NoError(t, fromString.Scan(`["IN_HOUSE"]`))
	assert.Equal(t, SessionModes{SessionInHouse}, fromString)

	var fromBytes SessionModes
	require.NoError(t, fromBytes.Scan([]byte(`["ONLINE"]`)))
	assert.True(t, fromBytes.Has(SessionOnline))
	assert.False(t, fromBytes.Has(SessionInHouse))

	var fromNil SessionModes
	require.NoError(t, fromNil.Scan(nil))
	assert.Nil(t, fromNil)

	assert.Error(t, fromNil.Scan(42))
}

func TestSessionModesNilValueIsEmptyArray(t *testing.T) {
	var modes SessionModes
	v, err := modes.Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)
}

func TestSessionModesNormalize(t *testing.T) {
	modes := SessionModes{SessionInHouse, SessionOnline, SessionInHouse}
	assert.Equal(t, SessionModes{SessionInHouse, SessionOnline}, modes.Normalize())
}

func TestBookingStatus(t *testing.T) {
	assert.True(t, StatusPending.Valid())
	assert.True(t, StatusConfirmed.Valid())
	assert.True(t, StatusCancelled.Valid())
	assert.False(t, BookingStatus("DONE").Valid())

	assert.True(t, StatusPending.Active())
	assert.True(t, StatusConfirmed.Active())
	assert.False(t, StatusCancelled.Active())
}

func TestBookingBeforeCreateDefaults(t *testing.T) {
	b := &Booking{}
	require.NoError(t, b.BeforeCreate(nil))
	assert.NotEmpty(t, b.ID)
	assert.Equal(t, StatusPending, b.Status)

	kept := &Booking{Base: Base{ID: "fixed"}, Status: StatusConfirmed}
	require.NoError(t, kept.BeforeCreate(nil))
	assert.Equal(t, "fixed", kept.ID)
	assert.Equal(t, StatusConfirmed, kept.Status)
}

func TestRole(t *testing.T) {
	assert.True(t, RoleUser.Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("ROOT").Valid())
	assert.True(t, (&User{Role: RoleAdmin}).IsAdmin())
}
