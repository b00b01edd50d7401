package ochp

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthMethods_Or(t *testing.T) {
	a := NewAuthMethods(AuthMethodPublic)
	b := NewAuthMethods(AuthMethodRfidMifareCls, AuthMethodPublic)

	union := a.Or(b)
	assert.Equal(t, 2, union.Len())
	assert.True(t, union.Has(AuthMethodPublic))
	assert.True(t, union.Has(AuthMethodRfidMifareCls))

	// 原集合不变
	assert.Equal(t, 1, a.Len())
}

func TestAuthMethods_ItemsInFixedOrder(t *testing.T) {
	set := NewAuthMethods(AuthMethodIec15118, AuthMethodDirectCash, AuthMethodPublic)
	assert.Equal(t, []AuthMethod{AuthMethodPublic, AuthMethodDirectCash, AuthMethodIec15118}, set.Items())
	assert.Nil(t, AuthMethods{}.Items())
}

func TestReduceAuthMethods(t *testing.T) {
	reduced := ReduceAuthMethods(
		NewAuthMethods(AuthMethodRfidMifareCls),
		NewAuthMethods(AuthMethodRfidMifareDes),
		NewAuthMethods(),
		NewAuthMethods(AuthMethodRfidMifareCls, AuthMethodRfidCalypso),
	)

	assert.True(t, reduced.Equal(NewAuthMethods(AuthMethodRfidMifareCls, AuthMethodRfidMifareDes, AuthMethodRfidCalypso)))
	assert.True(t, ReduceAuthMethods().IsEmpty())
}

func TestAuthMethods_Equal(t *testing.T) {
	assert.True(t, NewAuthMethods().Equal(AuthMethods{}))
	assert.True(t, NewAuthMethods(AuthMethodLocalKey, AuthMethodPublic).Equal(NewAuthMethods(AuthMethodPublic, AuthMethodLocalKey)))
	assert.False(t, NewAuthMethods(AuthMethodLocalKey).Equal(NewAuthMethods(AuthMethodPublic)))
}

func TestAuthMethods_JSON(t *testing.T) {
	set := NewAuthMethods(AuthMethodRfidMifareDes, AuthMethodPublic)

	data, err := json.Marshal(set)
	require.NoError(t, err)
	assert.JSONEq(t, `["Public","RfidMifareDes"]`, string(data))

	var decoded AuthMethods
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, set.Equal(decoded))

	empty, err := json.Marshal(AuthMethods{})
	require.NoError(t, err)
	assert.Equal(t, "[]", string(empty))
}

func TestParseAuthMethod(t *testing.T) {
	m, err := ParseAuthMethod("DirectCreditcard")
	require.NoError(t, err)
	assert.Equal(t, AuthMethodDirectCreditcard, m)

	_, err = ParseAuthMethod("Bitcoin")
	assert.ErrorIs(t, err, ErrInvalidValue)
}
