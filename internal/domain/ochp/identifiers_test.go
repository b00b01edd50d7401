package ochp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEVSEID(t *testing.T) {
	tests := []struct {
		input   string
		want    EVSEID
		wantErr bool
	}{
		{input: "DE*GEF*E123456789*1", want: "DE*GEF*E123456789*1"},
		{input: "  DEGEFE1234  ", want: "DEGEFE1234"},
		{input: "", wantErr: true},
		{input: "DE-GEF-123456789", wantErr: true},
		{input: "de*gef*e1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseEVSEID(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidArgument)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTryParseContractID(t *testing.T) {
	id, ok := TryParseContractID("DE-GEF-123456789")
	assert.True(t, ok)
	assert.Equal(t, "DE-GEF-123456789", id.String())

	_, ok = TryParseContractID("DE-GEF")
	assert.False(t, ok)
}

func TestMustEVSEID_PanicsOnMalformedInput(t *testing.T) {
	assert.Panics(t, func() { MustEVSEID("nope") })
}

func TestEVSEID_OperatorPrefix(t *testing.T) {
	assert.Equal(t, "DE*GEF", MustEVSEID("DE*GEF*E123456789*1").OperatorPrefix())
	assert.Equal(t, "DE*GEF", MustEVSEID("DEGEFE1").OperatorPrefix())
}

func TestNewEMTID(t *testing.T) {
	id, err := NewEMTID(" 1234 ", "")
	require.NoError(t, err)
	assert.Equal(t, "1234", id.Instance)
	assert.Equal(t, TokenRepresentationPlain, id.Representation)
	assert.Equal(t, TokenTypeRFID, id.TokenType)
	assert.Equal(t, "rfid:1234", id.Key())

	_, err = NewEMTID("", TokenTypeRemote)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestEMTID_IsComparable(t *testing.T) {
	a := testEMTID("1234")
	b := testEMTID("1234")
	assert.True(t, a == b)
	assert.False(t, a == a.WithSubType(TokenSubTypeCalypso))
}

func TestRoamingAuthorisationInfo_IsExpired(t *testing.T) {
	auth := testAuthorisation("1234")
	assert.False(t, auth.IsExpired(testTime))
	assert.True(t, auth.IsExpired(testExpiry))
	assert.True(t, auth.IsExpired(testExpiry.Add(time.Second)))
}

func TestChargePointInfo_Equal(t *testing.T) {
	assert.True(t, testChargePointFull().Equal(testChargePointFull()))
	other := testChargePointFull()
	other.FloorLevel = nil
	assert.False(t, testChargePointFull().Equal(other))
}
