package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testUpload struct {
	EVSEID     string   `validate:"required,ochp_evse_id"`
	ContractID string   `validate:"omitempty,ochp_contract_id"`
	Country    string   `validate:"omitempty,ochp_country"`
	CDRs       []string `validate:"required,min=1,dive,ochp_cdr_id"`
}

func TestNewValidator(t *testing.T) {
	validator := NewValidator()
	assert.NotNil(t, validator)
	assert.NotNil(t, validator.validate)
}

func TestDefault_ReturnsSharedInstance(t *testing.T) {
	assert.Same(t, Default(), Default())
}

func TestValidator_ValidateStruct(t *testing.T) {
	validator := NewValidator()

	tests := []struct {
		name    string
		value   testUpload
		wantTag string
	}{
		{
			name:  "valid upload",
			value: testUpload{EVSEID: "DE*GEF*E123456789*1", ContractID: "DE-GEF-123456789", Country: "DEU", CDRs: []string{"DEGEF1234AABBCC5678"}},
		},
		{
			name:    "missing evse id",
			value:   testUpload{CDRs: []string{"CDR1"}},
			wantTag: "required",
		},
		{
			name:    "malformed evse id",
			value:   testUpload{EVSEID: "not-an-evse", CDRs: []string{"CDR1"}},
			wantTag: "ochp_evse_id",
		},
		{
			name:    "malformed contract id",
			value:   testUpload{EVSEID: "DE*GEF*E1", ContractID: "DE_GEF", CDRs: []string{"CDR1"}},
			wantTag: "ochp_contract_id",
		},
		{
			name:    "empty collection",
			value:   testUpload{EVSEID: "DE*GEF*E1", CDRs: []string{}},
			wantTag: "min",
		},
		{
			name:    "nil collection",
			value:   testUpload{EVSEID: "DE*GEF*E1"},
			wantTag: "required",
		},
		{
			name:    "bad country",
			value:   testUpload{EVSEID: "DE*GEF*E1", Country: "DE", CDRs: []string{"CDR1"}},
			wantTag: "ochp_country",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(tt.value)
			if tt.wantTag == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			errs, ok := err.(ValidationErrors)
			require.True(t, ok)
			require.NotEmpty(t, errs)
			assert.Equal(t, tt.wantTag, errs[0].Tag)
			assert.NotEmpty(t, errs.Error())
		})
	}
}

func TestPatterns(t *testing.T) {
	assert.True(t, EVSEIDPattern.MatchString("DE*GEF*E123456789*1"))
	assert.True(t, EVSEIDPattern.MatchString("DEGEFE123456789"))
	assert.False(t, EVSEIDPattern.MatchString("DE*GEF*P123"))
	assert.True(t, ParkingIDPattern.MatchString("DE*GEF*P123"))
	assert.True(t, ContractIDPattern.MatchString("DE-GEF-123456789"))
	assert.True(t, ContractIDPattern.MatchString("DEGEF123456789X"))
	assert.True(t, ProviderIDPattern.MatchString("DE-GEF"))
	assert.False(t, ProviderIDPattern.MatchString("DE-GEFX"))
	assert.True(t, CDRIDPattern.MatchString("DEGEF1234AABBCC5678"))
	assert.False(t, CDRIDPattern.MatchString(""))
}
