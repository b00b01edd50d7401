package soap

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ochpBody() *etree.Element {
	el := etree.NewElement("OCHP:GetStatusRequest")
	el.CreateAttr("xmlns:OCHP", "http://ochp.eu/1.4")
	return el
}

func TestMarshalUnmarshal(t *testing.T) {
	data, err := Marshal(ochpBody())
	require.NoError(t, err)
	assert.Contains(t, string(data), `<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/">`)

	env, err := Unmarshal(data)
	require.NoError(t, err)
	assert.False(t, env.IsFault())
	require.NotNil(t, env.Body)
	assert.Equal(t, "GetStatusRequest", env.Body.Tag)
	assert.Equal(t, "http://ochp.eu/1.4", env.Body.NamespaceURI())
	assert.NotNil(t, env.Header)
}

func TestUnmarshal_ForeignPrefixes(t *testing.T) {
	text := `<?xml version="1.0"?>
<S:Envelope xmlns:S="http://schemas.xmlsoap.org/soap/envelope/" xmlns:ns="http://ochp.eu/1.4">
  <S:Body><ns:GetStatusResponse/></S:Body>
</S:Envelope>`

	env, err := Unmarshal([]byte(text))
	require.NoError(t, err)
	assert.Nil(t, env.Header)
	assert.Equal(t, "GetStatusResponse", env.Body.Tag)
	assert.Equal(t, "http://ochp.eu/1.4", env.Body.NamespaceURI())
}

func TestUnmarshal_Fault(t *testing.T) {
	fault := &Fault{Code: FaultCodeServer, String: "database unavailable", Detail: "retry later"}
	data, err := MarshalFault(fault)
	require.NoError(t, err)

	env, err := Unmarshal(data)
	require.NoError(t, err)
	require.True(t, env.IsFault())
	assert.Equal(t, fault, env.Fault)
	assert.Nil(t, env.Body)
	assert.Equal(t, "soapenv:Server: database unavailable (retry later)", env.Fault.Error())
}

func TestUnmarshal_Errors(t *testing.T) {
	tests := []struct {
		name string
		text string
		want error
	}{
		{"malformed", `<soapenv:Envelope`, nil},
		{"not an envelope", `<Envelope/>`, ErrNotEnvelope},
		{"soap 1.2 envelope", `<e:Envelope xmlns:e="http://www.w3.org/2003/05/soap-envelope"><e:Body/></e:Envelope>`, ErrNotEnvelope},
		{"missing body", `<e:Envelope xmlns:e="http://schemas.xmlsoap.org/soap/envelope/"/>`, ErrNotEnvelope},
		{"empty body", `<e:Envelope xmlns:e="http://schemas.xmlsoap.org/soap/envelope/"><e:Body/></e:Envelope>`, ErrEmptyBody},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Unmarshal([]byte(tt.text))
			require.Error(t, err)
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestFault_XMLDetail(t *testing.T) {
	text := `<e:Envelope xmlns:e="http://schemas.xmlsoap.org/soap/envelope/"><e:Body><e:Fault>
<faultcode>e:Client</faultcode><faultstring>bad</faultstring><detail><reason>schema</reason></detail>
</e:Fault></e:Body></e:Envelope>`

	env, err := Unmarshal([]byte(text))
	require.NoError(t, err)
	require.True(t, env.IsFault())
	assert.Equal(t, "e:Client", env.Fault.Code)
	assert.Contains(t, env.Fault.Detail, "<reason>schema</reason>")
}

func TestParseFault_Detail(t *testing.T) {
	tests := []struct {
		name   string
		detail string
		want   string
	}{
		{"text", `<detail>  retry later  </detail>`, "retry later"},
		{"empty", `<detail/>`, ""},
		{"first element only", `<detail><a>1</a><b>2</b></detail>`, "<a>1</a>"},
		{"nested element", `<detail><err code="42"><msg>x</msg></err></detail>`, `<err code="42"><msg>x</msg></err>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := etree.NewDocument()
			require.NoError(t, doc.ReadFromString(`<Fault><faultcode>c</faultcode>`+tt.detail+`</Fault>`))

			f := parseFault(doc.Root())
			assert.Equal(t, "c", f.Code)
			assert.Equal(t, tt.want, f.Detail)
		})
	}
}

func TestSOAPActionFromHeader(t *testing.T) {
	assert.Equal(t, "UpdateStatusRequest", SOAPActionFromHeader(`"UpdateStatusRequest"`))
	assert.Equal(t, "UpdateStatusRequest", SOAPActionFromHeader(` UpdateStatusRequest `))
	assert.Equal(t, "", SOAPActionFromHeader(`""`))
}
