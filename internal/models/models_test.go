package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordID(t *testing.T) {
	tests := []struct {
		name   string
		record Record
		want   string
	}{
		{"string id", Record{"id": "abc"}, "abc"},
		{"numeric id", Record{"id": 5.0}, "5"},
		{"mongo id", Record{"_id": "64f0"}, "64f0"},
		{"id wins over _id", Record{"id": "a", "_id": "b"}, "a"},
		{"empty id falls back", Record{"id": "", "_id": "b"}, "b"},
		{"none", Record{"nombre": "x"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.record.ID())
		})
	}
}

func TestRecordString(t *testing.T) {
	r := Record{"doc": "  123 ", "n": 12.5, "nil": nil}
	assert.Equal(t, "123", r.String("doc"))
	assert.Equal(t, "12.5", r.String("n"))
	assert.Equal(t, "", r.String("nil"))
	assert.Equal(t, "", r.String("missing"))
}

func TestStringify(t *testing.T) {
	assert.Equal(t, "1000000", Stringify(1e6))
	assert.Equal(t, "42", Stringify(42))
	assert.Equal(t, "true", Stringify(true))
	assert.Equal(t, "participants", Stringify(KindParticipant))
	assert.Equal(t, "[1 2]", Stringify([]int{1, 2}))
}

func TestKind(t *testing.T) {
	for _, k := range Kinds() {
		parsed, ok := ParseKind(k.Collection())
		require.True(t, ok)
		assert.Equal(t, k, parsed)
		assert.True(t, k.Valid())
	}
	_, ok := ParseKind("users")
	assert.False(t, ok)
	assert.False(t, Kind(7).Valid())
	assert.Equal(t, "acudiente", KindGuardian.Label())
	assert.Equal(t, "participants.deleted", RecordSubject(KindParticipant, "deleted"))
}

func TestFormNumber(t *testing.T) {
	var form MensualidadForm
	err := json.Unmarshal([]byte(`{"participant_id":"p-1","valor":80000,"mes":"3","año":null}`), &form)
	require.NoError(t, err)

	assert.Equal(t, "80000", form.Valor.String())
	assert.Equal(t, "3", form.Mes.String())
	assert.Equal(t, "", form.Anio.String())

	err = json.Unmarshal([]byte(`{"valor":"abc"}`), &form)
	require.NoError(t, err)
	assert.Equal(t, FormNumber("abc"), form.Valor)
}

func TestValidationResult(t *testing.T) {
	assert.Equal(t, "", Valid().Message())
	assert.Equal(t, "boom", Invalid("boom").Message())

	data, err := json.Marshal(Valid())
	require.NoError(t, err)
	assert.JSONEq(t, `{"isValid":true,"error":null}`, string(data))
}
