package export

import (
	"bytes"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Rehab-Center/Admin-Service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var fixedNow = time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)

func TestGetNestedValue(t *testing.T) {
	record := models.Record{
		"nombre": "Ana",
		"sede": map[string]any{
			"nombre": "Norte",
			"ciudad": map[string]any{"nombre": "Cali"},
		},
		"vacio": nil,
	}

	tests := []struct {
		name  string
		obj   any
		path  string
		want  any
		found bool
	}{
		{"top level", record, "nombre", "Ana", true},
		{"nested", record, "sede.ciudad.nombre", "Cali", true},
		{"missing segment", record, "sede.barrio.nombre", nil, false},
		{"through scalar", record, "nombre.x", nil, false},
		{"nil value", record, "vacio", nil, false},
		{"nil root", nil, "a.b", nil, false},
		{"empty path", record, "", record, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := GetNestedValue(tt.obj, tt.path)
			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizers(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"full name", FormatName(models.Record{"nombres": "Ana María", "apellidos": "Pérez"}), "Ana María Pérez"},
		{"name fallback", FormatName(models.Record{"nombre": "Sede Sur"}), "Sede Sur"},
		{"name missing", FormatName(models.Record{}), NotAvailable},
		{"location object address", FormatLocation(map[string]any{"direccion": "Cra 1 #2-3", "nombre": "Norte"}), "Cra 1 #2-3"},
		{"location object name", FormatLocation(map[string]any{"nombre": "Norte"}), "Norte"},
		{"location string", FormatLocation("Sede Centro"), "Sede Centro"},
		{"location nil", FormatLocation(nil), NotAvailable},
		{"status known", FormatStatus("activo"), "Activo"},
		{"status vencida", FormatStatus("VENCIDA"), "Vencida"},
		{"status passthrough", FormatStatus("suspendido"), "suspendido"},
		{"status empty", FormatStatus(""), NotAvailable},
		{"gender", FormatGender("FEMENINO"), "Femenino"},
		{"gender passthrough", FormatGender("OTRO"), "OTRO"},
		{"gender empty", FormatGender(nil), NotAvailable},
		{"document", FormatDocument(models.Record{"tipo_documento": "TI", "numero_documento": "1001"}), "TI: 1001"},
		{"document default type", FormatDocument(models.Record{"numero_documento": 1001.0}), "CC: 1001"},
		{"document missing", FormatDocument(models.Record{"tipo_documento": "TI"}), NotAvailable},
		{"currency", Currency(150000.0), "$\u00a0150.000"},
		{"currency text", Currency("gratis"), "gratis"},
		{"date", Date("2024-03-05"), "5/3/2024"},
		{"date text", Date("ayer"), "ayer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestAge(t *testing.T) {
	assert.Equal(t, "24 años", Age("2000-01-01", fixedNow).Or(""))
	assert.Equal(t, "23 años", Age("2000-06-02", fixedNow).Or(""))
	assert.Equal(t, "24 años", Age("2000-06-01", fixedNow).Or(""))
	assert.False(t, Age("2024-01-01", fixedNow).Present())
	assert.False(t, Age("2030-01-01", fixedNow).Present())
	assert.False(t, Age("no es fecha", fixedNow).Present())
	assert.False(t, Age(nil, fixedNow).Present())
}

func TestValue(t *testing.T) {
	assert.Equal(t, "x", Some("x").Or(NotAvailable))
	assert.Equal(t, NotAvailable, None().Or(NotAvailable))
	assert.True(t, Some("").Present())
	assert.False(t, None().Present())
}

func TestEscapeField(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"a,b", `"a,b"`},
		{`x"y`, `"x""y"`},
		{"line\nbreak", "\"line\nbreak\""},
		{" leading space", " leading space"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EscapeField(tt.in), tt.in)
	}
}

func TestToDelimitedText(t *testing.T) {
	headers := []Header{
		{Key: "", Label: "Nombre", Format: "name"},
		{Key: "sede", Label: "Sede", Format: "location"},
		{Key: "nota", Label: "Nota"},
		{Key: "fecha_nacimiento", Label: "Edad", Format: "age"},
	}
	records := []models.Record{
		{
			"nombres":          "Ana",
			"apellidos":        "Pérez",
			"sede":             map[string]any{"nombre": "Norte, Cali"},
			"nota":             `dijo "hola"`,
			"fecha_nacimiento": "2000-01-01",
		},
		{"nombre": "Luis"},
	}

	got := toDelimitedText(records, headers, fixedNow)
	want := "Nombre,Sede,Nota,Edad\n" +
		`Ana Pérez,"Norte, Cali","dijo ""hola""",24 años` + "\n" +
		"Luis,N/A,,"
	assert.Equal(t, want, got)
}

func TestToDelimitedTextEmpty(t *testing.T) {
	assert.Equal(t, "", ToDelimitedText(nil, []Header{{Key: "a", Label: "A"}}))
	assert.Equal(t, "", ToDelimitedText([]models.Record{}, nil))
}

func TestPresets(t *testing.T) {
	for _, name := range []string{"participants", "guardians", "sedes", "mensualidades"} {
		headers, ok := Preset(name)
		require.True(t, ok, name)
		assert.NotEmpty(t, headers)
	}
	_, ok := Preset("unknown")
	assert.False(t, ok)
	assert.Equal(t, []string{"guardians", "mensualidades", "participants", "sedes"}, PresetNames())

	headers, _ := Preset("participants")
	headers[0].Label = "changed"
	again, _ := Preset("participants")
	assert.Equal(t, "Nombre", again[0].Label)
}

func TestMensualidadPreset(t *testing.T) {
	headers, ok := Preset("mensualidades")
	require.True(t, ok)
	records := []models.Record{{
		"participant_id": "p-1",
		"mes":            3.0,
		"año":            2024.0,
		"valor":          80000.0,
		"estado":         "PAGADO",
	}}
	rows := Rows(records, headers, fixedNow)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"p-1", "Marzo", "2024", "$\u00a080.000", "Pagado", "", ""}, rows[0])
}

func TestLoadHeaders(t *testing.T) {
	headers, err := LoadHeaders([]byte("- {key: nombre, label: Nombre}\n- {key: valor, label: Valor, format: currency}\n"))
	require.NoError(t, err)
	assert.Equal(t, []Header{{Key: "nombre", Label: "Nombre"}, {Key: "valor", Label: "Valor", Format: "currency"}}, headers)

	_, err = LoadHeaders([]byte("- {key: a, label: A, format: roman}\n"))
	assert.Error(t, err)
}

func TestToWorkbook(t *testing.T) {
	headers := []Header{{Key: "nombre", Label: "Nombre"}, {Key: "valor", Label: "Valor", Format: "currency"}}
	records := []models.Record{{"nombre": "Ana", "valor": 50000.0}}

	data, err := toWorkbook(records, headers, fixedNow)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Nombre", "Valor"}, {"Ana", "$\u00a050.000"}}, rows)
}

func TestWriteDownload(t *testing.T) {
	w := httptest.NewRecorder()
	data := WithBOM("A,B\n1,2")

	require.NoError(t, WriteDownload(w, data, "participantes.csv", ContentTypeCSV))
	assert.Equal(t, ContentTypeCSV, w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="participantes.csv"`, w.Header().Get("Content-Disposition"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte{0xEF, 0xBB, 0xBF}))
}

func TestSaveFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.csv")

	require.NoError(t, SaveFile(path, []byte("a,b")))
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a,b", string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	err = SaveFile(filepath.Join(dir, "missing", "out.csv"), []byte("x"))
	assert.Error(t, err)
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "participantes_2024-06-01.csv", Filename("participantes", "csv", fixedNow))
}
