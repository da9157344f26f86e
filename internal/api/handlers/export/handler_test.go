package export

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Rehab-Center/Admin-Service/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type fakeReader struct {
	records []models.Record
	err     error
}

func (f fakeReader) ExportRecords(_ context.Context, preset string) ([]models.Record, bool, error) {
	if preset == "sedes" || preset == "participants" {
		return f.records, true, f.err
	}
	return nil, false, nil
}

type fakeArchive struct {
	objects map[string][]byte
	err     error
}

func (f *fakeArchive) PutBytes(_ context.Context, name string, data []byte, _ string) error {
	if f.err != nil {
		return f.err
	}
	f.objects[name] = data
	return nil
}

type fakeAnnouncer struct {
	events []models.ExportEvent
}

func (f *fakeAnnouncer) AnnounceExport(ev models.ExportEvent) {
	f.events = append(f.events, ev)
}

func setup(reader Reader, archive Archive, ann Announcer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(reader, archive, ann)
	h.now = func() time.Time { return time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC) }
	r := gin.New()
	h.Register(r.Group("/api"))
	return r
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

var sedes = []models.Record{
	{"id": "s-1", "nombre": "Sede Norte", "ciudad": "Bogotá"},
}

func TestDownloadCSV(t *testing.T) {
	r := setup(fakeReader{records: sedes}, nil, nil)

	w := get(r, "/api/export/sedes")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv;charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "sedes_2024-03-09.csv")
	assert.True(t, strings.HasPrefix(w.Body.String(), "\ufeff"))
	assert.Contains(t, w.Body.String(), "Sede Norte")
}

func TestDownloadWorkbook(t *testing.T) {
	r := setup(fakeReader{records: sedes}, nil, nil)

	w := get(r, "/api/export/sedes?format=xlsx")
	require.Equal(t, http.StatusOK, w.Code)

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Contains(t, rows[1], "Sede Norte")
}

func TestDownloadErrors(t *testing.T) {
	tests := []struct {
		name   string
		reader Reader
		path   string
		want   int
	}{
		{"unknown preset", fakeReader{}, "/api/export/nope", http.StatusNotFound},
		{"bad format", fakeReader{}, "/api/export/sedes?format=pdf", http.StatusBadRequest},
		{"store failure", fakeReader{err: errors.New("down")}, "/api/export/sedes", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(setup(tt.reader, nil, nil), tt.path)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestDownloadArchive(t *testing.T) {
	archive := &fakeArchive{objects: map[string][]byte{}}
	ann := &fakeAnnouncer{}
	r := setup(fakeReader{records: sedes}, archive, ann)

	w := get(r, "/api/export/sedes?archive=true")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, archive.objects, "exports/sedes_2024-03-09.csv")
	require.Len(t, ann.events, 1)
	assert.Equal(t, 1, ann.events[0].Rows)

	failing := &fakeArchive{err: errors.New("bucket gone")}
	ann = &fakeAnnouncer{}
	w = get(setup(fakeReader{records: sedes}, failing, ann), "/api/export/sedes?archive=1")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, ann.events)
}

func TestPresets(t *testing.T) {
	w := get(setup(fakeReader{}, nil, nil), "/api/export")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "mensualidades")
}
