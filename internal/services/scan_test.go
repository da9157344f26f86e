package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeObjects struct {
	content string
	openErr error
	deleted []string
}

func (f *fakeObjects) OpenFile(context.Context, string) (io.ReadCloser, error) {
	if f.openErr != nil {
		return nil, f.openErr
	}
	return io.NopCloser(strings.NewReader(f.content)), nil
}

func (f *fakeObjects) DeleteFile(_ context.Context, objectName string) error {
	f.deleted = append(f.deleted, objectName)
	return nil
}

type fakeRecorder struct {
	statuses map[string]string
}

func (f *fakeRecorder) UpdateScanStatus(_ context.Context, fileID, status string) error {
	f.statuses[fileID] = status
	return nil
}

func newTestScanner(objects *fakeObjects, recorder *fakeRecorder) *Scanner {
	return &Scanner{
		objects:  objects,
		recorder: recorder,
		scan: func(r io.Reader) (bool, string, error) {
			data, _ := io.ReadAll(r)
			if strings.Contains(string(data), "EICAR") {
				return true, "Eicar-Test-Signature", nil
			}
			if string(data) == "" {
				return false, "", errors.New("empty stream")
			}
			return false, "", nil
		},
	}
}

func TestScanner(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		objects     *fakeObjects
		wantStatus  string
		wantDeleted bool
	}{
		{"clean", &fakeObjects{content: "hola"}, ScanClean, false},
		{"infected", &fakeObjects{content: "X5O!EICAR"}, ScanInfected, true},
		{"scan error", &fakeObjects{content: ""}, ScanFailed, false},
		{"missing object", &fakeObjects{openErr: errors.New("no such key")}, ScanFailed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := &fakeRecorder{statuses: map[string]string{}}
			s := newTestScanner(tt.objects, recorder)

			got := s.ScanFile(ctx, "f-1", "files/f-1.pdf")
			assert.Equal(t, tt.wantStatus, got)
			assert.Equal(t, tt.wantStatus, recorder.statuses["f-1"])
			if tt.wantDeleted {
				assert.Equal(t, []string{"files/f-1.pdf"}, tt.objects.deleted)
			} else {
				assert.Empty(t, tt.objects.deleted)
			}
		})
	}
}
