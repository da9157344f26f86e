package export

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// BOM makes spreadsheet applications read the CSV as UTF-8.
const BOM = "\ufeff"

const (
	ContentTypeCSV  = "text/csv;charset=utf-8"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// WithBOM prefixes text with the UTF-8 byte order mark.
func WithBOM(text string) []byte {
	return []byte(BOM + text)
}

// WriteDownload sends data as an attachment named filename.
func WriteDownload(w http.ResponseWriter, data []byte, filename, contentType string) error {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Header().Set("Content-Length", fmt.Sprint(len(data)))
	w.WriteHeader(http.StatusOK)
	_, err := w.Write(data)
	return err
}

// SaveFile writes data next to path and renames it into place, so readers
// never observe a partial file. The temporary file is removed on any failure.
func SaveFile(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to move export into place: %w", err)
	}
	return nil
}

// Filename builds "{base}_{yyyy-mm-dd}.{ext}".
func Filename(base, ext string, now time.Time) string {
	return fmt.Sprintf("%s_%s.%s", base, now.Format("2006-01-02"), ext)
}
