package services

import (
	"context"
	"fmt"
	"io"
	"log"

	clamd "github.com/dutchcoders/go-clamd"
)

const (
	ScanPending  = "pending"
	ScanClean    = "clean"
	ScanInfected = "infected"
	ScanFailed   = "failed"
)

// ObjectStore is what the scanner needs from object storage.
type ObjectStore interface {
	OpenFile(ctx context.Context, objectName string) (io.ReadCloser, error)
	DeleteFile(ctx context.Context, objectName string) error
}

// ScanRecorder stores the verdict of a scan.
type ScanRecorder interface {
	UpdateScanStatus(ctx context.Context, fileID, status string) error
}

// Scanner streams uploaded objects to clamd. Infected objects are removed
// from storage.
type Scanner struct {
	objects  ObjectStore
	recorder ScanRecorder
	scan     func(r io.Reader) (bool, string, error)
}

func NewScanner(clamAVURL string, objects ObjectStore, recorder ScanRecorder) *Scanner {
	c := clamd.NewClamd(clamAVURL)
	return &Scanner{
		objects:  objects,
		recorder: recorder,
		scan: func(r io.Reader) (bool, string, error) {
			return clamdScan(c, r)
		},
	}
}

func clamdScan(c *clamd.Clamd, r io.Reader) (bool, string, error) {
	abort := make(chan bool)
	defer close(abort)

	results, err := c.ScanStream(r, abort)
	if err != nil {
		return false, "", err
	}
	infected, description := false, ""
	for res := range results {
		switch res.Status {
		case clamd.RES_FOUND:
			infected, description = true, res.Description
		case clamd.RES_ERROR, clamd.RES_PARSE_ERROR:
			return false, "", fmt.Errorf("clamd: %s", res.Description)
		}
	}
	return infected, description, nil
}

// ScanFile scans one object and records the result. It is meant to run in
// its own goroutine after an upload.
func (s *Scanner) ScanFile(ctx context.Context, fileID, objectName string) string {
	status := s.verdict(ctx, fileID, objectName)
	if err := s.recorder.UpdateScanStatus(ctx, fileID, status); err != nil {
		log.Printf("[SCAN] failed to update scan status of %s: %v", fileID, err)
	} else {
		log.Printf("[SCAN] finished for %s: %s", fileID, status)
	}
	return status
}

func (s *Scanner) verdict(ctx context.Context, fileID, objectName string) string {
	obj, err := s.objects.OpenFile(ctx, objectName)
	if err != nil {
		log.Printf("[SCAN] failed to open %s: %v", objectName, err)
		return ScanFailed
	}
	defer obj.Close()

	infected, description, err := s.scan(obj)
	if err != nil {
		log.Printf("[SCAN] scan of %s failed: %v", fileID, err)
		return ScanFailed
	}
	if !infected {
		return ScanClean
	}

	log.Printf("[SCAN] virus detected in %s: %s", fileID, description)
	if err := s.objects.DeleteFile(ctx, objectName); err != nil {
		log.Printf("[SCAN] failed to delete infected object %s: %v", objectName, err)
	}
	return ScanInfected
}
