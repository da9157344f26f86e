package models

import "time"

// Event subjects published on the admin-events stream.
const (
	SubjectFileUploaded         = "files.uploaded"
	SubjectFileDeleted          = "files.deleted"
	SubjectFileScanned          = "files.scanned"
	SubjectMensualidadCreated   = "mensualidades.created"
	SubjectMensualidadToggled   = "mensualidades.toggled"
	SubjectMensualidadesOverdue = "mensualidades.overdue"
	SubjectExportGenerated      = "exports.generated"
)

// RecordSubject returns "{collection}.{action}", e.g. participants.deleted.
func RecordSubject(kind Kind, action string) string {
	return kind.Collection() + "." + action
}

type FileUploadedEvent struct {
	FileID     string `json:"file_id"`
	ObjectName string `json:"objectName"`
	Category   string `json:"category"`
}

type FileDeletedEvent struct {
	FileID string `json:"file_id"`
}

type FileScannedEvent struct {
	FileID string `json:"file_id"`
	Status string `json:"status"`
}

type RecordEvent struct {
	ID   string `json:"id"`
	Kind string `json:"kind"`
}

type MensualidadEvent struct {
	ID            string        `json:"id"`
	ParticipantID string        `json:"participant_id"`
	Estado        PaymentStatus `json:"estado"`
}

type OverdueEvent struct {
	IDs   []string  `json:"ids"`
	RunAt time.Time `json:"run_at"`
}

type ExportEvent struct {
	Preset     string `json:"preset"`
	Format     string `json:"format"`
	ObjectName string `json:"objectName"`
	Rows       int    `json:"rows"`
}
