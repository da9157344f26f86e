package files

import (
	"github.com/Rehab-Center/Admin-Service/internal/models"
)

// ComputeStats counts files and bytes overall and per category. Every call
// builds its own accumulator.
func ComputeStats(list []models.FileMetadata) models.FileStats {
	stats := models.FileStats{
		ByCategory: make(map[string]models.CategoryStats),
	}
	for _, f := range list {
		size := f.Size()
		stats.TotalFiles++
		stats.TotalSize += size

		cat := string(CategoryOf(f.Name))
		entry := stats.ByCategory[cat]
		entry.Count++
		entry.Size += size
		stats.ByCategory[cat] = entry
	}
	return stats
}
