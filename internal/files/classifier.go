// Package files classifies, searches, sorts and aggregates file listings.
// Everything here is a pure function over in-memory slices.
package files

import (
	"strings"
)

// Category groups file extensions.
type Category string

const (
	CategoryDocument Category = "document"
	CategoryImage    Category = "image"
	CategoryVideo    Category = "video"
	CategoryAudio    Category = "audio"
	CategoryArchive  Category = "archive"
	CategoryCode     Category = "code"
	CategoryOther    Category = "other"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryDocument,
	CategoryImage,
	CategoryVideo,
	CategoryAudio,
	CategoryArchive,
	CategoryCode,
	CategoryOther,
}

// TypeDescriptor is how the dashboard renders a file type.
type TypeDescriptor struct {
	Category Category `json:"category"`
	Icon     string   `json:"icon"`
	Color    string   `json:"color"`
}

// DefaultDescriptor is returned for missing or unknown extensions.
var DefaultDescriptor = TypeDescriptor{Category: CategoryOther, Icon: "file", Color: "gray"}

var extensionTable = map[string]TypeDescriptor{
	// documents
	"pdf":  {CategoryDocument, "file-pdf", "red"},
	"doc":  {CategoryDocument, "file-word", "blue"},
	"docx": {CategoryDocument, "file-word", "blue"},
	"xls":  {CategoryDocument, "file-excel", "green"},
	"xlsx": {CategoryDocument, "file-excel", "green"},
	"csv":  {CategoryDocument, "file-excel", "green"},
	"ppt":  {CategoryDocument, "file-powerpoint", "orange"},
	"pptx": {CategoryDocument, "file-powerpoint", "orange"},
	"txt":  {CategoryDocument, "file-text", "gray"},
	"rtf":  {CategoryDocument, "file-text", "gray"},
	"odt":  {CategoryDocument, "file-text", "blue"},

	// images
	"jpg":  {CategoryImage, "file-image", "purple"},
	"jpeg": {CategoryImage, "file-image", "purple"},
	"png":  {CategoryImage, "file-image", "purple"},
	"gif":  {CategoryImage, "file-image", "purple"},
	"bmp":  {CategoryImage, "file-image", "purple"},
	"webp": {CategoryImage, "file-image", "purple"},
	"svg":  {CategoryImage, "file-image", "purple"},

	// video
	"mp4": {CategoryVideo, "file-video", "pink"},
	"avi": {CategoryVideo, "file-video", "pink"},
	"mov": {CategoryVideo, "file-video", "pink"},
	"mkv": {CategoryVideo, "file-video", "pink"},
	"wmv": {CategoryVideo, "file-video", "pink"},

	// audio
	"mp3": {CategoryAudio, "file-audio", "yellow"},
	"wav": {CategoryAudio, "file-audio", "yellow"},
	"ogg": {CategoryAudio, "file-audio", "yellow"},
	"m4a": {CategoryAudio, "file-audio", "yellow"},

	// archives
	"zip": {CategoryArchive, "file-archive", "amber"},
	"rar": {CategoryArchive, "file-archive", "amber"},
	"7z":  {CategoryArchive, "file-archive", "amber"},
	"tar": {CategoryArchive, "file-archive", "amber"},
	"gz":  {CategoryArchive, "file-archive", "amber"},

	// code
	"js":   {CategoryCode, "file-code", "indigo"},
	"ts":   {CategoryCode, "file-code", "indigo"},
	"json": {CategoryCode, "file-code", "indigo"},
	"html": {CategoryCode, "file-code", "indigo"},
	"css":  {CategoryCode, "file-code", "indigo"},
	"go":   {CategoryCode, "file-code", "indigo"},
	"py":   {CategoryCode, "file-code", "indigo"},
	"sql":  {CategoryCode, "file-code", "indigo"},
}

// Extension returns the lowercase text after the last dot, or "" when the
// name has no dot.
func Extension(name string) string {
	i := strings.LastIndex(name, ".")
	if i < 0 {
		return ""
	}
	return strings.ToLower(name[i+1:])
}

// Classify maps a filename to its descriptor. Unknown, empty or missing
// extensions yield DefaultDescriptor.
func Classify(name string) TypeDescriptor {
	ext := Extension(name)
	if ext == "" {
		return DefaultDescriptor
	}
	if d, ok := extensionTable[ext]; ok {
		return d
	}
	return DefaultDescriptor
}

// CategoryOf is shorthand for Classify(name).Category.
func CategoryOf(name string) Category {
	return Classify(name).Category
}

// KnownExtensions returns a copy of the extension table, for the
// dashboard's legend.
func KnownExtensions() map[string]TypeDescriptor {
	out := make(map[string]TypeDescriptor, len(extensionTable))
	for ext, d := range extensionTable {
		out[ext] = d
	}
	return out
}

// ContentType returns the MIME type stored alongside uploaded objects.
func ContentType(name string) string {
	switch Extension(name) {
	case "jpg", "jpeg":
		return "image/jpeg"
	case "png":
		return "image/png"
	case "gif":
		return "image/gif"
	case "pdf":
		return "application/pdf"
	case "csv":
		return "text/csv"
	case "xlsx":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case "docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case "mp4":
		return "video/mp4"
	case "mp3":
		return "audio/mpeg"
	default:
		return "application/octet-stream"
	}
}
