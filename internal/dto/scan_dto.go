package dto

// ScanResponse is the extraction result of an uploaded marksheet image.
// Extraction is currently a fixed demo table; the upload itself is stored.
type ScanResponse struct {
	FileURL  string                  `json:"file_url"`
	Subjects []MarksheetSubjectInput `json:"subjects"`
}
