package transport

import "time"

// ValidateRequest asks whether a single number is valid.
type ValidateRequest struct {
	Number string `json:"number" validate:"max=64"`
	Region string `json:"region" validate:"region"`
}

// ValidateResponse reports validity. E164 is set only for valid numbers.
type ValidateResponse struct {
	Number string `json:"number"`
	Valid  bool   `json:"valid"`
	E164   string `json:"e164,omitempty"`
}

// FormatRequest asks for a number in one of e164, international, national or rfc3966.
type FormatRequest struct {
	Number string `json:"number" validate:"max=64"`
	Region string `json:"region" validate:"region"`
	Format string `json:"format" validate:"max=16"`
}

// FormatResponse carries the rendering, or "invalid" when the number does not parse.
type FormatResponse struct {
	Number    string `json:"number"`
	Format    string `json:"format"`
	Formatted string `json:"formatted"`
}

// ExtractRequest holds free text to scan.
type ExtractRequest struct {
	Text   string `json:"text" validate:"max=65536"`
	Region string `json:"region" validate:"region"`
}

// ExtractResponse lists numbers found, in E.164 and in order of appearance.
type ExtractResponse struct {
	Numbers []string `json:"numbers"`
}

// BatchValidateRequest validates many numbers at once.
type BatchValidateRequest struct {
	Numbers []string `json:"numbers" validate:"required,dive,max=64"`
	Region  string   `json:"region" validate:"region"`
}

// BatchValidateResponse maps each distinct input to its validity.
type BatchValidateResponse struct {
	Results map[string]bool `json:"results"`
}

// LocateRequest asks for the localized location of a number.
type LocateRequest struct {
	Number string `json:"number" validate:"max=64"`
	Region string `json:"region" validate:"region"`
	Lang   string `json:"lang" validate:"langtag"`
}

// BatchJobRequest submits a batch validation job to the worker queue.
type BatchJobRequest struct {
	Numbers []string `json:"numbers" validate:"required,min=1,dive,max=64"`
	Region  string   `json:"region" validate:"region"`
}

// BatchJobResponse describes a queued or finished batch job.
type BatchJobResponse struct {
	JobID       string          `json:"jobId"`
	Status      string          `json:"status"`
	Items       int             `json:"items"`
	Results     map[string]bool `json:"results,omitempty"`
	Error       string          `json:"error,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	CompletedAt *time.Time      `json:"completedAt,omitempty"`
}
