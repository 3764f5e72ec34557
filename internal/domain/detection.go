package domain

import (
	"time"

	"github.com/cropdoctor/cropdoctor/pkg/utils"
)

// DefaultUserID tags records until per-user accounts exist.
const DefaultUserID = "default"

// HistoryLimit caps how many detections a history query returns.
const HistoryLimit = 50

// Diagnosis is the analyzer's verdict for a single image, before it is
// assigned an identity and persisted.
type Diagnosis struct {
	DiseaseName           string   `json:"disease_name"`
	ConfidenceScore       float64  `json:"confidence_score"`
	TreatmentSteps        []string `json:"treatment_steps"`
	FertilizerSuggestions []string `json:"fertilizer_suggestions"`
	PreventionTips        []string `json:"prevention_tips"`
}

// Normalize guarantees the advice lists are non-nil and the confidence
// score sits inside [0, 1], so downstream consumers never branch on
// missing fields.
func (d *Diagnosis) Normalize() {
	if d.TreatmentSteps == nil {
		d.TreatmentSteps = []string{}
	}
	if d.FertilizerSuggestions == nil {
		d.FertilizerSuggestions = []string{}
	}
	if d.PreventionTips == nil {
		d.PreventionTips = []string{}
	}
	d.ConfidenceScore = utils.Clamp(d.ConfidenceScore, 0, 1)
}

// DetectionRecord is a completed disease detection: the diagnosis plus
// identity, crop context and a thumbnail of the analyzed image.
type DetectionRecord struct {
	ID                    string    `json:"id"`
	UserID                string    `json:"-"`
	DiseaseName           string    `json:"disease_name"`
	ConfidenceScore       float64   `json:"confidence_score"`
	CropType              string    `json:"crop_type"`
	TreatmentSteps        []string  `json:"treatment_steps"`
	FertilizerSuggestions []string  `json:"fertilizer_suggestions"`
	PreventionTips        []string  `json:"prevention_tips"`
	DetectionDate         time.Time `json:"detection_date"`
	ImageThumbnail        string    `json:"image_thumbnail"`
}

// ConfidenceLevel buckets the record's score per the shared policy.
func (r DetectionRecord) ConfidenceLevel() ConfidenceLevel {
	return LevelForScore(r.ConfidenceScore)
}

// HistoryEntry is the compact form of a detection used in history
// listings. Advice lists are omitted to keep responses small.
type HistoryEntry struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	DiseaseName     string    `json:"disease_name"`
	ConfidenceScore float64   `json:"confidence_score"`
	CropType        string    `json:"crop_type"`
	DetectionDate   time.Time `json:"detection_date"`
	ImageThumbnail  string    `json:"image_thumbnail"`
}

// HistoryOf projects a full record into its history listing form.
func HistoryOf(r DetectionRecord) HistoryEntry {
	userID := r.UserID
	if userID == "" {
		userID = DefaultUserID
	}
	return HistoryEntry{
		ID:              r.ID,
		UserID:          userID,
		DiseaseName:     r.DiseaseName,
		ConfidenceScore: r.ConfidenceScore,
		CropType:        r.CropType,
		DetectionDate:   r.DetectionDate,
		ImageThumbnail:  r.ImageThumbnail,
	}
}
