package cli

import (
	"fmt"
	"io"

	"github.com/cropdoctor/cropdoctor/internal/domain"
)

const timeLayout = "2006-01-02 15:04"

func renderDetection(w io.Writer, record domain.DetectionRecord) {
	fmt.Fprintf(w, "Disease: %s\n", record.DiseaseName)
	fmt.Fprintf(w, "Confidence: %s\n", confidenceLabel(record.ConfidenceScore))
	fmt.Fprintf(w, "Crop: %s\n", record.CropType)
	fmt.Fprintf(w, "Detected: %s\n", record.DetectionDate.Format(timeLayout))

	renderList(w, "Treatment", record.TreatmentSteps)
	renderList(w, "Fertilizer", record.FertilizerSuggestions)
	renderList(w, "Prevention", record.PreventionTips)
}

func renderHistoryLine(w io.Writer, entry domain.HistoryEntry) {
	fmt.Fprintf(w, "%s  %-12s %-32s %s\n",
		entry.DetectionDate.Format(timeLayout),
		entry.CropType,
		entry.DiseaseName,
		confidenceLabel(entry.ConfidenceScore))
}

func renderAdvisory(w io.Writer, advisory domain.WeatherAdvisory) {
	fmt.Fprintf(w, "Location: %s\n", advisory.Location)
	fmt.Fprintf(w, "Temperature: %.1f°C\n", advisory.Temperature)
	fmt.Fprintf(w, "Humidity: %.0f%%\n", advisory.Humidity)
	fmt.Fprintf(w, "Condition: %s\n", advisory.WeatherCondition)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Advice:")
	for _, line := range advisory.CropAdvice {
		fmt.Fprintf(w, "  - %s\n", line)
	}
}

func renderList(w io.Writer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s:\n", title)
	for i, item := range items {
		fmt.Fprintf(w, "  %d. %s\n", i+1, item)
	}
}

func confidenceLabel(score float64) string {
	return fmt.Sprintf("%.0f%% (%s)", score*100, domain.LevelForScore(score))
}
