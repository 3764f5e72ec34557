package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cropdoctor/cropdoctor/internal/domain"
)

// PostgresRepository implements domain.DetectionRepository
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// SaveDetection persists a detection record to PostgreSQL
func (r *PostgresRepository) SaveDetection(ctx context.Context, record domain.DetectionRecord) error {
	query := `
		INSERT INTO detections (
			id, user_id, disease_name, confidence_score, crop_type,
			treatment_steps, fertilizer_suggestions, prevention_tips,
			detection_date, image_thumbnail
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	userID := record.UserID
	if userID == "" {
		userID = domain.DefaultUserID
	}

	_, err := r.pool.Exec(ctx, query,
		record.ID, userID, record.DiseaseName, record.ConfidenceScore, record.CropType,
		record.TreatmentSteps, record.FertilizerSuggestions, record.PreventionTips,
		record.DetectionDate, record.ImageThumbnail,
	)
	if err != nil {
		return fmt.Errorf("postgres: failed to save detection: %w", err)
	}

	return nil
}

// History retrieves a user's newest detections from PostgreSQL
func (r *PostgresRepository) History(ctx context.Context, userID string, limit int) ([]domain.HistoryEntry, error) {
	query := `
		SELECT id, user_id, disease_name, confidence_score, crop_type,
			   detection_date, image_thumbnail
		FROM detections
		WHERE user_id = $1
		ORDER BY detection_date DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query detections: %w", err)
	}
	defer rows.Close()

	var results []domain.HistoryEntry
	for rows.Next() {
		var e domain.HistoryEntry
		err := rows.Scan(
			&e.ID, &e.UserID, &e.DiseaseName, &e.ConfidenceScore, &e.CropType,
			&e.DetectionDate, &e.ImageThumbnail,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan detection row: %w", err)
		}
		results = append(results, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: failed to read detection rows: %w", err)
	}

	return results, nil
}

// Health checks database connectivity
func (r *PostgresRepository) Health(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return fmt.Errorf("postgres: health check failed: %w", err)
	}
	return nil
}
