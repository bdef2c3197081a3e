package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pftapp/pft-backend/models"
)

// CreateReport сохраняет снимок отчёта. Снимки не изменяются после записи.
func CreateReport(pool *pgxpool.Pool, report *models.AnalyticsReport) error {
	query := `
		INSERT INTO analytics_reports (user_id, start_date, end_date, report_type, data)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`
	err := pool.QueryRow(context.Background(), query,
		report.UserID,
		report.StartDate,
		report.EndDate,
		report.ReportType,
		report.Data,
	).Scan(&report.ID, &report.CreatedAt)
	if err != nil {
		return fmt.Errorf("ошибка при добавлении отчета: %v", err)
	}
	return nil
}

func GetReportByID(pool *pgxpool.Pool, reportID, userID int) (*models.AnalyticsReport, error) {
	query := `
		SELECT id, user_id, start_date, end_date, report_type, data, created_at
		FROM analytics_reports
		WHERE id = $1 AND user_id = $2`

	report := &models.AnalyticsReport{}
	err := pool.QueryRow(context.Background(), query, reportID, userID).Scan(
		&report.ID,
		&report.UserID,
		&report.StartDate,
		&report.EndDate,
		&report.ReportType,
		&report.Data,
		&report.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("отчет с ID %d не найден: %w", reportID, ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении отчета: %v", err)
	}
	return report, nil
}

func GetReportsByUserID(pool *pgxpool.Pool, userID int) ([]models.AnalyticsReport, error) {
	query := `
		SELECT id, user_id, start_date, end_date, report_type, data, created_at
		FROM analytics_reports
		WHERE user_id = $1
		ORDER BY created_at DESC`
	rows, err := pool.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении отчетов: %v", err)
	}
	defer rows.Close()

	reports := []models.AnalyticsReport{}
	for rows.Next() {
		var report models.AnalyticsReport
		if err := rows.Scan(
			&report.ID,
			&report.UserID,
			&report.StartDate,
			&report.EndDate,
			&report.ReportType,
			&report.Data,
			&report.CreatedAt,
		); err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, rows.Err()
}

func DeleteReport(pool *pgxpool.Pool, reportID, userID int) error {
	result, err := pool.Exec(context.Background(),
		`DELETE FROM analytics_reports WHERE id = $1 AND user_id = $2`, reportID, userID)
	if err != nil {
		return fmt.Errorf("ошибка удаления отчета: %v", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("отчет с ID %d не найден: %w", reportID, ErrNotFound)
	}
	return nil
}
