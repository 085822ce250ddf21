package repository

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"gorm.io/gorm"

	"github.com/camden-git/inspectsysbackend/models"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// ProjectSummary aggregates per-project capture statistics for reporting
type ProjectSummary struct {
	ProjectID       string `json:"project_id"`
	TotalPhotos     int    `json:"total_photos"`
	DefectPhotos    int    `json:"defect_photos"`
	RiskPhotos      int    `json:"risk_photos"`
	OverviewPhotos  int    `json:"overview_photos"`
	AnnotatedPhotos int    `json:"annotated_photos"`
	DefectsIssued   int    `json:"defects_issued"`
	RisksIssued     int    `json:"risks_issued"`
}

// ReportRepository runs aggregate queries over the photo and counter tables
type ReportRepository struct {
	DB *gorm.DB
}

// NewReportRepository creates a new instance of ReportRepository
func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{DB: db}
}

// ProjectSummary computes photo counts per category plus the counter values
// issued so far. Issued counts can exceed live photo counts because removing
// a photo never releases its reference number
func (r *ReportRepository) ProjectSummary(projectID string) (*ProjectSummary, error) {
	queryBuilder := psql.Select(
		"COUNT(*)",
		fmt.Sprintf("COALESCE(SUM(CASE WHEN category = '%s' THEN 1 ELSE 0 END), 0)", models.CategoryDefect),
		fmt.Sprintf("COALESCE(SUM(CASE WHEN category = '%s' THEN 1 ELSE 0 END), 0)", models.CategoryRisk),
		fmt.Sprintf("COALESCE(SUM(CASE WHEN category = '%s' THEN 1 ELSE 0 END), 0)", models.CategoryOverview),
		"COALESCE(SUM(CASE WHEN annotations IS NOT NULL AND annotations NOT IN ('', 'null', '[]') THEN 1 ELSE 0 END), 0)",
	).
		From("photos").
		Where(sq.Eq{"project_id": projectID})

	sqlStr, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build SQL query for ProjectSummary: %w", err)
	}

	summary := ProjectSummary{ProjectID: projectID}
	row := r.DB.Raw(sqlStr, args...).Row()
	if err := row.Scan(
		&summary.TotalPhotos,
		&summary.DefectPhotos,
		&summary.RiskPhotos,
		&summary.OverviewPhotos,
		&summary.AnnotatedPhotos,
	); err != nil {
		return nil, fmt.Errorf("failed to scan project summary for %s: %w", projectID, err)
	}

	var counter models.ReferenceCounter
	err = r.DB.First(&counter, "project_id = ?", projectID).Error
	if err == nil {
		summary.DefectsIssued = counter.DefectCounter
		summary.RisksIssued = counter.RiskCounter
	} else if err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("failed to read counters for project summary %s: %w", projectID, err)
	}

	return &summary, nil
}
