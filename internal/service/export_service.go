package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/markvl91/teammates/internal/model"
	"github.com/markvl91/teammates/internal/repository"
	"github.com/markvl91/teammates/internal/util"
	"github.com/markvl91/teammates/pkg/logger"
	"go.uber.org/zap"
)

// TooManyResponsesMessage replaces the inline HTML preview when the
// result set exceeds the viewable range; the full export is still
// available per section via download.
const TooManyResponsesMessage = "There are too many responses. Please download the feedback results by section."

type ExportService struct {
	repo         *repository.ResultsRepository
	redis        *redis.Client
	storage      *StorageService
	sectionRange int
	cacheTTL     time.Duration
}

func NewExportService(repo *repository.ResultsRepository, rdb *redis.Client, storage *StorageService, sectionRange int, cacheTTL time.Duration) *ExportService {
	return &ExportService{
		repo:         repo,
		redis:        rdb,
		storage:      storage,
		sectionRange: sectionRange,
		cacheTTL:     cacheTTL,
	}
}

// ExportCSV renders the session's results as CSV, missing rows
// included when requested. A fetch cut off by the range cap degrades to
// ErrExceedingRange instead of exporting a silently truncated file.
func (s *ExportService) ExportCSV(ctx context.Context, q ResultsQuery) (string, error) {
	if q.Section == "" {
		q.Section = model.AllSections
	}

	bq := repository.BundleQuery{
		CourseID:     q.CourseID,
		SessionName:  q.SessionName,
		QuestionID:   q.QuestionID,
		Limit:        s.sectionRange,
		OrderByGiver: true,
	}
	if q.Section != model.AllSections {
		bq.Section = q.Section
	}

	bundle, err := s.repo.FetchBundle(ctx, bq)
	if err != nil {
		return "", err
	}
	if !bundle.IsComplete {
		return "", util.ErrExceedingRange
	}

	return buildResultsCSV(bundle, q), nil
}

func buildResultsCSV(bundle *model.ResultsBundle, q ResultsQuery) string {
	rb := &rowBuilder{
		bundle:          bundle,
		viewType:        model.ViewQuestion,
		selectedSection: q.Section,
		showMissing:     q.ShowMissing,
		showStats:       q.ShowStats,
	}

	var sb strings.Builder
	sb.WriteString("Course," + util.SanitizeForCSV(bundle.Session.CourseID) + "\n")
	sb.WriteString("Session Name," + util.SanitizeForCSV(bundle.Session.Name) + "\n")
	if q.Section != model.AllSections {
		sb.WriteString("Section Name," + util.SanitizeForCSV(q.Section) + "\n")
	}

	for _, qr := range groupByQuestion(bundle) {
		question := qr.question
		sb.WriteString("\n\n")
		sb.WriteString(fmt.Sprintf("Question %d,%s\n", question.QuestionNumber, util.SanitizeForCSV(question.QuestionText)))

		if q.ShowStats {
			if stats := bundle.DetailsOf(question).Statistics(question, qr.responses); stats != "" {
				sb.WriteString(util.SanitizeForCSV(stats) + "\n")
			}
		}

		sb.WriteString("\nTeam,Giver,Recipient's Team,Recipient,Feedback\n")
		rows := rb.buildRowsForQuestion(question, qr.responses)
		sortRows(rows, bundle.DetailsOf(question))
		for _, row := range rows {
			sb.WriteString(strings.Join([]string{
				util.SanitizeForCSV(row.GiverTeam),
				util.SanitizeForCSV(row.GiverName),
				util.SanitizeForCSV(row.RecipientTeam),
				util.SanitizeForCSV(row.RecipientName),
				util.SanitizeForCSV(row.Answer),
			}, ",") + "\n")
		}
	}

	return sb.String()
}

// ExportCSVAsHTML renders the export as an HTML table for the in-page
// preview, cached in redis per (course, session, section, question).
// An oversized result set yields the too-many-responses notice instead
// of an error; the caller still offers the sectioned download.
func (s *ExportService) ExportCSVAsHTML(ctx context.Context, q ResultsQuery) (string, error) {
	key := fmt.Sprintf("results:csvhtml:%s:%s:%s:%s", q.CourseID, q.SessionName, q.Section, q.QuestionID)

	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, key).Result(); err == nil {
			return cached, nil
		}
	}

	csvText, err := s.ExportCSV(ctx, q)
	if err == util.ErrExceedingRange {
		return TooManyResponsesMessage, nil
	}
	if err != nil {
		return "", err
	}

	table := util.CSVToHTMLTable(csvText)
	if s.redis != nil {
		if err := s.redis.Set(ctx, key, table, s.cacheTTL).Err(); err != nil {
			logger.Log.Warn("failed to cache results preview", zap.String("key", key), zap.Error(err))
		}
	}
	return table, nil
}

// StoreExport builds the CSV and uploads it to the configured storage
// backend, returning the download URL.
func (s *ExportService) StoreExport(ctx context.Context, q ResultsQuery) (string, error) {
	csvText, err := s.ExportCSV(ctx, q)
	if err != nil {
		return "", err
	}

	filename := fmt.Sprintf("%s/%s-results.csv", q.CourseID, sanitizeFilename(q.SessionName))
	return s.storage.Upload(ctx, filename, strings.NewReader(csvText), int64(len(csvText)), "text/csv")
}

func sanitizeFilename(name string) string {
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-")
	return replacer.Replace(name)
}
