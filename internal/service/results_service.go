package service

import (
	"context"
	"time"

	"github.com/markvl91/teammates/internal/model"
	"github.com/markvl91/teammates/internal/repository"
	"github.com/markvl91/teammates/internal/util"
	"github.com/markvl91/teammates/pkg/logger"
	"github.com/markvl91/teammates/pkg/monitoring"
	"go.uber.org/zap"
)

// assemblyMode is the state the view assembler runs in. It is a pure
// function of the requested section, question and the session's
// respondent count; no state survives a call.
type assemblyMode int

const (
	modeStructureOnly assemblyMode = iota // multiple questions, all sections, too many respondents
	modeFullNoFilter                      // all sections, small enough to load eagerly
	modeSectionFiltered
	modeQuestionFiltered
)

// ResultsQuery is one results-page request.
type ResultsQuery struct {
	CourseID    string
	SessionName string
	ViewType    model.ViewType
	Section     string // AllSections when unset
	QuestionID  string
	ShowMissing bool
	ShowStats   bool
	GroupByTeam bool
	StartIndex  int
	ViewerEmail string
}

type ResultsService struct {
	repo          *repository.ResultsRepository
	autoloadLimit int
	sectionRange  int
}

func NewResultsService(repo *repository.ResultsRepository, autoloadLimit, sectionRange int) *ResultsService {
	return &ResultsService{
		repo:          repo,
		autoloadLimit: autoloadLimit,
		sectionRange:  sectionRange,
	}
}

func (s *ResultsService) resolveMode(q ResultsQuery, respondentCount int) assemblyMode {
	switch {
	case q.QuestionID != "":
		return modeQuestionFiltered
	case q.Section != model.AllSections:
		return modeSectionFiltered
	case respondentCount > s.autoloadLimit:
		return modeStructureOnly
	default:
		return modeFullNoFilter
	}
}

// AssembleResults fetches the bundle for the query and assembles the
// requested view. I/O happens once, up front; assembly itself is a
// synchronous transformation of the immutable bundle snapshot.
func (s *ResultsService) AssembleResults(ctx context.Context, q ResultsQuery) (*model.ResultsPage, error) {
	if q.Section == "" {
		q.Section = model.AllSections
	}
	if !q.ViewType.Valid() {
		return nil, util.ErrInvalidViewType
	}

	session, err := s.repo.FindSession(ctx, q.CourseID, q.SessionName)
	if err != nil {
		return nil, err
	}

	mode := s.resolveMode(q, session.RespondentCount())

	start := time.Now()
	bundle, err := s.fetchBundle(ctx, q, mode)
	if err != nil {
		return nil, err
	}

	var viewer *model.Instructor
	if q.ViewerEmail != "" {
		viewer, err = s.repo.FindInstructor(ctx, q.CourseID, q.ViewerEmail)
		if err != nil {
			return nil, err
		}
	}

	page := s.assemble(bundle, viewer, q, mode)

	monitoring.ResultsAssemblyDuration.
		WithLabelValues(string(q.ViewType)).
		Observe(time.Since(start).Seconds())
	logger.Log.Debug("results assembled",
		zap.String("course", q.CourseID),
		zap.String("session", q.SessionName),
		zap.String("view", string(q.ViewType)),
		zap.Int("responses", len(bundle.Responses)),
		zap.Duration("took", time.Since(start)))
	return page, nil
}

func (s *ResultsService) fetchBundle(ctx context.Context, q ResultsQuery, mode assemblyMode) (*model.ResultsBundle, error) {
	bq := repository.BundleQuery{
		CourseID:     q.CourseID,
		SessionName:  q.SessionName,
		OrderByGiver: q.ViewType == model.ViewQuestion || q.ViewType.IsPrimaryGroupingOfGiverType(),
	}
	switch mode {
	case modeQuestionFiltered:
		bq.QuestionID = q.QuestionID
		if q.Section != model.AllSections {
			bq.Section = q.Section
		}
	case modeSectionFiltered:
		bq.Section = q.Section
		bq.Limit = s.sectionRange
	case modeStructureOnly:
		// shells only; responses stay behind per-question follow-ups
		bq.StructureOnly = true
	case modeFullNoFilter:
		bq.Limit = s.sectionRange
	}
	return s.repo.FetchBundle(ctx, bq)
}

// assemble turns one bundle snapshot into the view model for the
// requested view type and mode.
func (s *ResultsService) assemble(bundle *model.ResultsBundle, viewer *model.Instructor, q ResultsQuery, mode assemblyMode) *model.ResultsPage {
	rb := &rowBuilder{
		bundle:          bundle,
		viewer:          viewer,
		viewType:        q.ViewType,
		selectedSection: q.Section,
		showMissing:     q.ShowMissing,
		showStats:       q.ShowStats,
	}

	page := &model.ResultsPage{
		CourseID:               q.CourseID,
		FeedbackSessionName:    q.SessionName,
		ViewType:               q.ViewType,
		SelectedSection:        q.Section,
		Sections:               bundle.Roster.Sections(),
		ShowStats:              q.ShowStats,
		GroupByTeam:            q.GroupByTeam,
		MissingResponsesShown:  q.ShowMissing,
		StartIndex:             q.StartIndex,
		LargeNumberOfResponses: mode == modeStructureOnly,
	}

	// a range-limited fetch cannot prove a pair unanswered
	if !bundle.IsComplete {
		rb.showMissing = false
		page.MissingResponsesShown = false
		page.Incomplete = true
	}

	switch {
	case mode == modeStructureOnly:
		s.assembleShells(rb, page)
	case q.ViewType == model.ViewQuestion:
		s.assembleQuestionView(rb, page, q.QuestionID)
	default:
		page.SectionPanels = rb.buildSectionPanels()
	}

	if q.Section == model.AllSections && mode != modeStructureOnly {
		page.NoResponsePanel = s.buildNoResponsePanel(rb)
	}
	return page
}

// assembleShells emits header-only panels; each shell is loaded later
// by a narrower question- or section-filtered call.
func (s *ResultsService) assembleShells(rb *rowBuilder, page *model.ResultsPage) {
	if rb.viewType == model.ViewQuestion {
		for _, qr := range groupByQuestion(rb.bundle) {
			page.QuestionPanels = append(page.QuestionPanels,
				rb.buildQuestionTable(qr.question, qr.responses, nil, false))
		}
		return
	}
	for _, section := range rb.bundle.Roster.Sections() {
		page.SectionPanels = append(page.SectionPanels, &model.SectionPanel{
			SectionName:         section,
			DisplayName:         section,
			LoadByAjax:          true,
			AbleToLoadResponses: true,
		})
	}
	page.SectionPanels = append(page.SectionPanels, &model.SectionPanel{
		SectionName:         model.DefaultSection,
		DisplayName:         model.NoSpecificSection,
		LoadByAjax:          true,
		AbleToLoadResponses: true,
	})
}

func (s *ResultsService) assembleQuestionView(rb *rowBuilder, page *model.ResultsPage, questionID string) {
	for _, qr := range groupByQuestion(rb.bundle) {
		if questionID != "" && qr.question.ID != questionID {
			continue
		}
		page.QuestionPanels = append(page.QuestionPanels, rb.buildQuestionTableWithRows(qr.question, qr.responses))
	}
}

// buildNoResponsePanel lists the expected respondents who submitted
// nothing at all, with a moderation button each.
func (s *ResultsService) buildNoResponsePanel(rb *rowBuilder) *model.NoResponsePanel {
	b := rb.bundle
	status := b.ComputeResponseStatus()

	var identifiers []string
	for identifier := range status.NameTable {
		if !status.Responded[identifier] {
			identifiers = append(identifiers, identifier)
		}
	}
	sortByDisplayName(b, identifiers)

	panel := &model.NoResponsePanel{}
	for _, identifier := range identifiers {
		panel.Rows = append(panel.Rows, &model.NoResponseRow{
			Identifier:       identifier,
			Name:             status.NameTable[identifier],
			Team:             b.TeamForIdentifier(identifier),
			ModerationButton: rb.moderationButtonForGiver(nil, identifier, moderateResponsesForGiver),
		})
	}
	return panel
}
