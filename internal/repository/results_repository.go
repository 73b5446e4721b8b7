package repository

import (
	"context"
	"errors"

	"github.com/markvl91/teammates/internal/model"
	"github.com/markvl91/teammates/internal/util"
	"gorm.io/gorm"
)

// BundleQuery narrows the bundle fetch. Zero values mean no filter; a
// positive Limit caps the response fetch and marks the bundle
// incomplete when responses were cut off.
type BundleQuery struct {
	CourseID      string
	SessionName   string
	Section       string
	QuestionID    string
	Limit         int
	StructureOnly bool
	OrderByGiver  bool
}

type ResultsRepository struct {
	DB *gorm.DB
}

func NewResultsRepository(db *gorm.DB) *ResultsRepository {
	return &ResultsRepository{DB: db}
}

func (r *ResultsRepository) FindCourse(ctx context.Context, courseID string) (*model.Course, error) {
	var course model.Course
	err := r.DB.WithContext(ctx).Where("course_id = ?", courseID).First(&course).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCourseNotFound
	}
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *ResultsRepository) FindSession(ctx context.Context, courseID, name string) (*model.FeedbackSession, error) {
	var session model.FeedbackSession
	err := r.DB.WithContext(ctx).
		Where("course_id = ? AND name = ?", courseID, name).
		First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *ResultsRepository) FindInstructor(ctx context.Context, courseID, email string) (*model.Instructor, error) {
	var instructor model.Instructor
	err := r.DB.WithContext(ctx).
		Where("course_id = ? AND email = ?", courseID, email).
		First(&instructor).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrInstructorNotFound
	}
	if err != nil {
		return nil, err
	}
	return &instructor, nil
}

// FetchBundle loads one immutable results snapshot: session, ordered
// questions, the responses the query admits, their comments and the
// course roster. Identities the questions hide from instructors are
// replaced with minted pseudonyms before the bundle is sealed.
func (r *ResultsRepository) FetchBundle(ctx context.Context, q BundleQuery) (*model.ResultsBundle, error) {
	session, err := r.FindSession(ctx, q.CourseID, q.SessionName)
	if err != nil {
		return nil, err
	}

	questions, err := r.fetchQuestions(ctx, q)
	if err != nil {
		return nil, err
	}

	roster, err := r.fetchRoster(ctx, q.CourseID)
	if err != nil {
		return nil, err
	}

	if q.StructureOnly {
		return model.NewResultsBundle(session, questions, nil, nil, roster, true), nil
	}

	responses, complete, err := r.fetchResponses(ctx, q, questions)
	if err != nil {
		return nil, err
	}

	comments, err := r.fetchComments(ctx, responses)
	if err != nil {
		return nil, err
	}

	anonymizeHiddenIdentities(questions, responses)

	return model.NewResultsBundle(session, questions, responses, comments, roster, complete), nil
}

func (r *ResultsRepository) fetchQuestions(ctx context.Context, q BundleQuery) ([]*model.FeedbackQuestion, error) {
	query := r.DB.WithContext(ctx).
		Where("course_id = ? AND feedback_session_name = ?", q.CourseID, q.SessionName)
	if q.QuestionID != "" {
		query = query.Where("id = ?", q.QuestionID)
	}

	var questions []*model.FeedbackQuestion
	if err := query.Order("question_number asc").Find(&questions).Error; err != nil {
		return nil, err
	}
	if q.QuestionID != "" && len(questions) == 0 {
		return nil, util.ErrQuestionNotFound
	}
	return questions, nil
}

// fetchResponses loads the admitted responses sorted for the requested
// primary grouping. One extra row beyond the limit detects truncation.
func (r *ResultsRepository) fetchResponses(ctx context.Context, q BundleQuery, questions []*model.FeedbackQuestion) ([]*model.FeedbackResponse, bool, error) {
	questionIDs := make([]string, 0, len(questions))
	for _, question := range questions {
		questionIDs = append(questionIDs, question.ID)
	}
	if len(questionIDs) == 0 {
		return nil, true, nil
	}

	query := r.DB.WithContext(ctx).Where("question_id IN ?", questionIDs)
	if q.Section != "" {
		query = query.Where("giver_section = ? OR recipient_section = ?", q.Section, q.Section)
	}
	if q.OrderByGiver {
		query = query.Order("giver_section asc, giver asc, recipient asc")
	} else {
		query = query.Order("recipient_section asc, recipient asc, giver asc")
	}
	if q.Limit > 0 {
		query = query.Limit(q.Limit + 1)
	}

	var responses []*model.FeedbackResponse
	if err := query.Find(&responses).Error; err != nil {
		return nil, false, err
	}

	complete := true
	if q.Limit > 0 && len(responses) > q.Limit {
		responses = responses[:q.Limit]
		complete = false
	}
	return responses, complete, nil
}

func (r *ResultsRepository) fetchComments(ctx context.Context, responses []*model.FeedbackResponse) (map[string][]*model.FeedbackResponseComment, error) {
	if len(responses) == 0 {
		return nil, nil
	}

	responseIDs := make([]string, 0, len(responses))
	for _, resp := range responses {
		responseIDs = append(responseIDs, resp.ID)
	}

	var comments []*model.FeedbackResponseComment
	err := r.DB.WithContext(ctx).
		Where("response_id IN ?", responseIDs).
		Order("created_at asc").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}

	byResponse := make(map[string][]*model.FeedbackResponseComment)
	for _, c := range comments {
		byResponse[c.ResponseID] = append(byResponse[c.ResponseID], c)
	}
	return byResponse, nil
}

func (r *ResultsRepository) fetchRoster(ctx context.Context, courseID string) (*model.CourseRoster, error) {
	if _, err := r.FindCourse(ctx, courseID); err != nil {
		return nil, err
	}

	var students []*model.Student
	err := r.DB.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("section asc, team asc, name asc").
		Find(&students).Error
	if err != nil {
		return nil, err
	}

	var instructors []*model.Instructor
	err = r.DB.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("name asc").
		Find(&instructors).Error
	if err != nil {
		return nil, err
	}

	return model.NewCourseRoster(students, instructors), nil
}

// anonymizeHiddenIdentities replaces giver and recipient identifiers
// with minted pseudonyms on every response whose question hides that
// identity from instructors. The pseudonym is stable per hidden
// participant, so grouping by giver or recipient still works without
// naming anyone.
func anonymizeHiddenIdentities(questions []*model.FeedbackQuestion, responses []*model.FeedbackResponse) {
	byID := make(map[string]*model.FeedbackQuestion, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	for _, resp := range responses {
		q := byID[resp.QuestionID]
		if q == nil {
			continue
		}
		if !q.IsGiverNameVisibleTo(model.ParticipantInstructors) {
			resp.Giver = model.AnonymousIdentifier(model.AnonymousNounFor(q.GiverType), resp.Giver)
			resp.GiverSection = model.DefaultSection
		}
		if resp.Recipient != model.GeneralRecipient && !q.IsRecipientNameVisibleTo(model.ParticipantInstructors) {
			resp.Recipient = model.AnonymousIdentifier(model.AnonymousNounFor(q.RecipientType), resp.Recipient)
			resp.RecipientSection = model.DefaultSection
		}
	}
}
