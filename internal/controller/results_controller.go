package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/markvl91/teammates/internal/model"
	"github.com/markvl91/teammates/internal/service"
	"github.com/markvl91/teammates/internal/util"
)

type ResultsController struct {
	ResultsService *service.ResultsService
	ExportService  *service.ExportService
}

func NewResultsController(resultsService *service.ResultsService, exportService *service.ExportService) *ResultsController {
	return &ResultsController{
		ResultsService: resultsService,
		ExportService:  exportService,
	}
}

func (c *ResultsController) queryFromRequest(ctx *gin.Context) service.ResultsQuery {
	viewType := model.ViewType(ctx.DefaultQuery("viewType", string(model.ViewQuestion)))
	startIndex, _ := strconv.Atoi(ctx.DefaultQuery("startIndex", "0"))

	q := service.ResultsQuery{
		CourseID:    ctx.Param("courseId"),
		SessionName: ctx.Param("fsname"),
		ViewType:    viewType,
		Section:     ctx.DefaultQuery("section", model.AllSections),
		QuestionID:  ctx.Query("questionId"),
		ShowMissing: ctx.DefaultQuery("showMissing", "true") == "true",
		ShowStats:   ctx.DefaultQuery("showStats", "true") == "true",
		GroupByTeam: ctx.DefaultQuery("groupByTeam", "true") == "true",
		StartIndex:  startIndex,
	}
	if claims := util.GetInstructorFromContext(ctx); claims != nil {
		q.ViewerEmail = claims.Email
	}
	return q
}

func respondResultsError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrCourseNotFound),
		errors.Is(err, util.ErrSessionNotFound),
		errors.Is(err, util.ErrQuestionNotFound):
		util.NotFound(ctx, err.Error())
	case errors.Is(err, util.ErrInstructorNotFound):
		util.Forbidden(ctx)
	case errors.Is(err, util.ErrInvalidViewType):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrExceedingRange):
		util.Error(ctx, http.StatusRequestEntityTooLarge, service.TooManyResponsesMessage)
	default:
		util.LogInternalError(ctx, err)
	}
}

// GetResults godoc
// @Summary Feedback session results
// @Description Assembles the session results in the requested view ordering
// @Tags results
// @Produce json
// @Param   courseId path string true "Course id"
// @Param   fsname path string true "Feedback session name"
// @Param   viewType query string false "QUESTION, GIVER_QUESTION_RECIPIENT, RECIPIENT_QUESTION_GIVER, GIVER_RECIPIENT_QUESTION or RECIPIENT_GIVER_QUESTION"
// @Param   section query string false "Section filter, All by default"
// @Param   questionId query string false "Restrict to one question"
// @Param   showMissing query bool false "Synthesize rows for unanswered pairs"
// @Param   showStats query bool false "Attach statistics tables"
// @Param   groupByTeam query bool false "Group participant panels by team"
// @Success 200 {object} util.Response{data=model.ResultsPage}
// @Failure 404 {object} util.Response "unknown course, session or question"
// @Security BearerAuth
// @Router /api/instructor/courses/{courseId}/sessions/{fsname}/results [get]
func (c *ResultsController) GetResults(ctx *gin.Context) {
	q := c.queryFromRequest(ctx)

	page, err := c.ResultsService.AssembleResults(ctx.Request.Context(), q)
	if err != nil {
		respondResultsError(ctx, err)
		return
	}

	util.Success(ctx, page)
}

// GetResultsCSV godoc
// @Summary Results CSV preview
// @Description Renders the session results CSV as an HTML table; oversized result sets yield a notice instead
// @Tags results
// @Produce json
// @Param   courseId path string true "Course id"
// @Param   fsname path string true "Feedback session name"
// @Param   section query string false "Section filter"
// @Param   questionId query string false "Restrict to one question"
// @Success 200 {object} util.Response{data=object}
// @Security BearerAuth
// @Router /api/instructor/courses/{courseId}/sessions/{fsname}/results/csv [get]
func (c *ResultsController) GetResultsCSV(ctx *gin.Context) {
	q := c.queryFromRequest(ctx)

	table, err := c.ExportService.ExportCSVAsHTML(ctx.Request.Context(), q)
	if err != nil {
		respondResultsError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"table": table})
}

// DownloadResults godoc
// @Summary Results CSV download
// @Description Builds the CSV export, stores it and returns the download URL
// @Tags results
// @Produce json
// @Param   courseId path string true "Course id"
// @Param   fsname path string true "Feedback session name"
// @Param   section query string false "Section filter"
// @Success 200 {object} util.Response{data=object}
// @Failure 413 {object} util.Response "too many responses, download by section"
// @Security BearerAuth
// @Router /api/instructor/courses/{courseId}/sessions/{fsname}/results/download [get]
func (c *ResultsController) DownloadResults(ctx *gin.Context) {
	q := c.queryFromRequest(ctx)

	url, err := c.ExportService.StoreExport(ctx.Request.Context(), q)
	if err != nil {
		respondResultsError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"url": url})
}
