package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/responder/core/internal/domain/entities"
	"github.com/responder/core/internal/infrastructure/logger"
	"github.com/responder/core/internal/ports"
)

// Response messages
const (
	MsgWelcome             = "Welcome to responder!"
	MsgQuestionRequired    = "Question is required"
	MsgAnswerRequired      = "Answer is required"
	MsgQuestionNotFound    = "Question not found"
	MsgAnswerNotFound      = "Answer not found"
	MsgQuestionExists      = "Question already exists"
	MsgAnswerExists        = "Answer already exists"
	MsgInvalidRequest      = "Invalid request format"
	MsgInvalidPathParams   = "Invalid path parameters"
	MsgInternalServerError = "Internal server error"
)

// QuestionHandler handles question and answer requests
type QuestionHandler struct {
	questionService ports.QuestionService
	logger          *logger.Logger
}

// NewQuestionHandler creates a new question handler
func NewQuestionHandler(questionService ports.QuestionService, logger *logger.Logger) *QuestionHandler {
	return &QuestionHandler{
		questionService: questionService,
		logger:          logger,
	}
}

// Welcome godoc
// @Summary Welcome message
// @Tags root
// @Produce json
// @Success 200 {object} MessageResponse
// @Router / [get]
func (h *QuestionHandler) Welcome(c echo.Context) error {
	return c.JSON(http.StatusOK, MessageResponse{Message: MsgWelcome})
}

// ListQuestions godoc
// @Summary List questions
// @Tags questions
// @Produce json
// @Success 200 {array} entities.Question
// @Failure 500 {object} ErrorResponse
// @Router /questions [get]
func (h *QuestionHandler) ListQuestions(c echo.Context) error {
	questions, err := h.questionService.ListQuestions(c.Request().Context())
	if err != nil {
		return h.internalError(c, "List questions failed", err)
	}

	return c.JSON(http.StatusOK, questions)
}

// CreateQuestion godoc
// @Summary Create a question
// @Description Stores the question as given; the caller supplies the id
// @Tags questions
// @Accept json
// @Produce json
// @Param request body entities.Question true "Question"
// @Success 201 {object} entities.Question
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /questions [post]
func (h *QuestionHandler) CreateQuestion(c echo.Context) error {
	var question entities.Question
	if err := c.Bind(&question); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, MsgInvalidRequest)
	}

	created, err := h.questionService.CreateQuestion(c.Request().Context(), question)
	switch {
	case err == nil:
		return c.JSON(http.StatusCreated, created)
	case errors.Is(err, entities.ErrQuestionRequired):
		return echo.NewHTTPError(http.StatusBadRequest, MsgQuestionRequired)
	case errors.Is(err, entities.ErrDuplicateQuestion):
		return echo.NewHTTPError(http.StatusConflict, MsgQuestionExists)
	default:
		return h.internalError(c, "Create question failed", err, "question_id", question.ID)
	}
}

// GetQuestion godoc
// @Summary Get question by ID
// @Tags questions
// @Produce json
// @Param questionId path string true "Question ID"
// @Success 200 {object} entities.Question
// @Failure 404 {object} ErrorResponse
// @Router /questions/{questionId} [get]
func (h *QuestionHandler) GetQuestion(c echo.Context) error {
	var params ports.QuestionPathParams
	if err := bindPathParams(c, &params); err != nil {
		return err
	}

	question, err := h.questionService.GetQuestion(c.Request().Context(), params.QuestionID)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, question)
	case errors.Is(err, entities.ErrQuestionNotFound):
		return echo.NewHTTPError(http.StatusNotFound, MsgQuestionNotFound)
	default:
		return h.internalError(c, "Get question failed", err, "question_id", params.QuestionID)
	}
}

// GetAnswers godoc
// @Summary List the answers of a question
// @Tags answers
// @Produce json
// @Param questionId path string true "Question ID"
// @Success 200 {array} entities.Answer
// @Failure 404 {object} ErrorResponse
// @Router /questions/{questionId}/answers [get]
func (h *QuestionHandler) GetAnswers(c echo.Context) error {
	var params ports.QuestionPathParams
	if err := bindPathParams(c, &params); err != nil {
		return err
	}

	answers, err := h.questionService.GetAnswers(c.Request().Context(), params.QuestionID)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, answers)
	case errors.Is(err, entities.ErrQuestionNotFound):
		return echo.NewHTTPError(http.StatusNotFound, MsgQuestionNotFound)
	default:
		return h.internalError(c, "Get answers failed", err, "question_id", params.QuestionID)
	}
}

// CreateAnswer godoc
// @Summary Add an answer to a question
// @Tags answers
// @Accept json
// @Produce json
// @Param questionId path string true "Question ID"
// @Param request body entities.Answer true "Answer"
// @Success 201 {object} entities.Answer
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /questions/{questionId}/answers [post]
func (h *QuestionHandler) CreateAnswer(c echo.Context) error {
	var params ports.QuestionPathParams
	if err := bindPathParams(c, &params); err != nil {
		return err
	}

	var answer entities.Answer
	if err := (&echo.DefaultBinder{}).BindBody(c, &answer); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, MsgInvalidRequest)
	}

	created, err := h.questionService.CreateAnswer(c.Request().Context(), params.QuestionID, answer)
	switch {
	case err == nil:
		return c.JSON(http.StatusCreated, created)
	case errors.Is(err, entities.ErrQuestionNotFound):
		return echo.NewHTTPError(http.StatusBadRequest, MsgQuestionNotFound)
	case errors.Is(err, entities.ErrAnswerRequired):
		return echo.NewHTTPError(http.StatusBadRequest, MsgAnswerRequired)
	case errors.Is(err, entities.ErrDuplicateAnswer):
		return echo.NewHTTPError(http.StatusConflict, MsgAnswerExists)
	default:
		return h.internalError(c, "Create answer failed", err, "question_id", params.QuestionID)
	}
}

// GetAnswer godoc
// @Summary Get one answer of a question
// @Tags answers
// @Produce json
// @Param questionId path string true "Question ID"
// @Param answerId path string true "Answer ID"
// @Success 200 {object} entities.Answer
// @Failure 404 {object} ErrorResponse
// @Router /questions/{questionId}/answers/{answerId} [get]
func (h *QuestionHandler) GetAnswer(c echo.Context) error {
	var params ports.AnswerPathParams
	if err := bindPathParams(c, &params); err != nil {
		return err
	}

	answer, err := h.questionService.GetAnswer(c.Request().Context(), params.QuestionID, params.AnswerID)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, answer)
	case errors.Is(err, entities.ErrAnswerNotFound):
		return echo.NewHTTPError(http.StatusNotFound, MsgAnswerNotFound)
	default:
		return h.internalError(c, "Get answer failed", err,
			"question_id", params.QuestionID,
			"answer_id", params.AnswerID,
		)
	}
}

func (h *QuestionHandler) internalError(c echo.Context, msg string, err error, fields ...interface{}) error {
	fields = append(fields, "error", err, "request_id", c.Response().Header().Get(echo.HeaderXRequestID))
	h.logger.Errorw(msg, fields...)
	return echo.NewHTTPError(http.StatusInternalServerError, MsgInternalServerError).SetInternal(err)
}

func bindPathParams(c echo.Context, params interface{}) error {
	if err := (&echo.DefaultBinder{}).BindPathParams(c, params); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, MsgInvalidPathParams)
	}
	if err := c.Validate(params); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, MsgInvalidPathParams)
	}
	return nil
}
