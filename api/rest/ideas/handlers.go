package ideas

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/umairazmat/Ai-Codify/internal/assist"
	"github.com/umairazmat/Ai-Codify/internal/errors"
	"github.com/umairazmat/Ai-Codify/internal/ideas"
	"github.com/umairazmat/Ai-Codify/internal/logger"
	"github.com/umairazmat/Ai-Codify/internal/sessions"
)

// user-facing banners for rejected wizard input
const (
	msgEmptyTopic        = "Please enter a valid topic."
	msgIncompleteAnswers = "Please fill in all fields."
)

// GetStateHandler godoc
// @Summary Get wizard state
// @Description Returns the current Idea Crafter step, questions and any generated idea
// @Tags ideas
// @Produce json
// @Success 200 {object} StateResponse
// @Router /api/v1/ideas [get]
func GetStateHandler(sessionMgr *sessions.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := sessions.FromContext(c)

		state, err := sessionMgr.State(sessionID)
		if err != nil {
			errors.SessionNotFound(c)
			return
		}

		c.JSON(http.StatusOK, newStateResponse(sessionID, state))
	}
}

// SubmitTopicHandler godoc
// @Summary Submit topic
// @Description Stores the topic and advances to the follow-up questions
// @Tags ideas
// @Accept json
// @Produce json
// @Param request body TopicRequest true "Topic"
// @Success 200 {object} StateResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /api/v1/ideas/topic [post]
func SubmitTopicHandler(sessionMgr *sessions.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req TopicRequest

		if err := c.ShouldBindJSON(&req); err != nil {
			errors.BadRequest(c, "invalid request body", err)
			return
		}

		apply(c, sessionMgr, func(s ideas.State) (ideas.State, error) {
			return ideas.SubmitTopic(s, req.Topic)
		})
	}
}

// SubmitDetailsHandler godoc
// @Summary Submit follow-up answers
// @Description Stores the four answers and assembles the idea prompt
// @Tags ideas
// @Accept json
// @Produce json
// @Param request body DetailsRequest true "Answers"
// @Success 200 {object} StateResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /api/v1/ideas/details [post]
func SubmitDetailsHandler(sessionMgr *sessions.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req DetailsRequest

		if err := c.ShouldBindJSON(&req); err != nil {
			errors.BadRequest(c, "invalid request body", err)
			return
		}

		apply(c, sessionMgr, func(s ideas.State) (ideas.State, error) {
			return ideas.SubmitDetails(s, ideas.Answers(req))
		})
	}
}

// GenerateHandler godoc
// @Summary Generate idea
// @Description Renders the result step. The model is called at most once per visit; later calls return the stored idea.
// @Tags ideas
// @Produce json
// @Success 200 {object} StateResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /api/v1/ideas/generate [post]
func GenerateHandler(sessionMgr *sessions.Manager, generator ideas.Generator) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := sessions.FromContext(c)
		log := logger.FromContext(c.Request.Context()).With("session_id", sessionID)
		called := false

		state, err := sessionMgr.Apply(sessionID, func(s ideas.State) (ideas.State, error) {
			called = s.Step == ideas.StepDisplayingResult && s.GeneratedIdea == nil

			next, out, err := ideas.Render(c.Request.Context(), s, generator)
			if err != nil || !called || !out.Failed {
				return next, err
			}

			if out.Kind == assist.FailureCanceled {
				// nothing stored; the next generate retries
				called = false
				log.Warn("idea generation canceled by client")
				return next, nil
			}

			log.Error("failed to generate idea",
				"error", out.Err,
				"failure", out.Kind,
			)

			return next, err
		})
		if err != nil {
			respondTransitionError(c, err)
			return
		}

		if called {
			log.Info("idea rendered", "failed", state.Failure != "")
		}

		c.JSON(http.StatusOK, newStateResponse(sessionID, state))
	}
}

// ResetHandler godoc
// @Summary Generate another idea
// @Description Clears the wizard and returns to the topic step
// @Tags ideas
// @Produce json
// @Success 200 {object} StateResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /api/v1/ideas/reset [post]
func ResetHandler(sessionMgr *sessions.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		apply(c, sessionMgr, ideas.Reset)
	}
}

func apply(c *gin.Context, sessionMgr *sessions.Manager, fn func(ideas.State) (ideas.State, error)) {
	sessionID := sessions.FromContext(c)

	state, err := sessionMgr.Apply(sessionID, fn)
	if err != nil {
		respondTransitionError(c, err)
		return
	}

	c.JSON(http.StatusOK, newStateResponse(sessionID, state))
}

func respondTransitionError(c *gin.Context, err error) {
	switch {
	case stderrors.Is(err, ideas.ErrEmptyTopic):
		errors.ValidationError(c, msgEmptyTopic, nil)
	case stderrors.Is(err, ideas.ErrIncompleteAnswers):
		errors.ValidationError(c, msgIncompleteAnswers, nil)
	case stderrors.Is(err, ideas.ErrInvalidTransition):
		errors.InvalidStep(c, err.Error())
	case stderrors.Is(err, sessions.ErrSessionNotFound):
		errors.SessionNotFound(c)
	default:
		errors.InternalError(c, "failed to update wizard", err)
	}
}
