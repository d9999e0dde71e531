package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/civic_pulse/mlservice/internal/ml"
	"github.com/civic_pulse/mlservice/internal/models"
)

const statusMessage = "Python ML Service is running"

type Predictor interface {
	Predict(ctx context.Context, address string) (models.Prediction, error)
}

// ReadinessFunc reports whether startup state and backing stores are usable.
type ReadinessFunc func(ctx context.Context) error

type Handler struct {
	Predictions    Predictor
	Categorizer    ml.Categorizer
	Ready          ReadinessFunc
	Validator      *validator.Validate
	Logger         zerolog.Logger
	RequestTimeout time.Duration
}

// PredictRequest uses a pointer so an empty address is accepted while a
// missing one is not.
type PredictRequest struct {
	Address *string `json:"address" validate:"required"`
}

type CategorizeRequest struct {
	Text string `json:"text"`
}

// @Summary Service status
// @Tags status
// @Produce json
// @Success 200 {object} map[string]string
// @Router / [get]
func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": statusMessage})
}

func (h *Handler) Healthz(c *gin.Context) {
	if h.Ready != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		if err := h.Ready(ctx); err != nil {
			writeError(c, http.StatusServiceUnavailable, "NOT_READY", "Service not ready", err.Error())
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Summary Predict complaint volume for an address
// @Tags predict
// @Accept json
// @Produce json
// @Param request body PredictRequest true "address"
// @Success 200 {object} models.Prediction
// @Failure 400 {object} map[string]any
// @Failure 500 {object} map[string]any
// @Router /predict [post]
func (h *Handler) Predict(c *gin.Context) {
	var req PredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}

	ctx := c.Request.Context()
	if h.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.RequestTimeout)
		defer cancel()
	}

	result, err := h.Predictions.Predict(ctx, *req.Address)
	if err != nil {
		h.Logger.Error().Err(err).Str("address", *req.Address).Msg("prediction failed")
		_ = c.Error(err)
		writeError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Prediction failed", nil)
		return
	}
	c.JSON(http.StatusOK, result)
}

// @Summary Categorize complaint text
// @Tags categorize
// @Accept json
// @Produce json
// @Param request body CategorizeRequest true "text"
// @Success 200 {object} map[string]string
// @Router /categorize [post]
func (h *Handler) Categorize(c *gin.Context) {
	var req CategorizeRequest
	// the label does not depend on the text, so a bad body is not an error
	_ = c.ShouldBindJSON(&req)

	category, err := h.Categorizer.Categorize(c.Request.Context(), req.Text)
	if err != nil {
		_ = c.Error(err)
		writeError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Categorization failed", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"category": category})
}

func writeError(c *gin.Context, status int, code string, message string, details any) {
	c.JSON(status, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}
