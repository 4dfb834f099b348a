package handlers

import (
	"agriloan-portal/internal/core/domain"
	"agriloan-portal/internal/pkg/response"
	"agriloan-portal/internal/upstream"

	"github.com/gofiber/fiber/v2"
)

// PredictionHandler handles ML prediction endpoints
type PredictionHandler struct {
	predictions *upstream.PredictionsAPI
}

// NewPredictionHandler creates a new prediction handler
func NewPredictionHandler(predictions *upstream.PredictionsAPI) *PredictionHandler {
	return &PredictionHandler{predictions: predictions}
}

// Predict scores a single loan request
// @Summary Predict loan amount
// @Description Score a single loan request with the ML model
// @Tags Predictions
// @Accept json
// @Produce json
// @Param body body domain.PredictionRequest true "Prediction input"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /portal/v1/predictions/predict [post]
func (h *PredictionHandler) Predict(c *fiber.Ctx) error {
	var req domain.PredictionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.CropTypeID == "" {
		return response.BadRequest(c, "Crop type is required")
	}
	if req.FarmSizeHectares <= 0 {
		return response.BadRequest(c, "Farm size must be greater than zero")
	}

	resp, err := h.predictions.Predict(c.UserContext(), req)
	if err != nil {
		return respondUpstreamError(c, err)
	}

	return response.Success(c, "Prediction retrieved successfully", fiber.Map{
		"prediction": resp,
	})
}

// PredictAndUpdate scores an existing application and writes the result back
// @Summary Predict and update application
// @Description Score an application and write the predicted amount back to it
// @Tags Predictions
// @Produce json
// @Param id path string true "Application ID"
// @Success 200 {object} response.Response
// @Router /portal/v1/predictions/predict-and-update/{id} [post]
func (h *PredictionHandler) PredictAndUpdate(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return response.BadRequest(c, "Application ID is required")
	}

	app, err := h.predictions.PredictAndUpdate(c.UserContext(), id)
	if err != nil {
		return respondUpstreamError(c, err)
	}

	return response.Success(c, "Application scored successfully", fiber.Map{
		"application": app,
	})
}

// BatchPredict scores many requests in one call
// @Summary Batch predict
// @Description Score many loan requests in one call
// @Tags Predictions
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /portal/v1/predictions/batch-predict [post]
func (h *PredictionHandler) BatchPredict(c *fiber.Ctx) error {
	var reqs []domain.PredictionRequest
	if err := c.BodyParser(&reqs); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if len(reqs) == 0 {
		return response.BadRequest(c, "At least one prediction request is required")
	}

	resps, err := h.predictions.BatchPredict(c.UserContext(), reqs)
	if err != nil {
		return respondUpstreamError(c, err)
	}

	return response.Success(c, "Predictions retrieved successfully", fiber.Map{
		"predictions": resps,
		"count":       len(resps),
	})
}

// PendingApplications lists applications still waiting for a prediction
// @Summary Pending prediction applications
// @Description List applications still waiting for a prediction
// @Tags Predictions
// @Produce json
// @Success 200 {object} response.Response
// @Router /portal/v1/predictions/pending-applications [get]
func (h *PredictionHandler) PendingApplications(c *fiber.Ctx) error {
	apps, err := h.predictions.PendingApplications(c.UserContext())
	if err != nil {
		return respondUpstreamError(c, err)
	}

	return response.Success(c, "Pending applications retrieved successfully", fiber.Map{
		"applications": apps,
		"count":        len(apps),
	})
}

// ProcessPendingBatch asks the service to score everything pending
// @Summary Process pending batch
// @Description Score every application still waiting for a prediction
// @Tags Predictions
// @Produce json
// @Success 200 {object} response.Response
// @Router /portal/v1/predictions/process-pending-batch [post]
func (h *PredictionHandler) ProcessPendingBatch(c *fiber.Ctx) error {
	result, err := h.predictions.ProcessPendingBatch(c.UserContext())
	if err != nil {
		return respondUpstreamError(c, err)
	}

	return response.Success(c, "Pending batch processed successfully", result)
}

// ModelInfo describes the model currently serving predictions
// @Summary Model info
// @Description Describe the model currently serving predictions
// @Tags Predictions
// @Produce json
// @Success 200 {object} response.Response
// @Router /portal/v1/predictions/model-info [get]
func (h *PredictionHandler) ModelInfo(c *fiber.Ctx) error {
	info, err := h.predictions.ModelInfo(c.UserContext())
	if err != nil {
		return respondUpstreamError(c, err)
	}

	return response.Success(c, "Model info retrieved successfully", fiber.Map{
		"model": info,
	})
}

// ReloadModel reloads the model from its artifact store
// @Summary Reload model
// @Description Reload the serving model from its artifact store
// @Tags Predictions
// @Produce json
// @Success 200 {object} response.Response
// @Router /portal/v1/predictions/reload-model [post]
func (h *PredictionHandler) ReloadModel(c *fiber.Ctx) error {
	if err := h.predictions.ReloadModel(c.UserContext()); err != nil {
		return respondUpstreamError(c, err)
	}

	return response.Success(c, "Model reloaded successfully", nil)
}

// History lists past predictions for one farmer
// @Summary Prediction history
// @Description List past predictions for one farmer
// @Tags Predictions
// @Produce json
// @Param farmerId path string true "Farmer ID"
// @Success 200 {object} response.Response
// @Router /portal/v1/predictions/prediction-history/{farmerId} [get]
func (h *PredictionHandler) History(c *fiber.Ctx) error {
	farmerID := c.Params("farmerId")
	if farmerID == "" {
		return response.BadRequest(c, "Farmer ID is required")
	}

	history, err := h.predictions.History(c.UserContext(), farmerID)
	if err != nil {
		return respondUpstreamError(c, err)
	}

	return response.Success(c, "Prediction history retrieved successfully", fiber.Map{
		"history": history,
	})
}
