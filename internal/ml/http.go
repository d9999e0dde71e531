package ml

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// HTTPPredictor delegates prediction to a model server exposing POST /predict.
type HTTPPredictor struct {
	BaseURL string
	Client  *http.Client
}

type predictRequest struct {
	Features Features `json:"features"`
}

type predictResponse struct {
	Prediction *float64 `json:"prediction"`
}

func (h HTTPPredictor) Predict(ctx context.Context, f Features) (float64, error) {
	if h.Client == nil {
		h.Client = &http.Client{Timeout: 15 * time.Second}
	}

	b, _ := json.Marshal(predictRequest{Features: f})
	url := strings.TrimRight(h.BaseURL, "/") + "/predict"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(b))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.Client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, fmt.Errorf("model service error: %s", resp.Status)
	}

	var r predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return 0, err
	}
	if r.Prediction == nil {
		return 0, errors.New("model service returned no prediction")
	}
	return *r.Prediction, nil
}
