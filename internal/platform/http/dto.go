package http

import (
	"errors"

	"github.com/callguard/spam-checker/internal/domain"
)

type SpamScoreRequest struct {
	PhoneNumber string `json:"phone_number"`
}

func (r *SpamScoreRequest) Validate() error {
	if !domain.IsValidPhoneNumber(r.PhoneNumber) {
		return errors.New("invalid phone number format, must be E.164")
	}
	return nil
}

type SpamScoreResponse struct {
	SpamScore int    `json:"spam_score"`
	CheckedAt string `json:"checked_at"`
}

type ClassifyResult struct {
	PhoneNumber string `json:"phone_number"`
	SpamScore   int    `json:"spam_score"`
}

type ClassifyResponse struct {
	Result       ClassifyResult `json:"result"`
	ModelVersion string         `json:"model_version"`
	CreatedAt    string         `json:"created_at"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}
