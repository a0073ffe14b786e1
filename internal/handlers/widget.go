package handlers

import (
	"net/http"

	"really-simple-feedback/internal/respond"
)

// WidgetConfig is the static configuration injected into the front-end
// feedback widget. Nothing in it is secret.
type WidgetConfig struct {
	SiteURL                    string `json:"site_url"`
	FeedbackButtonText         string `json:"feedback_button_text"`
	ThankYouMessage            string `json:"thank_you_message"`
	WidgetHeaderText           string `json:"widget_header_text"`
	SatisfactionMessage        string `json:"satisfaction_message"`
	SubmitText                 string `json:"submit_text"`
	UnsatisfiedPlaceholderText string `json:"unsatisfied_placeholder_text"`
	SatisfiedPlaceholderText   string `json:"satisfied_placeholder_text"`
	CommentSectionErrorMessage string `json:"comment_section_error_message"`
	GeneralErrorMessage        string `json:"general_error_message"`
}

func DefaultWidgetConfig(siteURL string) WidgetConfig {
	return WidgetConfig{
		SiteURL:                    siteURL,
		FeedbackButtonText:         "Feedback",
		ThankYouMessage:            "Thank you for your feedback!",
		WidgetHeaderText:           "Share Your Feedback",
		SatisfactionMessage:        "Are you satisfied with this page?",
		SubmitText:                 "Send",
		UnsatisfiedPlaceholderText: "What can we do better?",
		SatisfiedPlaceholderText:   "What do you like the most?",
		CommentSectionErrorMessage: "Your feedback is required.",
		GeneralErrorMessage:        "Something went wrong. Try again in a few minutes.",
	}
}

type WidgetHandler struct {
	config WidgetConfig
}

func NewWidgetHandler(config WidgetConfig) *WidgetHandler {
	return &WidgetHandler{config: config}
}

// --- GET /widget/config ---

func (h *WidgetHandler) Config(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, h.config)
}
