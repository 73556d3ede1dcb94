package models

import "strings"

type ChatMessageRequest struct {
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
}

// implements the Validator interface
func (r *ChatMessageRequest) Validate() error {
	// The message text itself is not validated beyond presence; length and
	// content are the candidate's business.
	if strings.TrimSpace(r.Message) == "" {
		return &ErrorResponse{
			Code:    "missing_message",
			Message: "Message field is required",
		}
	}
	return nil
}

type CreateSessionRequest struct {
	// Optional; unknown categories resolve to the General prompt.
	Category string `json:"category"`
}

func (r *CreateSessionRequest) Validate() error {
	return nil
}

type SetCategoryRequest struct {
	Category string `json:"category"`
}

func (r *SetCategoryRequest) Validate() error {
	if strings.TrimSpace(r.Category) == "" {
		return &ErrorResponse{
			Code:    "missing_category",
			Message: "Category field is required",
		}
	}
	return nil
}
