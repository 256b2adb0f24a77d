package cli

import (
	"errors"

	"github.com/Veraticus/akihabara-market/internal/common"
	"github.com/Veraticus/akihabara-market/internal/storage"
)

// Messages shown for well-known failures.
const (
	MsgProductNotFound   = "Product not found."
	MsgCustomerNotFound  = "Customer not found."
	MsgDuplicateEmail    = "Email already registered."
	MsgAssistantDisabled = "AI assistant is not configured. Set llm.api_key (or OPENROUTER_API_KEY) to enable it."
)

// ErrorMessage turns a storage or validation error into a sentence for the
// operator.
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, storage.ErrProductNotFound):
		return MsgProductNotFound
	case errors.Is(err, storage.ErrCustomerNotFound):
		return MsgCustomerNotFound
	case errors.Is(err, storage.ErrDuplicateEmail):
		return MsgDuplicateEmail
	case errors.Is(err, common.ErrAssistantDisabled):
		return MsgAssistantDisabled
	}

	var userErr *common.UserError
	if errors.As(err, &userErr) {
		return userErr.UserMessage
	}
	return err.Error()
}

// AIErrorMessage formats an assistant failure.
func AIErrorMessage(err error) string {
	if errors.Is(err, common.ErrAssistantDisabled) {
		return MsgAssistantDisabled
	}
	return "AI request failed: " + err.Error()
}
