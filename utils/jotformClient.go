package utils

import (
	"fmt"

	"github.com/go-resty/resty/v2"
)

// JotFormSubmission is a single response to a JotForm form
type JotFormSubmission struct {
	ID        string                 `json:"id"`
	FormID    string                 `json:"form_id"`
	CreatedAt string                 `json:"created_at"`
	Status    string                 `json:"status"`
	Answers   map[string]interface{} `json:"answers"`
}

type jotformSubmissionList struct {
	ResponseCode int                 `json:"responseCode"`
	Message      string              `json:"message"`
	Content      []JotFormSubmission `json:"content"`
}

// FetchJotFormSubmissions lists submissions for a form, newest first.
func FetchJotFormSubmissions(apiKey, formID string) ([]JotFormSubmission, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client := resty.New()

	var result jotformSubmissionList
	resp, err := client.R().
		SetHeader("APIKEY", apiKey).
		SetQueryParams(map[string]string{
			"orderby": "created_at",
			"limit":   "100",
		}).
		SetResult(&result).
		Get(fmt.Sprintf("https://api.jotform.com/form/%s/submissions", formID))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch submissions: %v", err)
	}
	if resp.IsError() || result.ResponseCode != 200 {
		return nil, fmt.Errorf("jotform API error: %s", result.Message)
	}

	return result.Content, nil
}
