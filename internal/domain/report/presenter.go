package report

import (
	"errors"
	"strings"

	"github.com/bryanwahyu/labinterpreter/internal/domain/ai"
	"github.com/bryanwahyu/labinterpreter/internal/domain/labresults"
)

// Presentation is what a host shows the user after an analysis attempt.
type Presentation struct {
	DisplayText  string `json:"display_text"`
	Downloadable bool   `json:"downloadable"`
	ErrorKind    string `json:"error_kind,omitempty"`
}

var analysisMessages = map[ai.Kind]string{
	ai.KindAuthFailure:      "Authentication with the analysis provider failed. Check the configured credentials and try again.",
	ai.KindTransportFailure: "The analysis provider could not be reached. Check the network connection and try again.",
	ai.KindVendorError:      "The analysis provider rejected the request. Please try again later.",
	ai.KindEmptyResponse:    "The analysis provider returned an empty answer. Please try again.",
	ai.KindTimeout:          "The analysis took too long and was cancelled. Please try again.",
}

const quotaMessage = "The analysis provider is rate limiting requests. Please wait a moment and try again."

const genericMessage = "Analysis failed. Please try again."

// SchemaGuidance tells users what the uploaded table must look like.
func SchemaGuidance() string {
	return "Make sure your CSV has the columns: " + strings.Join(labresults.RequiredColumns, ", ") + "."
}

// Present turns an analysis outcome into user-facing output. Failure messages
// are fixed per kind and never include vendor error text.
func Present(text string, err error) Presentation {
	if err == nil {
		return Presentation{DisplayText: text, Downloadable: true}
	}

	var ie *labresults.InputError
	if errors.As(err, &ie) {
		msg := "The uploaded file could not be read."
		switch ie.Kind {
		case labresults.InputMissingColumns:
			msg = "The uploaded file is missing required columns: " + strings.Join(ie.Columns, ", ") + "."
		case labresults.InputMalformedRows:
			msg = "Some rows have empty values; every row needs all four fields."
		case labresults.InputEmpty:
			msg = "The uploaded file is empty."
		}
		return Presentation{DisplayText: msg + " " + SchemaGuidance(), ErrorKind: string(ie.Kind)}
	}

	var ae *ai.AnalysisError
	if errors.As(err, &ae) {
		msg, ok := analysisMessages[ae.Kind]
		if !ok {
			msg = genericMessage
		}
		if errors.Is(ae, ai.ErrQuotaExceeded) {
			msg = quotaMessage
		}
		return Presentation{DisplayText: msg, ErrorKind: string(ae.Kind)}
	}

	return Presentation{DisplayText: genericMessage, ErrorKind: "internal"}
}
