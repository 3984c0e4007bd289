package transport

import "time"

// CallOutcomeRequest is the report the voice automation posts after a call.
type CallOutcomeRequest struct {
	CallID               string         `json:"call_id" validate:"required,notblank,max=200"`
	LeadID               *int64         `json:"lead_id" validate:"omitempty,gt=0"`
	Direction            string         `json:"direction" validate:"omitempty,oneof=inbound outbound"`
	CustomerName         string         `json:"customer_name" validate:"max=200"`
	CustomerNumber       string         `json:"customer_number" validate:"max=40"`
	CallerPhoneNumber    string         `json:"caller_phone_number" validate:"max=40"`
	PhoneNumber          string         `json:"phone_number" validate:"max=40"`
	AssistantPhoneNumber string         `json:"assistant_phone_number" validate:"max=40"`
	Metadata             map[string]any `json:"metadata"`
	Outcome              string         `json:"outcome" validate:"max=50"`
	DurationSeconds      *int           `json:"duration_seconds" validate:"omitempty,gte=0"`
	Transcript           string         `json:"transcript"`
	RecordingURL         string         `json:"recording_url" validate:"omitempty,url"`
}

type ListCallLogsRequest struct {
	LeadID *int64 `form:"leadId" validate:"omitempty,gt=0"`
	Limit  int    `form:"limit" validate:"omitempty,min=1,max=500"`
}

type CallLogResponse struct {
	ID              int64     `json:"id"`
	LeadID          *int64    `json:"leadId"`
	CallID          *string   `json:"callId"`
	Direction       string    `json:"direction"`
	CustomerName    *string   `json:"customerName"`
	Number          string    `json:"number"`
	NumberDisplay   string    `json:"numberDisplay"`
	Outcome         *string   `json:"outcome"`
	DurationSeconds *int      `json:"durationSeconds"`
	Transcript      *string   `json:"transcript"`
	RecordingURL    *string   `json:"recordingUrl"`
	CreatedAt       time.Time `json:"createdAt"`
}

type InitiateCallResponse struct {
	LeadID      int64  `json:"leadId"`
	PhoneNumber string `json:"phoneNumber"`
	Status      string `json:"status"`
}

type CallOutcomeAcceptedResponse struct {
	CallID string `json:"callId"`
	Queued bool   `json:"queued"`
}
