package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskCallOutcomeRecorded = "calls.outcome.recorded"

// CallOutcomePayload is a call report from the voice automation, as received
// by the call-outcome webhook.
type CallOutcomePayload struct {
	CallID               string         `json:"call_id"`
	LeadID               *int64         `json:"lead_id,omitempty"`
	Direction            string         `json:"direction"`
	CustomerName         string         `json:"customer_name,omitempty"`
	CustomerNumber       string         `json:"customer_number,omitempty"`
	CallerPhoneNumber    string         `json:"caller_phone_number,omitempty"`
	PhoneNumber          string         `json:"phone_number,omitempty"`
	AssistantPhoneNumber string         `json:"assistant_phone_number,omitempty"`
	Metadata             map[string]any `json:"metadata,omitempty"`
	Outcome              string         `json:"outcome"`
	DurationSeconds      *int           `json:"duration_seconds,omitempty"`
	Transcript           string         `json:"transcript,omitempty"`
	RecordingURL         string         `json:"recording_url,omitempty"`
}

func NewCallOutcomeTask(payload CallOutcomePayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCallOutcomeRecorded, data), nil
}

func ParseCallOutcomePayload(task *asynq.Task) (CallOutcomePayload, error) {
	var payload CallOutcomePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return CallOutcomePayload{}, err
	}
	return payload, nil
}
