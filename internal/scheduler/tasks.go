package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskInspectionReminder = "inspections.reminder"

// InspectionReminderPayload identifies the inspection a reminder is for.
type InspectionReminderPayload struct {
	InspectionID string `json:"inspectionId"`
}

func NewInspectionReminderTask(payload InspectionReminderPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskInspectionReminder, data), nil
}

func ParseInspectionReminderPayload(task *asynq.Task) (InspectionReminderPayload, error) {
	var payload InspectionReminderPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return InspectionReminderPayload{}, err
	}
	return payload, nil
}
