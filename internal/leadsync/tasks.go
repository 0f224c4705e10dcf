package leadsync

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// TaskLeadSync is the queue task name for directory sync jobs.
const TaskLeadSync = "leads.sync"

// SyncPayload is the sync job message. Count is passed through as requested,
// including zero and negative values.
type SyncPayload struct {
	Count int `json:"count"`
}

// NewLeadSyncTask builds the queue task for a sync job.
func NewLeadSyncTask(payload SyncPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLeadSync, data), nil
}

// ParseLeadSyncPayload decodes the sync job message from a queue task.
func ParseLeadSyncPayload(task *asynq.Task) (SyncPayload, error) {
	var payload SyncPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return SyncPayload{}, err
	}
	return payload, nil
}
