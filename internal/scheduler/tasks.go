package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskBatchValidate = "phone.batch_validate"

type BatchValidatePayload struct {
	JobID   string   `json:"jobId"`
	Numbers []string `json:"numbers"`
	Region  string   `json:"region"`
}

func NewBatchValidateTask(payload BatchValidatePayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskBatchValidate, data), nil
}

func ParseBatchValidatePayload(task *asynq.Task) (BatchValidatePayload, error) {
	var payload BatchValidatePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return BatchValidatePayload{}, err
	}
	return payload, nil
}
