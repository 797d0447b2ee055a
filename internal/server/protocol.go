package server

import "judged/internal/model"

// Request is one line of the wire protocol: a JSON object naming an
// action and carrying whichever fields that action requires.
type Request struct {
	Action           string  `json:"action"`
	SubmissionID     *int32  `json:"submission_id,omitempty"`
	ProblemID        *int32  `json:"problem_id,omitempty"`
	Code             *string `json:"code,omitempty"`
	Language         *string `json:"language,omitempty"`
	TimeLimitMs      *int32  `json:"time_limit,omitempty"`
	MemoryLimitBytes *uint64 `json:"memory_limit,omitempty"`
	JudgeID          *string `json:"judge_id,omitempty"`
}

// Response is the single reply written for every request line.
type Response struct {
	Status  string       `json:"status"`
	JudgeID string       `json:"judge_id,omitempty"`
	Data    *VerdictData `json:"data,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// VerdictData mirrors model.Verdict under the wire's field names.
type VerdictData struct {
	Status          model.Status `json:"status"`
	Score           int32        `json:"score"`
	ExecutionTimeMs *int32       `json:"execution_time,omitempty"`
	MemoryUsedBytes *int64       `json:"memory_used,omitempty"`
	ErrorMessage    *string      `json:"error_message,omitempty"`
}

func verdictToData(v model.Verdict) *VerdictData {
	return &VerdictData{
		Status:          v.Status,
		Score:           v.Score,
		ExecutionTimeMs: v.ExecutionTimeMs,
		MemoryUsedBytes: v.MemoryUsedBytes,
		ErrorMessage:    v.ErrorMessage,
	}
}

func okResponse(data *VerdictData) Response {
	return Response{Status: "ok", Data: data}
}

func errResponse(msg string) Response {
	return Response{Status: "error", Error: msg}
}
