package server

import (
	"bufio"
	"encoding/json"
	"net"
	"testing"
	"time"

	"judged/internal/facade"
	"judged/internal/model"
)

type fakeFacade struct {
	submitID string
	verdicts map[string]model.Verdict
	stats    facade.Stats
}

func (f *fakeFacade) Submit(req facade.SubmitRequest) string { return f.submitID }

func (f *fakeFacade) Status(taskID string) (model.Verdict, bool) {
	v, ok := f.verdicts[taskID]
	return v, ok
}

func (f *fakeFacade) Stats() facade.Stats { return f.stats }

func ptrInt32(v int32) *int32   { return &v }
func ptrUint64(v uint64) *uint64 { return &v }
func ptrString(v string) *string { return &v }

func TestDispatchSubmitRequiresAllFields(t *testing.T) {
	s := &Server{facade: &fakeFacade{submitID: "abc"}}
	resp := s.dispatch(Request{Action: "submit"})
	if resp.Status != "error" {
		t.Fatalf("dispatch(submit missing fields) = %+v, want error", resp)
	}
}

func TestDispatchSubmitSuccess(t *testing.T) {
	s := &Server{facade: &fakeFacade{submitID: "abc"}}
	resp := s.dispatch(Request{
		Action:           "submit",
		SubmissionID:     ptrInt32(1),
		ProblemID:        ptrInt32(2),
		Code:             ptrString("print(1)"),
		Language:         ptrString("python_3"),
		TimeLimitMs:      ptrInt32(2000),
		MemoryLimitBytes: ptrUint64(1 << 20),
	})
	if resp.Status != "ok" || resp.JudgeID != "abc" {
		t.Fatalf("dispatch(submit) = %+v, want ok/abc", resp)
	}
}

func TestDispatchStatusUnknownID(t *testing.T) {
	s := &Server{facade: &fakeFacade{verdicts: map[string]model.Verdict{}}}
	resp := s.dispatch(Request{Action: "status", JudgeID: ptrString("nope")})
	if resp.Status != "error" || resp.Error != "Judge ID not found" {
		t.Fatalf("dispatch(status unknown) = %+v", resp)
	}
}

func TestDispatchStatusFound(t *testing.T) {
	s := &Server{facade: &fakeFacade{verdicts: map[string]model.Verdict{
		"abc": {Status: model.StatusAccepted, Score: 100},
	}}}
	resp := s.dispatch(Request{Action: "status", JudgeID: ptrString("abc")})
	if resp.Status != "ok" || resp.Data == nil || resp.Data.Status != model.StatusAccepted {
		t.Fatalf("dispatch(status found) = %+v", resp)
	}
}

func TestDispatchStatsReportsActiveCountAsScore(t *testing.T) {
	s := &Server{facade: &fakeFacade{stats: facade.Stats{ActiveWorkers: 3}}}
	resp := s.dispatch(Request{Action: "stats"})
	if resp.Status != "ok" || resp.Data == nil || resp.Data.Status != "RUNNING" || resp.Data.Score != 3 {
		t.Fatalf("dispatch(stats) = %+v", resp)
	}
}

func TestDispatchUnknownAction(t *testing.T) {
	s := &Server{facade: &fakeFacade{}}
	resp := s.dispatch(Request{Action: "foo"})
	if resp.Status != "error" || resp.Error != "Unknown action: foo" {
		t.Fatalf("dispatch(unknown) = %+v, want Unknown action: foo", resp)
	}
}

func TestHandleConnRoundTripsNewlineDelimitedJSON(t *testing.T) {
	s := New("unused", &fakeFacade{submitID: "xyz"})

	clientConn, serverConn := net.Pipe()
	defer clientConn.Close()
	go s.handleConn(serverConn)

	req := Request{
		Action:           "submit",
		SubmissionID:     ptrInt32(1),
		ProblemID:        ptrInt32(2),
		Code:             ptrString("print(1)"),
		Language:         ptrString("python_3"),
		TimeLimitMs:      ptrInt32(2000),
		MemoryLimitBytes: ptrUint64(1 << 20),
	}
	line, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	clientConn.SetDeadline(time.Now().Add(2 * time.Second))
	if _, err := clientConn.Write(append(line, '\n')); err != nil {
		t.Fatalf("Write: %v", err)
	}

	scanner := bufio.NewScanner(clientConn)
	if !scanner.Scan() {
		t.Fatalf("Scan failed: %v", scanner.Err())
	}
	var resp Response
	if err := json.Unmarshal(scanner.Bytes(), &resp); err != nil {
		t.Fatalf("Unmarshal response: %v", err)
	}
	if resp.Status != "ok" || resp.JudgeID != "xyz" {
		t.Fatalf("response = %+v, want ok/xyz", resp)
	}
}

func TestHandleConnMalformedJSONClosesAfterError(t *testing.T) {
	s := New("unused", &fakeFacade{})

	clientConn, serverConn := net.Pipe()
	defer clientConn.Close()
	go s.handleConn(serverConn)

	clientConn.SetDeadline(time.Now().Add(2 * time.Second))
	if _, err := clientConn.Write([]byte("{not json\n")); err != nil {
		t.Fatalf("Write: %v", err)
	}

	scanner := bufio.NewScanner(clientConn)
	if !scanner.Scan() {
		t.Fatalf("Scan failed: %v", scanner.Err())
	}
	var resp Response
	if err := json.Unmarshal(scanner.Bytes(), &resp); err != nil {
		t.Fatalf("Unmarshal response: %v", err)
	}
	if resp.Status != "error" {
		t.Fatalf("response = %+v, want error", resp)
	}
}
