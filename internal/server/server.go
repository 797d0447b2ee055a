// Package server implements the line-oriented TCP request multiplexer:
// it accepts connections, reads newline-delimited JSON requests, and
// dispatches submit/status/stats against the facade without ever
// blocking a worker.
package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net"

	"go.uber.org/zap"

	"judged/internal/facade"
	"judged/internal/judgeerr"
	"judged/internal/model"
	"judged/internal/obslog"
)

// Facade is the subset of *facade.Facade the multiplexer depends on.
type Facade interface {
	Submit(req facade.SubmitRequest) string
	Status(taskID string) (model.Verdict, bool)
	Stats() facade.Stats
}

// Server owns the TCP listener and dispatches every accepted connection
// to its own goroutine.
type Server struct {
	addr   string
	facade Facade
}

// New builds a Server bound to addr ("host:port"), dispatching against f.
func New(addr string, f Facade) *Server {
	return &Server{addr: addr, facade: f}
}

// ListenAndServe binds the listener and serves connections until it is
// closed or accept fails unrecoverably.
func (s *Server) ListenAndServe() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.addr, err)
	}
	defer ln.Close()

	obslog.L().Info("request multiplexer listening", zap.String("addr", s.addr))

	for {
		conn, err := ln.Accept()
		if err != nil {
			return fmt.Errorf("accept: %w", err)
		}
		go s.handleConn(conn)
	}
}

// handleConn reads JSON request objects from conn and writes one
// response per request. Requests may be newline-delimited or sent as a
// bare object with no trailing delimiter; each is dispatched as soon as
// the object is complete. A malformed request gets an error response and
// ends the connection.
func (s *Server) handleConn(conn net.Conn) {
	defer conn.Close()

	dec := json.NewDecoder(conn)
	enc := json.NewEncoder(conn)

	for {
		var req Request
		if err := dec.Decode(&req); err != nil {
			if err == io.EOF {
				return
			}
			protoErr := judgeerr.Newf(judgeerr.ProtocolInvalidJSON, "Invalid JSON: %v", err)
			_ = enc.Encode(errResponse(protoErr.Error()))
			return
		}

		resp := s.dispatch(req)
		if err := enc.Encode(resp); err != nil {
			obslog.L().Warn("write response failed", zap.Error(err))
			return
		}
	}
}

func (s *Server) dispatch(req Request) Response {
	switch req.Action {
	case "submit":
		return s.dispatchSubmit(req)
	case "status":
		return s.dispatchStatus(req)
	case "stats":
		return s.dispatchStats()
	default:
		protoErr := judgeerr.Newf(judgeerr.ProtocolUnknownAction, "Unknown action: %s", req.Action)
		return errResponse(protoErr.Error())
	}
}

func (s *Server) dispatchSubmit(req Request) Response {
	if req.SubmissionID == nil || req.ProblemID == nil || req.Code == nil ||
		req.Language == nil || req.TimeLimitMs == nil || req.MemoryLimitBytes == nil {
		protoErr := judgeerr.New(judgeerr.ProtocolMissingField, "Missing required fields for submit action")
		return errResponse(protoErr.Error())
	}

	judgeID := s.facade.Submit(facade.SubmitRequest{
		SubmissionID:     *req.SubmissionID,
		ProblemID:        *req.ProblemID,
		Code:             *req.Code,
		Language:         *req.Language,
		TimeLimitMs:      *req.TimeLimitMs,
		MemoryLimitBytes: *req.MemoryLimitBytes,
	})
	return Response{Status: "ok", JudgeID: judgeID}
}

func (s *Server) dispatchStatus(req Request) Response {
	if req.JudgeID == nil {
		protoErr := judgeerr.New(judgeerr.ProtocolMissingField, "Missing required fields for status action")
		return errResponse(protoErr.Error())
	}
	v, ok := s.facade.Status(*req.JudgeID)
	if !ok {
		protoErr := judgeerr.New(judgeerr.ProtocolUnknownID, "Judge ID not found")
		return errResponse(protoErr.Error())
	}
	return okResponse(verdictToData(v))
}

func (s *Server) dispatchStats() Response {
	stats := s.facade.Stats()
	score := int32(stats.ActiveWorkers)
	return okResponse(&VerdictData{Status: "RUNNING", Score: score})
}
