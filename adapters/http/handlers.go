package http

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"tradecalc/core/calculator"
	"tradecalc/core/job"
	"tradecalc/core/output"
	"tradecalc/internal/errors"
)

// maxBatchSize caps the estimates of one batch or report request
const maxBatchSize = 1000

// CalculateResponse is the data of a calculate response
type CalculateResponse struct {
	Result     output.ResultView  `json:"result"`
	Normalized map[string]float64 `json:"normalized"`
}

// BatchOutcome is one entry of a batch response
type BatchOutcome struct {
	Tool   string             `json:"tool"`
	Label  string             `json:"label,omitempty"`
	Result *output.ResultView `json:"result,omitempty"`
	Error  *ErrorDetail       `json:"error,omitempty"`
}

// BatchResponse is the data of a batch response
type BatchResponse struct {
	Title    string         `json:"title,omitempty"`
	Summary  job.Summary    `json:"summary"`
	Outcomes []BatchOutcome `json:"outcomes"`
}

type estimateRequest struct {
	Tool   string                 `json:"tool"`
	Label  string                 `json:"label"`
	Fields map[string]interface{} `json:"fields"`
}

type batchRequest struct {
	Title     string            `json:"title"`
	Estimates []estimateRequest `json:"estimates"`
}

func (a *Adapter) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"version": a.config.Version,
		"tools":   len(a.registry.Names()),
	})
}

func (a *Adapter) handleListTools(w http.ResponseWriter, r *http.Request) {
	a.writeData(w, r, statusOK, a.registry.Describe())
}

func (a *Adapter) handleDescribeTool(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["tool"]
	tool, ok := a.registry.Get(name)
	if !ok {
		a.writeError(w, r, errors.NotFound("tool", name))
		return
	}
	a.writeData(w, r, statusOK, tool.Describe())
}

func (a *Adapter) handleCalculate(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["tool"]
	tool, ok := a.registry.Get(name)
	if !ok {
		a.writeError(w, r, errors.NotFound("tool", name))
		return
	}

	var values map[string]interface{}
	if err := a.decodeBody(w, r, &values); err != nil {
		a.writeError(w, r, err)
		return
	}
	fields, ferr := rawFields(values)
	if ferr != nil {
		a.writeError(w, r, ferr)
		return
	}

	res := tool.Calculate(fields)
	res.Label = r.URL.Query().Get("label")

	a.logger.Debug("calculated",
		zap.String("request_id", RequestID(r.Context())),
		zap.String("tool", string(res.Tool)),
		zap.Int("notes", len(res.Notes)),
	)

	a.writeData(w, r, statusOK, CalculateResponse{
		Result:     output.View(res),
		Normalized: finite(res.Normalized),
	})
}

func (a *Adapter) handleBatch(w http.ResponseWriter, r *http.Request) {
	j, err := a.decodeJob(w, r)
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	outcomes := job.Run(a.registry, j)
	summary := job.Summarize(outcomes)

	resp := BatchResponse{
		Title:    j.Title,
		Summary:  summary,
		Outcomes: make([]BatchOutcome, 0, len(outcomes)),
	}
	for _, o := range outcomes {
		bo := BatchOutcome{Tool: o.Request.Tool, Label: o.Request.Label}
		if o.OK() {
			v := output.View(o.Result)
			bo.Result = &v
		} else {
			d := detailFor(o.Err)
			bo.Error = &d
		}
		resp.Outcomes = append(resp.Outcomes, bo)
	}

	a.logger.Info("batch",
		zap.String("request_id", RequestID(r.Context())),
		zap.Int("total", summary.Total),
		zap.Int("failed", summary.Failed),
	)

	status := statusOK
	if summary.Failed > 0 {
		status = statusPartial
	}
	a.writeData(w, r, status, resp)
}

func (a *Adapter) handleReport(w http.ResponseWriter, r *http.Request) {
	opts := a.config.Report
	format, ok := output.ParseFormat(mux.Vars(r)["format"])
	if !ok {
		a.writeError(w, r, errors.NotSupported("report format "+mux.Vars(r)["format"]).
			WithContext("supported", output.Formats()))
		return
	}

	j, err := a.decodeJob(w, r)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	if j.Title != "" {
		opts.Title = j.Title
	}

	outcomes := job.Run(a.registry, j)
	summary := job.Summarize(outcomes)

	formatter, err := output.New(string(format), opts)
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := formatter.Render(&buf, job.Results(outcomes)); err != nil {
		a.writeError(w, r, errors.Internal("render "+string(format)+" report", err))
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "report."+format.Extension()))
	w.Header().Set("X-Estimates-Failed", strconv.Itoa(summary.Failed))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func (a *Adapter) handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, errorResponse(r, string(errors.TypeNotFound), "no route for "+r.URL.Path))
}

func (a *Adapter) handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, errorResponse(r, "METHOD_NOT_ALLOWED", r.Method+" not allowed on "+r.URL.Path))
}

// decodeBody decodes a size-limited JSON body, keeping numbers as written
func (a *Adapter) decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) error {
	body := http.MaxBytesReader(w, r.Body, a.config.MaxBodySize)
	defer body.Close()

	dec := json.NewDecoder(body)
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return errors.Newf(errors.TypeInput, "request body exceeds %d bytes", tooLarge.Limit)
		}
		if err == io.EOF {
			return errors.Input("request body is empty")
		}
		return errors.Wrap(errors.TypeInput, "invalid JSON body", err)
	}
	return nil
}

// decodeJob accepts {"title": ..., "estimates": [...]} or a bare list
func (a *Adapter) decodeJob(w http.ResponseWriter, r *http.Request) (*job.Job, error) {
	var raw json.RawMessage
	if err := a.decodeBody(w, r, &raw); err != nil {
		return nil, err
	}

	var req batchRequest
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := decodeNumbers(trimmed, &req.Estimates); err != nil {
			return nil, errors.Wrap(errors.TypeInput, "invalid estimate list", err)
		}
	} else if err := decodeNumbers(trimmed, &req); err != nil {
		return nil, errors.Wrap(errors.TypeInput, "invalid batch body", err)
	}

	if len(req.Estimates) == 0 {
		return nil, errors.Input("batch has no estimates")
	}
	if len(req.Estimates) > maxBatchSize {
		return nil, errors.Newf(errors.TypeInput, "batch has %d estimates, the limit is %d", len(req.Estimates), maxBatchSize)
	}

	j := &job.Job{Title: req.Title, Requests: make([]job.Request, 0, len(req.Estimates))}
	for i, est := range req.Estimates {
		if est.Tool == "" {
			return nil, errors.Newf(errors.TypeInput, "estimate %d: tool is required", i+1)
		}
		fields, err := rawFields(est.Fields)
		if err != nil {
			return nil, errors.Newf(errors.TypeInput, "estimate %d: %s", i+1, err.Message)
		}
		j.Requests = append(j.Requests, job.Request{
			Tool:   est.Tool,
			Label:  est.Label,
			Fields: fields,
			Source: fmt.Sprintf("estimates[%d]", i),
		})
	}
	return j, nil
}

func decodeNumbers(data []byte, v interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(v)
}

// rawFields accepts scalar JSON values only
func rawFields(values map[string]interface{}) (calculator.Fields, *errors.Error) {
	for k, v := range values {
		switch v.(type) {
		case nil, string, bool, json.Number:
		default:
			return nil, errors.Newf(errors.TypeInput, "field %q must be a string or a number", k)
		}
	}
	return calculator.FieldsFrom(values), nil
}

// finite drops values JSON cannot carry
func finite(m map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out[k] = v
		}
	}
	return out
}
