package report

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/de-tools/condition-atlas/pkg/models/api"
	"github.com/de-tools/condition-atlas/pkg/models/domain"
	"github.com/de-tools/condition-atlas/pkg/services/report"
)

// Generator is the report pipeline used by the handler.
type Generator interface {
	Generate(ctx context.Context, req report.Request) (string, error)
	Series(ctx context.Context, req report.Request) (domain.RecordSeries, error)
}

type Handler struct {
	generator Generator
}

func NewHandler(generator Generator) *Handler {
	return &Handler{generator: generator}
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var body api.ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(ctx, w, http.StatusBadRequest, api.ErrorResponse{Error: "invalid request body"})
		return
	}

	msg, err := h.generator.Generate(ctx, report.Request{
		CSVPath:    body.CSVPath,
		ExcelPath:  body.ExcelPath,
		OutputPath: body.OutputPath,
	})
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to generate report")
		writeJSON(ctx, w, statusFor(err), api.ErrorResponse{Error: err.Error()})
		return
	}

	writeJSON(ctx, w, http.StatusCreated, api.ReportResponse{Message: msg})
}

func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var body api.ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(ctx, w, http.StatusBadRequest, api.ErrorResponse{Error: "invalid request body"})
		return
	}

	series, err := h.generator.Series(ctx, report.Request{
		CSVPath:   body.CSVPath,
		ExcelPath: body.ExcelPath,
	})
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to read condition log")
		writeJSON(ctx, w, statusFor(err), api.ErrorResponse{Error: err.Error()})
		return
	}

	aggregations := report.Summarize(series)
	response := make([]api.YearSummary, 0, len(aggregations))
	for _, agg := range aggregations {
		ys := api.YearSummary{Year: agg.Year}
		for _, row := range agg.Rows() {
			ys.Levels = append(ys.Levels, api.LevelCount{
				Level:   int(row.Level),
				Trend:   row.Glyph,
				Annual:  row.Annual,
				Monthly: row.Monthly[:],
			})
		}
		response = append(response, ys)
	}

	writeJSON(ctx, w, http.StatusOK, response)
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

func statusFor(err error) int {
	if errors.Is(err, report.ErrInvalidRequest) || errors.Is(err, report.ErrInputRead) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to encode response")
	}
}
