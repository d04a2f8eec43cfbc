package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/vrtu/musharaka/internal/cache"
	"github.com/vrtu/musharaka/internal/calculations"
	"github.com/vrtu/musharaka/internal/leads"
	"github.com/vrtu/musharaka/internal/metrics"
	"github.com/vrtu/musharaka/internal/validators"
)

// CalculateResponse is the projection with its conventional mortgage comparison
type CalculateResponse struct {
	*calculations.ProjectionResult
	*calculations.ComparisonResult
}

type messageResponse struct {
	Message string                      `json:"message"`
	Errors  []validators.FieldViolation `json:"errors,omitempty"`
}

// Calculate runs the projection and the conventional comparison on an already resolved input
func Calculate(in calculations.ProjectionInput, conventionalRate float64) (*CalculateResponse, error) {
	projection, err := calculations.Project(in)
	if err != nil {
		return nil, err
	}
	comparison, err := calculations.CompareWithConventional(projection, in.Term, conventionalRate)
	if err != nil {
		return nil, err
	}
	return &CalculateResponse{ProjectionResult: projection, ComparisonResult: comparison}, nil
}

func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	ctx, span := s.tracer.Start(r.Context(), "calculate")
	defer span.End()

	var req validators.ProjectionRequest
	if violations := decodeBody(w, r, &req); violations != nil {
		span.SetAttributes(attribute.String("error", "decode_error"))
		metrics.ProjectionRequests.WithLabelValues("validation_error").Inc()
		metrics.ProjectionErrors.WithLabelValues("decode").Inc()
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: "Invalid input data", Errors: violations})
		return
	}

	in, err := validators.ResolveProjection(s.cfg, req)
	if err != nil {
		span.SetAttributes(attribute.String("error", "validation_error"))
		metrics.ProjectionRequests.WithLabelValues("validation_error").Inc()
		metrics.ProjectionErrors.WithLabelValues("validation").Inc()

		var invalid *validators.InvalidInputError
		if errors.As(err, &invalid) {
			writeJSON(w, http.StatusBadRequest, messageResponse{Message: "Invalid input data", Errors: invalid.Violations})
			return
		}
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: "Invalid input data"})
		return
	}

	span.SetAttributes(
		attribute.Float64("property_price", in.PropertyPrice),
		attribute.Float64("deposit_amount", in.DepositAmount),
		attribute.Int("term", in.Term),
		attribute.String("property_type", string(in.PropertyType)),
		attribute.Int("bedroom_count", in.BedroomCount),
		attribute.Bool("has_builder_report", in.HasBuilderReport),
		attribute.Float64("additional_share_payment", in.AdditionalSharePayment),
		attribute.Bool("affordability", in.Affordability != nil),
	)

	var cacheKey string
	if s.cache != nil {
		cacheKey, err = cache.ProjectionKey(in, s.cfg.ConventionalRate)
		if err != nil {
			s.logger.Warn("projection cache key failed", "error", err)
		} else {
			body, ok, err := s.cache.Get(ctx, cacheKey)
			switch {
			case err != nil:
				metrics.CacheLookups.WithLabelValues("error").Inc()
				s.logger.Warn("projection cache read failed", "error", err)
			case ok:
				span.SetAttributes(attribute.Bool("cache_hit", true))
				metrics.CacheLookups.WithLabelValues("hit").Inc()
				metrics.ProjectionRequests.WithLabelValues("success").Inc()
				writeRawJSON(w, http.StatusOK, []byte(body))
				return
			default:
				metrics.CacheLookups.WithLabelValues("miss").Inc()
			}
		}
	}

	result, err := Calculate(in, s.cfg.ConventionalRate)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "calculation_error")
		metrics.ProjectionRequests.WithLabelValues("error").Inc()
		metrics.ProjectionErrors.WithLabelValues("calculation").Inc()
		s.logger.Error("calculation failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, messageResponse{Message: "Error performing calculation"})
		return
	}

	if !result.FullOwnershipReached {
		metrics.NonConvergence.Inc()
		s.logger.Warn("full ownership not reached within simulation horizon",
			"property_price", in.PropertyPrice,
			"deposit_amount", in.DepositAmount,
			"term", in.Term,
			"additional_share_payment", in.AdditionalSharePayment,
			"reported_years", result.FullOwnershipYears,
		)
	}
	metrics.FullOwnershipYears.Observe(float64(result.FullOwnershipYears))

	span.SetAttributes(
		attribute.Bool("success", true),
		attribute.Float64("monthly_payment", result.MonthlyPayment),
		attribute.Int("full_ownership_years", result.FullOwnershipYears),
		attribute.Bool("full_ownership_reached", result.FullOwnershipReached),
		attribute.Float64("applied_markup", result.PropertyDetails.AppliedMarkup),
	)

	body, err := json.Marshal(result)
	if err != nil {
		span.RecordError(err)
		metrics.ProjectionRequests.WithLabelValues("error").Inc()
		metrics.ProjectionErrors.WithLabelValues("encode").Inc()
		s.logger.Error("failed to encode projection", "error", err)
		writeJSON(w, http.StatusInternalServerError, messageResponse{Message: "Error performing calculation"})
		return
	}

	if s.cache != nil && cacheKey != "" {
		if err := s.cache.Set(ctx, cacheKey, string(body), s.cfg.CacheTTL); err != nil {
			s.logger.Warn("projection cache write failed", "error", err)
		}
	}

	metrics.ProjectionRequests.WithLabelValues("success").Inc()
	writeRawJSON(w, http.StatusOK, body)
}

func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	ctx, span := s.tracer.Start(r.Context(), "contact")
	defer span.End()

	var dto leads.CreateLeadDTO
	if violations := decodeBody(w, r, &dto); violations != nil {
		metrics.LeadSubmissions.WithLabelValues("validation_error").Inc()
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: "Invalid form data", Errors: violations})
		return
	}

	if err := validators.CheckLead(dto); err != nil {
		span.SetAttributes(attribute.String("error", "validation_error"))
		metrics.LeadSubmissions.WithLabelValues("validation_error").Inc()

		var invalid *validators.InvalidInputError
		if errors.As(err, &invalid) {
			writeJSON(w, http.StatusBadRequest, messageResponse{Message: "Invalid form data", Errors: invalid.Violations})
			return
		}
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: "Invalid form data"})
		return
	}

	lead := dto.ToLead(time.Now())
	span.SetAttributes(attribute.String("lead_id", lead.ID), attribute.String("interested_in", lead.InterestedIn))

	if err := s.leads.Create(ctx, lead); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "store_error")
		metrics.LeadSubmissions.WithLabelValues("error").Inc()
		s.logger.Error("contact form submission failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, messageResponse{Message: "Error submitting contact form"})
		return
	}

	metrics.LeadSubmissions.WithLabelValues("success").Inc()
	s.logger.Info("lead stored", "lead_id", lead.ID)
	writeJSON(w, http.StatusOK, messageResponse{Message: "Contact form submitted successfully"})
}

// decodeBody reads a JSON body into v and reports problems as field violations
func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) []validators.FieldViolation {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer r.Body.Close()

	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return []validators.FieldViolation{{
			Field:   typeErr.Field,
			Message: fmt.Sprintf("expected %s, got %s", typeErr.Type, typeErr.Value),
		}}
	}
	return []validators.FieldViolation{{Field: "body", Message: "malformed JSON"}}
}
