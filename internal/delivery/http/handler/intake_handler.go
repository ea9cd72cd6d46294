package handler

import (
	"net"
	"net/http"
	"net/url"

	"clinic-intake/internal/delivery/dto"
	"clinic-intake/internal/delivery/http/view"
	"clinic-intake/internal/infrastructure/telemetry"
	"clinic-intake/internal/service"
	"clinic-intake/internal/usecase"
	"clinic-intake/pkg/requestid"
	"clinic-intake/pkg/response"
	"clinic-intake/pkg/validator"

	"github.com/gorilla/schema"
	"github.com/sirupsen/logrus"
)

const (
	msgUnreadableForm = "The form submission could not be read. Please try again."
	msgThrottled      = "Too many submissions from this device. Please wait a moment and try again."
)

type IntakeHandler struct {
	intakeUsecase usecase.IntakeUsecase
	validator     *validator.CustomValidator
	throttle      service.SubmissionThrottle
	views         *view.Views
	metrics       *telemetry.Metrics
	log           *logrus.Logger
	decoder       *schema.Decoder
}

func NewIntakeHandler(
	intakeUsecase usecase.IntakeUsecase,
	validator *validator.CustomValidator,
	throttle service.SubmissionThrottle,
	views *view.Views,
	metrics *telemetry.Metrics,
	log *logrus.Logger,
) *IntakeHandler {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)

	return &IntakeHandler{
		intakeUsecase: intakeUsecase,
		validator:     validator,
		throttle:      throttle,
		views:         views,
		metrics:       metrics,
		log:           log,
		decoder:       decoder,
	}
}

// ShowForm renders the empty intake form.
func (h *IntakeHandler) ShowForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, h.views.Form, &dto.FormPage{})
}

// SubmitForm validates the posted intake and either stores it or
// redisplays the form with the submitted values and every error found.
func (h *IntakeHandler) SubmitForm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := requestid.Logger(ctx, h.log)

	var form dto.IntakeForm
	if err := r.ParseForm(); err != nil {
		log.Warnf("Failed to parse intake form: %v", err)
		h.metrics.RecordSubmission(ctx, telemetry.OutcomeRejected)
		h.render(w, r, http.StatusBadRequest, h.views.Form, &dto.FormPage{Errors: []string{msgUnreadableForm}})
		return
	}
	if err := h.decoder.Decode(&form, firstValues(r.PostForm)); err != nil {
		log.Warnf("Failed to decode intake form: %v", err)
		h.metrics.RecordSubmission(ctx, telemetry.OutcomeRejected)
		h.render(w, r, http.StatusBadRequest, h.views.Form, &dto.FormPage{Errors: []string{msgUnreadableForm}})
		return
	}
	form.Normalize()

	if !h.throttle.Allow(ctx, clientKey(r)) {
		h.metrics.RecordSubmission(ctx, telemetry.OutcomeThrottled)
		h.render(w, r, http.StatusTooManyRequests, h.views.Form, &dto.FormPage{
			Errors: []string{msgThrottled},
			Data:   form,
		})
		return
	}

	if err := h.validator.Validate(&form); err != nil {
		errs := h.validator.FormatValidationErrors(err)
		h.metrics.RecordSubmission(ctx, telemetry.OutcomeRejected)
		h.metrics.RecordValidationErrors(ctx, len(errs))
		h.render(w, r, http.StatusBadRequest, h.views.Form, &dto.FormPage{
			Errors: errs,
			Data:   form,
		})
		return
	}

	confirmation, err := h.intakeUsecase.Submit(ctx, &form)
	if err != nil {
		log.Errorf("Failed to submit patient intake: %+v", err)
		h.metrics.RecordSubmission(ctx, telemetry.OutcomeFailed)
		response.InternalServerError(w)
		return
	}

	h.metrics.RecordSubmission(ctx, telemetry.OutcomeAccepted)
	h.render(w, r, http.StatusOK, h.views.Confirmation, confirmation)
}

func (h *IntakeHandler) render(w http.ResponseWriter, r *http.Request, status int, tmpl response.Template, data interface{}) {
	if err := response.HTML(w, status, tmpl, data); err != nil {
		requestid.Logger(r.Context(), h.log).Errorf("Failed to render page: %v", err)
	}
}

// firstValues keeps the first value of every key, so a repeated field
// resolves to what was submitted first.
func firstValues(values url.Values) url.Values {
	first := make(url.Values, len(values))
	for key := range values {
		first.Set(key, values.Get(key))
	}
	return first
}

// clientKey identifies the submitting client by remote host.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
