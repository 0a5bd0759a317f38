package httpadapter

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"resaleops/internal/api"
	"resaleops/internal/domain"
	"resaleops/internal/ports"
)

const maxBodyBytes = 1 << 20

// Server implements the generated StrictServerInterface on top of the job
// lifecycle. It serves the dashboard and the external worker reporting
// per-target results.
type Server struct {
	jobs ports.Lifecycle
	log  logrus.FieldLogger
}

var _ api.StrictServerInterface = (*Server)(nil)

func New(jobs ports.Lifecycle, log logrus.FieldLogger) *Server {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Server{jobs: jobs, log: log}
}

// Routes returns a chi.Router mounting the generated handlers.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(limitBody(maxBodyBytes))

	handler := api.NewStrictHandlerWithOptions(s, nil, api.StrictHTTPServerOptions{
		RequestErrorHandlerFunc:  s.badRequest,
		ResponseErrorHandlerFunc: s.fail,
	})
	api.HandlerWithOptions(handler, api.ChiServerOptions{
		BaseRouter:       r,
		ErrorHandlerFunc: s.badRequest,
	})
	return r
}

func (s *Server) GetHealthz(ctx context.Context, _ api.GetHealthzRequestObject) (api.GetHealthzResponseObject, error) {
	return api.GetHealthz200JSONResponse{Status: "ok"}, nil
}

func (s *Server) CreateJob(ctx context.Context, req api.CreateJobRequestObject) (api.CreateJobResponseObject, error) {
	if req.Body == nil {
		return nil, domain.Validationf("missing body")
	}
	job, err := s.jobs.Create(ctx, draftFromAPI(*req.Body))
	if err != nil {
		return nil, err
	}
	out, err := jobToAPI(job)
	return api.CreateJob201JSONResponse(out), err
}

func (s *Server) ListJobs(ctx context.Context, req api.ListJobsRequestObject) (api.ListJobsResponseObject, error) {
	p := req.Params
	filter, err := toFilter(p.Status, p.Trigger, p.Kind, p.Q)
	if err != nil {
		return nil, err
	}
	jobs, err := s.jobs.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := api.JobList{Jobs: make([]api.Job, 0, len(jobs))}
	for _, j := range jobs {
		aj, err := jobToAPI(j)
		if err != nil {
			return nil, err
		}
		out.Jobs = append(out.Jobs, aj)
	}
	return api.ListJobs200JSONResponse(out), nil
}

func (s *Server) GetStats(ctx context.Context, req api.GetStatsRequestObject) (api.GetStatsResponseObject, error) {
	p := req.Params
	filter, err := toFilter(p.Status, p.Trigger, p.Kind, p.Q)
	if err != nil {
		return nil, err
	}
	st, err := s.jobs.Statistics(ctx, filter)
	if err != nil {
		return nil, err
	}
	byStatus := make(map[string]int, len(st.ByStatus))
	for k, v := range st.ByStatus {
		byStatus[string(k)] = v
	}
	return api.GetStats200JSONResponse{
		Total:                  st.Total,
		ByStatus:               byStatus,
		SuccessRate:            st.SuccessRate,
		AverageDurationSeconds: st.AverageDuration.Seconds(),
		CompletedActions:       st.CompletedActions,
		MostActiveTarget:       st.MostActiveTarget,
		Trend:                  api.Trend(st.Trend),
		RecentCount:            st.RecentCount,
		PreviousCount:          st.PreviousCount,
	}, nil
}

func (s *Server) GetJob(ctx context.Context, req api.GetJobRequestObject) (api.GetJobResponseObject, error) {
	job, err := s.jobs.Get(ctx, req.Id.String())
	if err != nil {
		return nil, err
	}
	out, err := jobToAPI(job)
	return api.GetJob200JSONResponse(out), err
}

func (s *Server) DispatchJob(ctx context.Context, req api.DispatchJobRequestObject) (api.DispatchJobResponseObject, error) {
	job, err := s.jobs.Dispatch(ctx, req.Id.String())
	if err != nil {
		return nil, err
	}
	out, err := jobToAPI(job)
	return api.DispatchJob200JSONResponse(out), err
}

func (s *Server) ConfirmJob(ctx context.Context, req api.ConfirmJobRequestObject) (api.ConfirmJobResponseObject, error) {
	job, err := s.jobs.Confirm(ctx, req.Id.String())
	if err != nil {
		return nil, err
	}
	out, err := jobToAPI(job)
	return api.ConfirmJob200JSONResponse(out), err
}

func (s *Server) RetryJob(ctx context.Context, req api.RetryJobRequestObject) (api.RetryJobResponseObject, error) {
	job, err := s.jobs.Retry(ctx, req.Id.String())
	if err != nil {
		return nil, err
	}
	out, err := jobToAPI(job)
	return api.RetryJob200JSONResponse(out), err
}

// CancelJob accepts an empty body; the reason is optional.
func (s *Server) CancelJob(ctx context.Context, req api.CancelJobRequestObject) (api.CancelJobResponseObject, error) {
	var reason string
	if req.Body != nil && req.Body.Reason != nil {
		reason = *req.Body.Reason
	}
	job, err := s.jobs.Cancel(ctx, req.Id.String(), reason)
	if err != nil {
		return nil, err
	}
	out, err := jobToAPI(job)
	return api.CancelJob200JSONResponse(out), err
}

func (s *Server) ReportResult(ctx context.Context, req api.ReportResultRequestObject) (api.ReportResultResponseObject, error) {
	if req.Body == nil || req.Body.Target == "" {
		return nil, domain.Validationf("target is required")
	}
	job, err := s.jobs.ReportResult(ctx, req.Id.String(), req.Body.Target, domain.Outcome(req.Body.Outcome))
	if err != nil {
		return nil, err
	}
	out, err := jobToAPI(job)
	return api.ReportResult200JSONResponse(out), err
}

func draftFromAPI(in api.JobDraft) domain.Draft {
	d := domain.Draft{
		Kind:        domain.Kind(in.Kind),
		TriggerType: domain.TriggerType(in.TriggerType),
		Targets:     in.Targets,
		MaxRetries:  in.MaxRetries,
	}
	if in.ItemId != nil {
		d.ItemID = *in.ItemId
	}
	if in.ItemTitle != nil {
		d.ItemTitle = *in.ItemTitle
	}
	if in.RequiresConfirmation != nil {
		d.RequiresConfirmation = *in.RequiresConfirmation
	}
	if in.ScheduledFor != nil {
		d.ScheduledFor = *in.ScheduledFor
	}
	return d
}

func jobToAPI(j domain.Job) (api.Job, error) {
	id, err := uuid.Parse(j.ID)
	if err != nil {
		return api.Job{}, err
	}
	return api.Job{
		Id:                   id,
		Kind:                 api.JobKind(j.Kind),
		ItemId:               optional(j.ItemID),
		ItemTitle:            optional(j.ItemTitle),
		Status:               api.JobStatus(j.Status),
		TriggerType:          api.TriggerType(j.TriggerType),
		Targets:              nonNil(j.Targets),
		CompletedTargets:     nonNil(j.CompletedTargets),
		FailedTargets:        nonNil(j.FailedTargets),
		RequiresConfirmation: j.RequiresConfirmation,
		ConfirmedAt:          j.ConfirmedAt,
		ScheduledFor:         j.ScheduledFor,
		StartedAt:            j.StartedAt,
		CompletedAt:          j.CompletedAt,
		CancelledAt:          j.CancelledAt,
		CancelReason:         optional(j.CancelReason),
		RetryCount:           j.RetryCount,
		MaxRetries:           j.MaxRetries,
		Version:              j.Version,
		CreatedAt:            j.CreatedAt,
		UpdatedAt:            j.UpdatedAt,
	}, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nonNil(xs []string) []string {
	if xs == nil {
		return []string{}
	}
	return xs
}

func toFilter(status, trigger, kind *[]string, q *string) (domain.Filter, error) {
	var f domain.Filter
	for _, v := range splitList(status) {
		st := domain.Status(v)
		if !st.Valid() {
			return f, domain.Validationf("unknown status %q", v)
		}
		f.Statuses = append(f.Statuses, st)
	}
	for _, v := range splitList(trigger) {
		tt := domain.TriggerType(v)
		if !tt.Valid() {
			return f, domain.Validationf("unknown trigger type %q", v)
		}
		f.TriggerTypes = append(f.TriggerTypes, tt)
	}
	for _, v := range splitList(kind) {
		k := domain.Kind(v)
		if !k.Valid() {
			return f, domain.Validationf("unknown kind %q", v)
		}
		f.Kinds = append(f.Kinds, k)
	}
	if q != nil {
		f.Query = *q
	}
	return f, nil
}

// splitList accepts both ?status=a&status=b and ?status=a,b.
func splitList(in *[]string) []string {
	if in == nil {
		return nil
	}
	var out []string
	for _, v := range *in {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func limitBody(n int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, n)
			next.ServeHTTP(w, r)
		})
	}
}
