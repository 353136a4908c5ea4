package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gymstudio/internal/modules/auth"
	"gymstudio/internal/modules/booking"
	"gymstudio/internal/modules/member"
	"gymstudio/internal/modules/trainer"
	"gymstudio/pkg/envelope"
)

type seen struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   string
}

type recorder struct {
	mu   sync.Mutex
	last seen
}

func (r *recorder) get() seen {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

// newServer answers every request with body and records what it received.
func newServer(t *testing.T, status int, contentType, body string) (*Client, *recorder) {
	t.Helper()
	rec := &recorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		rec.mu.Lock()
		rec.last = seen{Method: r.Method, Path: r.URL.Path, Query: r.URL.Query(), Header: r.Header.Clone(), Body: string(b)}
		rec.mu.Unlock()
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return New(srv.URL+"/api/v1", WithToken("tok")), rec
}

func TestWrappersUseFixedMethodAndPath(t *testing.T) {
	c, rec := newServer(t, http.StatusOK, "application/json", `{"success":true,"data":null}`)
	ctx := context.Background()

	// options that try hard to redirect the request
	hostile := &RequestOptions{
		Query:   url.Values{"_method": {"DELETE"}, "path": {"/admin/members"}},
		Headers: http.Header{"X-Http-Method-Override": {"DELETE"}},
		Body:    map[string]string{"path": "/elsewhere"},
	}

	calls := []struct {
		name   string
		call   func() error
		method string
		path   string
	}{
		{"Login", func() error {
			_, err := c.Login(ctx, auth.LoginRequest{Email: "a@b.kz", Password: "secret"}, hostile)
			return err
		}, http.MethodPost, "/api/v1/auth/login"},
		{"Me", func() error { _, err := c.Me(ctx, hostile); return err }, http.MethodGet, "/api/v1/auth/me"},
		{"GetMyProfile", func() error { _, err := c.GetMyProfile(ctx, hostile); return err }, http.MethodGet, "/api/v1/members/me"},
		{"UpdateMyProfile", func() error {
			_, err := c.UpdateMyProfile(ctx, member.UpdateMemberProfileRequest{FullName: "Aru"}, hostile)
			return err
		}, http.MethodPut, "/api/v1/members/me"},
		{"UpdateTrainerProfile", func() error {
			_, err := c.UpdateTrainerProfile(ctx, trainer.UpdateTrainerProfileRequest{FullName: "Coach"}, hostile)
			return err
		}, http.MethodPut, "/api/v1/trainers/me"},
		{"ListMembers", func() error { _, err := c.ListMembers(ctx, hostile); return err }, http.MethodGet, "/api/v1/admin/members"},
		{"ListMembershipTypes", func() error { _, err := c.ListMembershipTypes(ctx, hostile); return err }, http.MethodGet, "/api/v1/membership-types"},
		{"ListSchedules", func() error { _, err := c.ListSchedules(ctx, "2026-10-01", "", hostile); return err }, http.MethodGet, "/api/v1/schedules"},
		{"CreateBooking", func() error {
			_, err := c.CreateBooking(ctx, booking.CreateBookingRequest{ScheduleID: 4}, hostile)
			return err
		}, http.MethodPost, "/api/v1/bookings"},
		{"CancelBooking", func() error { _, err := c.CancelBooking(ctx, 9, hostile); return err }, http.MethodPost, "/api/v1/bookings/9/cancel"},
		{"ListMyBookings", func() error { _, err := c.ListMyBookings(ctx, hostile); return err }, http.MethodGet, "/api/v1/bookings/me"},
		{"Dashboard", func() error { _, err := c.Dashboard(ctx, hostile); return err }, http.MethodGet, "/api/v1/statistics/dashboard"},
	}

	for _, tc := range calls {
		t.Run(tc.name, func(t *testing.T) {
			require.NoError(t, tc.call())
			got := rec.get()
			assert.Equal(t, tc.method, got.Method)
			assert.Equal(t, tc.path, got.Path)
			assert.Equal(t, "DELETE", got.Header.Get("X-Http-Method-Override"))
			assert.Equal(t, "Bearer tok", got.Header.Get("Authorization"))
			assert.Equal(t, []string{"DELETE"}, got.Query["_method"])
		})
	}
}

func TestOptionsMergeIntoRequest(t *testing.T) {
	c, rec := newServer(t, http.StatusOK, "application/json", `{"success":true,"data":[]}`)

	_, err := c.ListSchedules(context.Background(), "2026-10-01", "2026-10-08", &RequestOptions{
		Query:   url.Values{"from": {"2026-11-01"}, "extra": {"1"}},
		Headers: http.Header{"x-trace": {"abc"}},
	})
	require.NoError(t, err)

	got := rec.get()
	assert.Equal(t, []string{"2026-10-01", "2026-11-01"}, got.Query["from"])
	assert.Equal(t, "2026-10-08", got.Query.Get("to"))
	assert.Equal(t, "1", got.Query.Get("extra"))
	assert.Equal(t, "abc", got.Header.Get("X-Trace"))
}

func TestTypedBodyWinsOverOptionBody(t *testing.T) {
	c, rec := newServer(t, http.StatusCreated, "application/json", `{"success":true,"data":{"id":1,"status":"confirmed"}}`)

	env, err := c.CreateBooking(context.Background(), booking.CreateBookingRequest{ScheduleID: 4, UsedFreeClass: true},
		&RequestOptions{Body: map[string]int{"schedule_id": 99}})
	require.NoError(t, err)

	assert.JSONEq(t, `{"schedule_id":4,"used_free_class":true}`, rec.get().Body)
	assert.Equal(t, "application/json", rec.get().Header.Get("Content-Type"))
	data, ok := env.Result().Data()
	require.True(t, ok)
	assert.Equal(t, int64(1), data.ID)
}

func TestOptionBodyUsedWhenWrapperHasNone(t *testing.T) {
	c, rec := newServer(t, http.StatusOK, "application/json", `{"success":true,"data":{"id":9}}`)

	_, err := c.CancelBooking(context.Background(), 9, &RequestOptions{Body: map[string]string{"reason": "sick"}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"reason":"sick"}`, rec.get().Body)
}

func TestFailureEnvelopeIsNotAnError(t *testing.T) {
	c, _ := newServer(t, http.StatusConflict, "application/json",
		`{"success":false,"errorCode":"CLASS_FULL","errorMessage":"Class is full","showType":1}`)

	env, err := c.CreateBooking(context.Background(), booking.CreateBookingRequest{ScheduleID: 1}, nil)
	require.NoError(t, err)

	res := env.Result()
	assert.False(t, res.IsOk())
	require.NotNil(t, res.Problem())
	assert.Equal(t, "CLASS_FULL", res.Problem().Code)
	assert.Equal(t, envelope.ShowWarnMessage, res.Problem().ShowType)
}

func TestNon2xxWithoutEnvelopeIsTransportError(t *testing.T) {
	c, _ := newServer(t, http.StatusBadGateway, "text/html", "<h1>bad gateway</h1>")

	_, err := c.Me(context.Background(), nil)
	var te *TransportError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, http.StatusBadGateway, te.StatusCode)
	assert.Equal(t, "<h1>bad gateway</h1>", string(te.Body))
}

func TestNetworkFailureIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	_, err := New(base).Me(context.Background(), nil)
	var te *TransportError
	require.True(t, errors.As(err, &te))
	assert.Zero(t, te.StatusCode)
	assert.Error(t, te.Err)
}

func TestExportAttendanceReturnsCSV(t *testing.T) {
	c, rec := newServer(t, http.StatusOK, "text/csv; charset=utf-8", "booking_id,member\n1,Aru\n")

	body, err := c.ExportAttendance(context.Background(), "2026-10-01", "2026-10-31", nil)
	require.NoError(t, err)
	assert.Equal(t, "booking_id,member\n1,Aru\n", string(body))

	got := rec.get()
	assert.Equal(t, "/api/v1/statistics/export-attendance", got.Path)
	assert.Equal(t, "2026-10-01", got.Query.Get("from"))
	assert.Equal(t, "text/csv", got.Header.Get("Accept"))
}

func TestExportAttendanceProblem(t *testing.T) {
	c, _ := newServer(t, http.StatusBadRequest, "application/json",
		`{"success":false,"errorCode":"INVALID_DATE_RANGE","errorMessage":"bad range","showType":2}`)

	_, err := c.ExportAttendance(context.Background(), "2026-10-31", "2026-10-01", nil)
	var p *envelope.Problem
	require.True(t, errors.As(err, &p))
	assert.Equal(t, "INVALID_DATE_RANGE", p.Code)
}

func TestMergeDoesNotMutateInputs(t *testing.T) {
	fixed := RequestOptions{Query: url.Values{"a": {"1"}}}
	extra := &RequestOptions{Query: url.Values{"a": {"2"}}}

	out := merge(fixed, extra)
	assert.Equal(t, []string{"1", "2"}, out.Query["a"])
	assert.Equal(t, []string{"1"}, fixed.Query["a"])

	b, err := json.Marshal(merge(RequestOptions{}, nil).Body)
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))
}
