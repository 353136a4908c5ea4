package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"gymstudio/internal/domain"
	"gymstudio/internal/modules/auth"
	"gymstudio/internal/modules/booking"
	"gymstudio/internal/modules/member"
	"gymstudio/internal/modules/statistics"
	"gymstudio/internal/modules/trainer"
	"gymstudio/internal/repository"
	"gymstudio/pkg/envelope"
)

func (c *Client) Login(ctx context.Context, req auth.LoginRequest, opts *RequestOptions) (*envelope.Envelope[auth.TokenResponse], error) {
	return do[auth.TokenResponse](ctx, c, http.MethodPost, "/auth/login", RequestOptions{Body: req}, opts)
}

func (c *Client) Me(ctx context.Context, opts *RequestOptions) (*envelope.Envelope[auth.UserPublic], error) {
	return do[auth.UserPublic](ctx, c, http.MethodGet, "/auth/me", RequestOptions{}, opts)
}

func (c *Client) GetMyProfile(ctx context.Context, opts *RequestOptions) (*envelope.Envelope[domain.Member], error) {
	return do[domain.Member](ctx, c, http.MethodGet, "/members/me", RequestOptions{}, opts)
}

func (c *Client) UpdateMyProfile(ctx context.Context, req member.UpdateMemberProfileRequest, opts *RequestOptions) (*envelope.Envelope[domain.Member], error) {
	return do[domain.Member](ctx, c, http.MethodPut, "/members/me", RequestOptions{Body: req}, opts)
}

func (c *Client) UpdateTrainerProfile(ctx context.Context, req trainer.UpdateTrainerProfileRequest, opts *RequestOptions) (*envelope.Envelope[domain.Trainer], error) {
	return do[domain.Trainer](ctx, c, http.MethodPut, "/trainers/me", RequestOptions{Body: req}, opts)
}

// ListMembers is admin only. Filter with opts.Query: page, limit, active.
func (c *Client) ListMembers(ctx context.Context, opts *RequestOptions) (*envelope.Envelope[member.ListResponse], error) {
	return do[member.ListResponse](ctx, c, http.MethodGet, "/admin/members", RequestOptions{}, opts)
}

func (c *Client) ListMembershipTypes(ctx context.Context, opts *RequestOptions) (*envelope.Envelope[[]domain.MembershipType], error) {
	return do[[]domain.MembershipType](ctx, c, http.MethodGet, "/membership-types", RequestOptions{}, opts)
}

// ListSchedules takes from/to as YYYY-MM-DD; empty means the server default.
func (c *Client) ListSchedules(ctx context.Context, from, to string, opts *RequestOptions) (*envelope.Envelope[[]repository.ScheduleSlot], error) {
	return do[[]repository.ScheduleSlot](ctx, c, http.MethodGet, "/schedules", RequestOptions{Query: dateRange(from, to)}, opts)
}

func (c *Client) CreateBooking(ctx context.Context, req booking.CreateBookingRequest, opts *RequestOptions) (*envelope.Envelope[domain.Booking], error) {
	return do[domain.Booking](ctx, c, http.MethodPost, "/bookings", RequestOptions{Body: req}, opts)
}

func (c *Client) CancelBooking(ctx context.Context, id int64, opts *RequestOptions) (*envelope.Envelope[domain.Booking], error) {
	return do[domain.Booking](ctx, c, http.MethodPost, "/bookings/"+strconv.FormatInt(id, 10)+"/cancel", RequestOptions{}, opts)
}

func (c *Client) ListMyBookings(ctx context.Context, opts *RequestOptions) (*envelope.Envelope[[]domain.Booking], error) {
	return do[[]domain.Booking](ctx, c, http.MethodGet, "/bookings/me", RequestOptions{}, opts)
}

func (c *Client) Dashboard(ctx context.Context, opts *RequestOptions) (*envelope.Envelope[statistics.Dashboard], error) {
	return do[statistics.Dashboard](ctx, c, http.MethodGet, "/statistics/dashboard", RequestOptions{}, opts)
}

// ExportAttendance returns the CSV body. An error envelope comes back as a
// *envelope.Problem.
func (c *Client) ExportAttendance(ctx context.Context, from, to string, opts *RequestOptions) ([]byte, error) {
	fixed := RequestOptions{
		Query:   dateRange(from, to),
		Headers: http.Header{"Accept": {"text/csv"}},
	}
	resp, err := c.send(ctx, http.MethodGet, "/statistics/export-attendance", fixed, opts)
	if err != nil {
		return nil, err
	}
	if resp.status == http.StatusOK && strings.HasPrefix(resp.header.Get("Content-Type"), "text/csv") {
		return resp.body, nil
	}

	env, err := decode[any](resp)
	if err != nil {
		return nil, err
	}
	if env.Success {
		return nil, &TransportError{StatusCode: resp.status, Body: resp.body, Err: fmt.Errorf("expected text/csv")}
	}
	_, err = env.Result().Unwrap()
	return nil, err
}

func dateRange(from, to string) url.Values {
	q := url.Values{}
	if from != "" {
		q.Set("from", from)
	}
	if to != "" {
		q.Set("to", to)
	}
	return q
}
