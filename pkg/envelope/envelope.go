// Package envelope defines the response wrapper shared by the API server and its Go clients.
//
// On the wire every response looks like
//
//	{"success": true, "data": {...}}
//	{"success": false, "errorCode": "NOT_FOUND", "errorMessage": "...", "showType": 2}
//
// Envelope is the wire form. Result is the tagged form callers should branch on:
// its data is only reachable when the outcome is Ok.
package envelope

// ShowType tells the UI how to present a failure.
type ShowType int

const (
	ShowSilent       ShowType = 0
	ShowWarnMessage  ShowType = 1
	ShowErrorMessage ShowType = 2
	ShowNotification ShowType = 4
	ShowPage         ShowType = 9
)

// Envelope is the JSON body of every API response.
type Envelope[T any] struct {
	Success      bool      `json:"success"`
	Data         T         `json:"data,omitempty"`
	ErrorCode    string    `json:"errorCode,omitempty"`
	ErrorMessage string    `json:"errorMessage,omitempty"`
	ShowType     *ShowType `json:"showType,omitempty"`
}

// Success wraps data in a successful envelope.
func Success[T any](data T) Envelope[T] {
	return Envelope[T]{Success: true, Data: data}
}

// Failure builds an error envelope with no payload.
func Failure(code, message string, show ShowType) Envelope[any] {
	return Envelope[any]{
		Success:      false,
		ErrorCode:    code,
		ErrorMessage: message,
		ShowType:     &show,
	}
}

// Result converts the wire envelope into its tagged variant.
func (e Envelope[T]) Result() Result[T] {
	if e.Success {
		return Ok(e.Data)
	}
	show := ShowErrorMessage
	if e.ShowType != nil {
		show = *e.ShowType
	}
	return Err[T](e.ErrorCode, e.ErrorMessage, show)
}

// Problem is the failure branch of a Result.
type Problem struct {
	Code     string
	Message  string
	ShowType ShowType
}

func (p *Problem) Error() string {
	if p.Message == "" {
		return p.Code
	}
	return p.Code + ": " + p.Message
}

// Result is either Ok carrying data or Err carrying a Problem, never both.
type Result[T any] struct {
	data    T
	problem *Problem
}

func Ok[T any](data T) Result[T] {
	return Result[T]{data: data}
}

func Err[T any](code, message string, show ShowType) Result[T] {
	return Result[T]{problem: &Problem{Code: code, Message: message, ShowType: show}}
}

func (r Result[T]) IsOk() bool { return r.problem == nil }

// Data returns the payload and true on the Ok branch, the zero value and false otherwise.
func (r Result[T]) Data() (T, bool) {
	if r.problem != nil {
		var zero T
		return zero, false
	}
	return r.data, true
}

// Problem returns the failure, or nil on the Ok branch.
func (r Result[T]) Problem() *Problem {
	return r.problem
}

// Unwrap returns the payload or the Problem as an error.
func (r Result[T]) Unwrap() (T, error) {
	if r.problem != nil {
		var zero T
		return zero, r.problem
	}
	return r.data, nil
}

// Envelope converts the tagged variant back into its wire form.
func (r Result[T]) Envelope() Envelope[T] {
	if r.problem == nil {
		return Envelope[T]{Success: true, Data: r.data}
	}
	show := r.problem.ShowType
	return Envelope[T]{
		Success:      false,
		ErrorCode:    r.problem.Code,
		ErrorMessage: r.problem.Message,
		ShowType:     &show,
	}
}
