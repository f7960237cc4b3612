package goerror

import (
	"errors"
	"net/http"
	"testing"
)

func TestErrorStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "internal", err: NewServer(errors.New("boom")), want: http.StatusInternalServerError},
		{name: "invalid input", err: NewInvalidInput(errors.New("bad")), want: http.StatusUnprocessableEntity},
		{name: "invalid format", err: NewInvalidFormat(), want: http.StatusBadRequest},
		{name: "unauthorized", err: NewBusiness("no", CodeUnauthorized), want: http.StatusUnauthorized},
		{name: "invalid credentials", err: NewBusiness("no", CodeInvalidCredentials), want: http.StatusUnauthorized},
		{name: "forbidden", err: NewBusiness("no", CodeForbidden), want: http.StatusForbidden},
		{name: "not found", err: NewBusiness("no", CodeNotFound), want: http.StatusNotFound},
		{name: "conflict", err: NewBusiness("no", CodeConflict), want: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gerr *Error
			if !errors.As(tt.err, &gerr) {
				t.Fatalf("error %v is not *Error", tt.err)
			}
			if got := gerr.StatusCode(); got != tt.want {
				t.Fatalf("StatusCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestErrorAPICode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "internal", err: NewServer(errors.New("boom")), want: 1000},
		{name: "unauthorized", err: NewBusiness("no", CodeUnauthorized), want: 1001},
		{name: "invalid credentials", err: NewBusiness("no", CodeInvalidCredentials), want: 1002},
		{name: "forbidden", err: NewBusiness("no", CodeForbidden), want: 1003},
		{name: "conflict", err: NewBusiness("no", CodeConflict), want: 2001},
		{name: "not found", err: NewBusiness("no", CodeNotFound), want: 2002},
		{name: "invalid input", err: NewInvalidInput(errors.New("bad")), want: 4001},
		{name: "invalid format", err: NewInvalidFormat(), want: 6001},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gerr *Error
			if !errors.As(tt.err, &gerr) {
				t.Fatalf("error %v is not *Error", tt.err)
			}
			if got := gerr.APICode(); got != tt.want {
				t.Fatalf("APICode() = %d, want %d", got, tt.want)
			}
		})
	}
}
