package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

func TestHTTPErrorMessage(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{
			name: "plain text body",
			body: "something broke",
			want: "something broke",
		},
		{
			name: "empty body",
			body: "",
			want: "request failed",
		},
		{
			name: "message field",
			body: `{"message":"Unauthorized."}`,
			want: "Unauthorized.",
		},
		{
			name: "validation errors map",
			body: `{"message":"The given data was invalid.","errors":{"email":["email is taken"],"password":["too short","too simple"]}}`,
			want: "email is taken, too short, too simple",
		},
		{
			name: "errors map with string values",
			body: `{"errors":{"size":"size is required"}}`,
			want: "size is required",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := &domain.HTTPError{Status: 422, Body: tc.body}
			if got := err.Message(); got != tc.want {
				t.Fatalf("got %q want %q", got, tc.want)
			}
		})
	}
}

func TestHTTPErrorError_IncludesStatus(t *testing.T) {
	err := &domain.HTTPError{Status: 500, Body: "boom"}
	want := "request failed (500): boom"
	if err.Error() != want {
		t.Fatalf("got %q want %q", err.Error(), want)
	}
}

func TestIsAuthError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{name: "no credential", err: domain.ErrNoCredential, want: true},
		{name: "expired credential", err: domain.ErrCredentialExpired, want: true},
		{name: "wrapped no credential", err: fmt.Errorf("fetch cart: %w", domain.ErrNoCredential), want: true},
		{name: "http 401", err: &domain.HTTPError{Status: 401, Body: "unauthorized"}, want: true},
		{name: "http 500", err: &domain.HTTPError{Status: 500, Body: "boom"}, want: false},
		{name: "network", err: &domain.NetworkError{Err: errors.New("refused")}, want: false},
		{name: "other", err: errors.New("other"), want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := domain.IsAuthError(tc.err); got != tc.want {
				t.Fatalf("got %v want %v", got, tc.want)
			}
		})
	}
}

func TestNetworkErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := &domain.NetworkError{Err: cause}

	if !errors.Is(err, cause) {
		t.Fatal("NetworkError must unwrap to its cause")
	}
}

func TestContactDetailsValidateInvariants(t *testing.T) {
	full := domain.ContactDetails{
		Name:    "Nino",
		Surname: "B",
		Email:   "nino@example.com",
		Address: "Rustaveli ave 1",
		ZipCode: "0108",
	}
	if errs := full.ValidateInvariants(); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}

	empty := domain.ContactDetails{}
	errs := empty.ValidateInvariants()
	if len(errs) != 5 {
		t.Fatalf("expected 5 field errors, got %v", errs)
	}
	if !errors.Is(errs[0], domain.ErrContactNameRequired) {
		t.Fatalf("unexpected first error: %v", errs[0])
	}
}
