package signature

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
		reason  string
	}{
		{name: "plain address", input: "user@example.com", want: "user@example.com"},
		{name: "case preserved", input: "User.Name@Example.COM", want: "User.Name@Example.COM"},
		{name: "trimmed", input: "  user@example.com  ", want: "user@example.com"},
		{name: "missing at", input: "userexample.com", wantErr: true, reason: "@"},
		{name: "missing domain dot", input: "user@localhost", wantErr: true},
		{name: "embedded whitespace", input: "us er@example.com", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateEmail(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				var vErr *ValidationError
				require.ErrorAs(t, err, &vErr)
				assert.Equal(t, "email", vErr.Field)
				if tt.reason != "" {
					assert.Contains(t, vErr.Reason, tt.reason)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidatePhone(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "international", input: "+1 555 0100", want: "+1 555 0100"},
		{name: "parenthesized area code", input: "(351) 213-456-789", want: "(351) 213-456-789"},
		{name: "bare digits", input: "5550100", want: "5550100"},
		{name: "empty is omitted", input: "", want: ""},
		{name: "whitespace only is omitted", input: "   ", want: ""},
		{name: "letters rejected", input: "call-me", wantErr: true},
		{name: "plus not leading", input: "555+0100", wantErr: true},
		{name: "too few digits", input: "+1 555", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidatePhone("phone", tt.input)
			if tt.wantErr {
				require.Error(t, err)
				var vErr *ValidationError
				require.ErrorAs(t, err, &vErr)
				assert.Equal(t, "phone", vErr.Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "bare host", input: "www.example.com", want: "www.example.com"},
		{name: "schemed", input: "https://example.com/about", want: "https://example.com/about"},
		{name: "empty signals default", input: "", want: ""},
		{name: "whitespace rejected", input: "www example com", wantErr: true},
		{name: "no dot in host", input: "intranet", wantErr: true},
		{name: "odd scheme", input: "ftp://example.com", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateURL(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateRequired(t *testing.T) {
	got, err := ValidateRequired("position", "  Software Engineer ")
	require.NoError(t, err)
	assert.Equal(t, "Software Engineer", got)

	_, err = ValidateRequired("position", "   ")
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "position", vErr.Field)
}

func TestValidateLogoPath(t *testing.T) {
	dir := t.TempDir()
	logo := filepath.Join(dir, "logo.png")
	require.NoError(t, os.WriteFile(logo, []byte("not-a-real-png"), 0o644))

	got, err := ValidateLogoPath(logo)
	require.NoError(t, err)
	assert.Equal(t, logo, got)

	got, err = ValidateLogoPath("")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = ValidateLogoPath(filepath.Join(dir, "missing.png"))
	assert.Error(t, err)

	text := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(text, []byte("hi"), 0o644))
	_, err = ValidateLogoPath(text)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Reason, "extension")
}
