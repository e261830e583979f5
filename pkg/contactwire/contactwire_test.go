package contactwire_test

import (
	"encoding/json"
	"testing"

	"sitecontact/pkg/contactwire"
	"sitecontact/pkg/domain"

	"github.com/stretchr/testify/require"
)

func TestEncodeRequest_FieldsAsIs(t *testing.T) {
	req := domain.ContactRequest{Name: "Ann", Email: "a@x.com", Subject: "Hi", Message: "Test"}

	var got map[string]any
	require.NoError(t, json.Unmarshal(contactwire.EncodeRequest(req), &got))
	require.Equal(t, map[string]any{
		"name":    "Ann",
		"email":   "a@x.com",
		"subject": "Hi",
		"message": "Test",
	}, got)
}

func TestEncodeRequest_EmptyAndMalformedValuesSent(t *testing.T) {
	req := domain.ContactRequest{Email: "not-an-email", Message: "line1\n\"quoted\""}

	var got map[string]string
	require.NoError(t, json.Unmarshal(contactwire.EncodeRequest(req), &got))
	require.Len(t, got, 4)
	require.Empty(t, got["name"])
	require.Empty(t, got["subject"])
	require.Equal(t, "not-an-email", got["email"])
	require.Equal(t, "line1\n\"quoted\"", got["message"])
}

func TestDecodeRequest(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    domain.ContactRequest
		wantErr bool
	}{
		{
			name: "all fields",
			body: `{"name":"Ann","email":"a@x.com","subject":"Hi","message":"Test"}`,
			want: domain.ContactRequest{Name: "Ann", Email: "a@x.com", Subject: "Hi", Message: "Test"},
		},
		{
			name: "missing and null fields are empty",
			body: `{"name":"Ann","email":null}`,
			want: domain.ContactRequest{Name: "Ann"},
		},
		{
			name: "unknown fields skipped",
			body: `{"name":"Ann","extra":{"nested":[1,2,3]}}`,
			want: domain.ContactRequest{Name: "Ann"},
		},
		{name: "non string value", body: `{"name":42}`, wantErr: true},
		{name: "not an object", body: `["Ann"]`, wantErr: true},
		{name: "empty body", body: ``, wantErr: true},
		{name: "trailing data", body: `{"name":"Ann"}{}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := contactwire.DecodeRequest([]byte(tt.body))
			if tt.wantErr {
				require.Error(t, err)

				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestEncodeResponse(t *testing.T) {
	require.JSONEq(t, `{"ok":true,"msg":"Thanks!"}`,
		string(contactwire.EncodeResponse(contactwire.Response{OK: true, Msg: "Thanks!"})))
	require.JSONEq(t, `{"ok":false,"error":"All fields are required."}`,
		string(contactwire.EncodeResponse(contactwire.Response{Error: "All fields are required."})))
	require.JSONEq(t, `{"ok":false}`, string(contactwire.EncodeResponse(contactwire.Response{})))
}

func TestDecodeResponse(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    contactwire.Response
		wantErr bool
	}{
		{name: "success", body: `{"ok": true, "msg": "Thanks!"}`, want: contactwire.Response{OK: true, Msg: "Thanks!"}},
		{
			name: "failure",
			body: `{"ok": false, "error": "Invalid email"}`,
			want: contactwire.Response{Error: "Invalid email"},
		},
		{name: "missing flag", body: `{"msg":"hello"}`, want: contactwire.Response{Msg: "hello"}},
		{name: "null flag", body: `{"ok":null}`, want: contactwire.Response{}},
		{name: "non bool flag", body: `{"ok":"yes"}`, wantErr: true},
		{name: "null message", body: `{"ok":true,"msg":null}`, want: contactwire.Response{OK: true}},
		{name: "numeric message", body: `{"ok":true,"msg":5}`, wantErr: true},
		{name: "object error", body: `{"ok":false,"error":{"code":1}}`, wantErr: true},
		{name: "html", body: `<html>502 Bad Gateway</html>`, wantErr: true},
		{name: "truncated", body: `{"ok":tr`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := contactwire.DecodeResponse([]byte(tt.body))
			if tt.wantErr {
				require.Error(t, err)

				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}
