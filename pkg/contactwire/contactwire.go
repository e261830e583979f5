// Package contactwire implements the JSON wire format spoken between the
// contact form client and the contact endpoint:
//
//	request:  {"name": string, "email": string, "subject": string, "message": string}
//	response: {"ok": bool, "msg": string, "error": string}
//
// Both ends use this package so the format cannot drift between them.
package contactwire

import (
	"sitecontact/pkg/domain"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
)

// ContentType is the media type of both request and response bodies.
const ContentType = "application/json"

// Response is the body returned by the contact endpoint. Msg is shown on
// success and Error on failure; both are optional.
type Response struct {
	OK    bool
	Msg   string
	Error string
}

// EncodeRequest returns the JSON body for req. Values are sent as-is.
func EncodeRequest(req domain.ContactRequest) []byte {
	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("name")
	e.Str(req.Name)
	e.FieldStart("email")
	e.Str(req.Email)
	e.FieldStart("subject")
	e.Str(req.Subject)
	e.FieldStart("message")
	e.Str(req.Message)
	e.ObjEnd()

	return e.Bytes()
}

// DecodeRequest parses a request body. Missing or null fields decode as empty
// strings and unknown fields are ignored; any other value type is an error.
func DecodeRequest(b []byte) (domain.ContactRequest, error) {
	var req domain.ContactRequest
	d := jx.DecodeBytes(b)
	if err := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		var dst *string
		switch string(key) {
		case "name":
			dst = &req.Name
		case "email":
			dst = &req.Email
		case "subject":
			dst = &req.Subject
		case "message":
			dst = &req.Message
		default:
			return d.Skip()
		}

		v, err := optStr(d)
		if err != nil {
			return errors.Wrapf(err, "field %q", key)
		}
		*dst = v

		return nil
	}); err != nil {
		return domain.ContactRequest{}, errors.Wrap(err, "decode contact request")
	}
	if err := ensureEOF(d); err != nil {
		return domain.ContactRequest{}, errors.Wrap(err, "decode contact request")
	}

	return req, nil
}

// EncodeResponse returns the JSON body for res. Empty Msg and Error are omitted.
func EncodeResponse(res Response) []byte {
	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("ok")
	e.Bool(res.OK)
	if res.Msg != "" {
		e.FieldStart("msg")
		e.Str(res.Msg)
	}
	if res.Error != "" {
		e.FieldStart("error")
		e.Str(res.Error)
	}
	e.ObjEnd()

	return e.Bytes()
}

// DecodeResponse parses a response body. A missing or null "ok" decodes as
// false, and a missing or null "msg" or "error" as "". A body that is not a
// JSON object is an error, as is any of the three fields with another type:
// {"ok":true,"msg":5} does not decode, so the form shows the generic
// failure instead of rendering the number as a message.
func DecodeResponse(b []byte) (Response, error) {
	var res Response
	d := jx.DecodeBytes(b)
	if err := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		switch string(key) {
		case "ok":
			if d.Next() == jx.Null {
				return d.Null()
			}
			v, err := d.Bool()
			if err != nil {
				return errors.Wrap(err, `field "ok"`)
			}
			res.OK = v
		case "msg":
			v, err := optStr(d)
			if err != nil {
				return errors.Wrap(err, `field "msg"`)
			}
			res.Msg = v
		case "error":
			v, err := optStr(d)
			if err != nil {
				return errors.Wrap(err, `field "error"`)
			}
			res.Error = v
		default:
			return d.Skip()
		}

		return nil
	}); err != nil {
		return Response{}, errors.Wrap(err, "decode contact response")
	}
	if err := ensureEOF(d); err != nil {
		return Response{}, errors.Wrap(err, "decode contact response")
	}

	return res, nil
}

func optStr(d *jx.Decoder) (string, error) {
	if d.Next() == jx.Null {
		return "", d.Null()
	}

	return d.Str()
}

func ensureEOF(d *jx.Decoder) error {
	if t := d.Next(); t != jx.Invalid {
		return errors.Errorf("unexpected trailing %s", t)
	}

	return nil
}
