// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package routeros

import (
	"github.com/tidwall/gjson"
	"go.uber.org/multierr"
)

// RESTRes represents a RouterOS REST response
type RESTRes struct {
	// StatusCode is the HTTP status code
	StatusCode int

	// Body is the raw response body
	Body string
}

// OK reports whether the request succeeded (2xx)
func (r RESTRes) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// GetValue retrieves a value from the response body using a gjson path.
//
// Example paths:
//   - "0.name" - name of the first row of a list
//   - "#.name" - names of all rows
//   - "message" - error message of a failed request
//
// Example:
//
//	res, err := client.Do(ctx, http.MethodGet, "interface/bridge", nil)
//	names := res.GetValue("#.name").Array()
func (r RESTRes) GetValue(path string) gjson.Result {
	if r.Body == "" {
		return gjson.Result{}
	}
	return gjson.Get(r.Body, path)
}

// JSON returns the raw response body
func (r RESTRes) JSON() string {
	return r.Body
}

// Rows returns the rows of a print response. Single resources answer
// with one object, list resources with an array.
func (r RESTRes) Rows() []gjson.Result {
	parsed := gjson.Parse(r.Body)
	switch {
	case parsed.IsArray():
		return parsed.Array()
	case parsed.IsObject():
		return []gjson.Result{parsed}
	default:
		return nil
	}
}

// Error converts an error body ({"error":404,"message":"Not Found","detail":"..."})
// into a *TrapError. It returns nil for successful responses.
func (r RESTRes) Error() error {
	if r.OK() {
		return nil
	}
	msg := r.GetValue("detail").String()
	if msg == "" {
		msg = r.GetValue("message").String()
	}
	return &TrapError{
		Message:  msg,
		Category: r.GetValue("error").String(),
	}
}

// decodeRow writes every attribute of a JSON row into r.
//
// RouterOS reports all values as JSON strings; other JSON types are taken
// by their raw text. Decode errors are collected so that one bad field does
// not hide the others.
func decodeRow(r Resource, row gjson.Result) error {
	var errs error
	path := r.ResourcePath()
	row.ForEach(func(key, value gjson.Result) bool {
		v := value.String()
		if value.Type != gjson.String {
			v = value.Raw
		}
		errs = multierr.Append(errs, SetFromAPI(r, path, key.String(), v))
		return true
	})
	return errs
}
