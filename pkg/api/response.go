// Copyright 2024 Nokia
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package api implements the XML envelope of the device's HTTP API: response
// parsing, the error-message probing order, and the typed error taxonomy.
package api

import (
	"fmt"
	"mime"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// msgPaths is the probing order for the human-readable message inside a
// failure envelope. The order accumulates device-version quirks and must
// not be "fixed": the first matching shape wins.
var msgPaths = []string{
	"./msg/line",
	"./result/msg/line",
	"./result/msg",
	"./msg",
	"./result/job/details/line",
}

// Response is a parsed XML envelope.
type Response struct {
	Doc    *etree.Document
	Status string
	Code   int
}

// Result returns the <result> element of the envelope, or nil.
func (r *Response) Result() *etree.Element {
	if r.Doc == nil || r.Doc.Root() == nil {
		return nil
	}
	return r.Doc.Root().SelectElement("result")
}

// Ok reports whether the device accepted the request.
func (r *Response) Ok() bool { return r.Status == "success" }

// Message probes the known message locations in fixed priority order and
// returns the first match. Multiple <line> children are joined by newlines.
func (r *Response) Message() string {
	if r.Doc == nil || r.Doc.Root() == nil {
		return ""
	}
	root := r.Doc.Root()
	for _, p := range msgPaths {
		elems := root.FindElements(p)
		if len(elems) == 0 {
			continue
		}
		lines := make([]string, 0, len(elems))
		for _, e := range elems {
			if t := strings.TrimSpace(e.Text()); t != "" {
				lines = append(lines, t)
			}
		}
		if len(lines) > 0 {
			return strings.Join(lines, "\n")
		}
	}
	return ""
}

// Parse decodes a response body into an envelope. It does not interpret
// success or failure; see Check.
func Parse(body []byte) (*Response, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(body); err != nil {
		return nil, fmt.Errorf("malformed response XML: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("empty response document")
	}
	r := &Response{Doc: doc, Status: root.SelectAttrValue("status", "")}
	if c := root.SelectAttrValue("code", ""); c != "" {
		code, err := strconv.Atoi(c)
		if err == nil {
			r.Code = code
		}
	}
	return r, nil
}

// Check parses body and classifies a non-success envelope into a typed
// error attributed to device.
func Check(device string, body []byte) (*Response, error) {
	r, err := Parse(body)
	if err != nil {
		return nil, err
	}
	if r.Ok() {
		return r, nil
	}
	return r, Classify(device, r.Message(), r.Code)
}

// Attachment is a binary export (packet capture, device state bundle)
// delivered as application/octet-stream.
type Attachment struct {
	Filename string
	Data     []byte
}

// ParseAttachment validates the content type of a non-XML response and
// extracts the attachment filename from Content-Disposition.
func ParseAttachment(contentType, disposition string, body []byte) (*Attachment, error) {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil, fmt.Errorf("unparseable content type %q: %w", contentType, err)
	}
	if mt != "application/octet-stream" {
		return nil, fmt.Errorf("protocol error: unexpected content type %q", contentType)
	}
	a := &Attachment{Data: body}
	if disposition != "" {
		if _, params, err := mime.ParseMediaType(disposition); err == nil {
			a.Filename = params["filename"]
		}
	}
	return a, nil
}
