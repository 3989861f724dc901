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

package device

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/beevik/etree"

	"github.com/panfw/panfw/pkg/api"
)

func (f *Firewall) endpoint() string {
	return fmt.Sprintf("%s://%s:%d/api/", f.cfg.Scheme, f.cfg.Hostname, f.cfg.Port)
}

func (f *Firewall) httpClient() *http.Client {
	if f.client == nil {
		f.client = &http.Client{Timeout: f.cfg.Timeout}
	}
	return f.client
}

// doHTTP performs one form-encoded POST against this device's endpoint
// and returns body, content type and content disposition.
func (f *Firewall) doHTTP(ctx context.Context, values url.Values) ([]byte, string, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.endpoint(),
		strings.NewReader(values.Encode()))
	if err != nil {
		return nil, "", "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := f.httpClient().Do(req)
	if err != nil {
		return nil, "", "", err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", "", err
	}
	return body, resp.Header.Get("Content-Type"), resp.Header.Get("Content-Disposition"), nil
}

// routed returns the pair member verbs currently go to.
func (f *Firewall) routed() *Firewall {
	if !f.active && f.peer != nil && f.peer.active {
		return f.peer
	}
	return f
}

// raw sends values to the currently active pair member, handling key
// injection, manager redirection, one-shot peer retry and metrics. It
// returns the raw body plus content headers; envelope interpretation is
// the caller's.
func (f *Firewall) raw(ctx context.Context, values url.Values, retryOnPeer bool) ([]byte, string, string, error) {
	target := f.routed()
	sender := target
	if f.proxy != nil {
		sender = f.proxy.routed()
		values.Set("target", f.cfg.Serial)
	}

	if sender.apiKey == "" && values.Get("type") != "keygen" {
		key, err := sender.GenerateAPIKey(ctx)
		if err != nil {
			return nil, "", "", err
		}
		sender.apiKey = key
	}
	if values.Get("type") != "keygen" {
		values.Set("key", sender.apiKey)
	}

	body, ct, cd, err := sender.doHTTP(ctx, values)
	if err == nil {
		f.countRequest(values.Get("type"), "ok")
		return body, ct, cd, nil
	}

	f.countRequest(values.Get("type"), "error")
	werr := api.WrapTransport(sender.cfg.Name, err)
	if retryOnPeer && sender.failOver() {
		f.countFailover()
		f.logger.WithField("failed", sender.cfg.Name).
			Warn("connection failure, retrying once on promoted peer")
		return f.raw(ctx, values, false)
	}
	return nil, "", "", werr
}

// request is raw plus XML envelope checking and error classification.
// Device-reported errors are typed and never retried.
func (f *Firewall) request(ctx context.Context, values url.Values, retryOnPeer bool) (*api.Response, error) {
	body, _, _, err := f.raw(ctx, values, retryOnPeer)
	if err != nil {
		return nil, err
	}
	return api.Check(f.routed().cfg.Name, body)
}

func configValues(action, xpath string) url.Values {
	return url.Values{
		"type":   []string{"config"},
		"action": []string{action},
		"xpath":  []string{xpath},
	}
}

// Set appends configuration at xpath.
func (f *Firewall) Set(ctx context.Context, xpath, element string, retryOnPeer bool) error {
	v := configValues("set", xpath)
	v.Set("element", element)
	_, err := f.request(ctx, v, retryOnPeer)
	return err
}

// Edit replaces the node at xpath wholesale.
func (f *Firewall) Edit(ctx context.Context, xpath, element string, retryOnPeer bool) error {
	v := configValues("edit", xpath)
	v.Set("element", element)
	_, err := f.request(ctx, v, retryOnPeer)
	return err
}

// DeletePath removes the node at xpath.
func (f *Firewall) DeletePath(ctx context.Context, xpath string, retryOnPeer bool) error {
	_, err := f.request(ctx, configValues("delete", xpath), retryOnPeer)
	return err
}

// Move reorders the entry at xpath within its list.
func (f *Firewall) Move(ctx context.Context, xpath, where, dst string, retryOnPeer bool) error {
	v := configValues("move", xpath)
	v.Set("where", where)
	if dst != "" {
		v.Set("dst", dst)
	}
	_, err := f.request(ctx, v, retryOnPeer)
	return err
}

// Get reads candidate configuration at xpath and returns the <result>
// element.
func (f *Firewall) Get(ctx context.Context, xpath string, retryOnPeer bool) (*etree.Element, error) {
	return f.configRead(ctx, "get", xpath, retryOnPeer)
}

// Show reads active configuration at xpath and returns the <result>
// element.
func (f *Firewall) Show(ctx context.Context, xpath string, retryOnPeer bool) (*etree.Element, error) {
	return f.configRead(ctx, "show", xpath, retryOnPeer)
}

func (f *Firewall) configRead(ctx context.Context, action, xpath string, retryOnPeer bool) (*etree.Element, error) {
	r, err := f.request(ctx, configValues(action, xpath), retryOnPeer)
	if err != nil {
		return nil, err
	}
	result := r.Result()
	if result == nil {
		return nil, fmt.Errorf("%s %s: response carries no <result>", action, xpath)
	}
	return result, nil
}
