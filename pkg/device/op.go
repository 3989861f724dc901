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
	"net/url"
	"strings"

	"github.com/beevik/etree"

	"github.com/panfw/panfw/pkg/api"
)

// CmdXML converts the space-separated operational command shorthand into
// its XML form: each word opens a nested element, a double-quoted tail
// becomes the text of the innermost element.
//
//	show system info          -> <show><system><info></info></system></show>
//	show jobs id "14"         -> <show><jobs><id>14</id></jobs></show>
func CmdXML(cmd string) string {
	var open []string
	b := strings.Builder{}
	rest := strings.TrimSpace(cmd)
	for rest != "" {
		if rest[0] == '"' {
			end := strings.IndexByte(rest[1:], '"')
			if end < 0 {
				b.WriteString(xmlEscape(rest[1:]))
				rest = ""
				break
			}
			b.WriteString(xmlEscape(rest[1 : end+1]))
			rest = strings.TrimSpace(rest[end+2:])
			continue
		}
		var tok string
		if i := strings.IndexByte(rest, ' '); i >= 0 {
			tok, rest = rest[:i], strings.TrimSpace(rest[i+1:])
		} else {
			tok, rest = rest, ""
		}
		b.WriteString("<" + tok + ">")
		open = append(open, tok)
	}
	for i := len(open) - 1; i >= 0; i-- {
		b.WriteString("</" + open[i] + ">")
	}
	return b.String()
}

func xmlEscape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}

// Op runs an operational command, given either as XML or as the
// space-separated shorthand, and returns the <result> element. Commands
// issued without vsys context default retryOnPeer to false at call sites;
// the override is always explicit.
func (f *Firewall) Op(ctx context.Context, cmd, vsys string, retryOnPeer bool) (*etree.Element, error) {
	if !strings.HasPrefix(strings.TrimSpace(cmd), "<") {
		cmd = CmdXML(cmd)
	}
	v := url.Values{
		"type": []string{"op"},
		"cmd":  []string{cmd},
	}
	if vsys != "" {
		v.Set("vsys", vsys)
	}
	r, err := f.request(ctx, v, retryOnPeer)
	if err != nil {
		return nil, err
	}
	result := r.Result()
	if result == nil {
		// some operational responses are bare <response status="success"/>
		result = etree.NewElement("result")
	}
	return result, nil
}

// GenerateAPIKey trades the configured credentials for an API key. Key
// generation never retries on the peer: a credential problem looks the
// same on both members.
func (f *Firewall) GenerateAPIKey(ctx context.Context) (string, error) {
	v := url.Values{
		"type":     []string{"keygen"},
		"user":     []string{f.cfg.Username},
		"password": []string{f.cfg.Password},
	}
	r, err := f.request(ctx, v, false)
	if err != nil {
		return "", err
	}
	result := r.Result()
	if result == nil {
		return "", fmt.Errorf("keygen: response carries no <result>")
	}
	key := result.SelectElement("key")
	if key == nil {
		return "", fmt.Errorf("keygen: response carries no <key>")
	}
	return strings.TrimSpace(key.Text()), nil
}

// Export downloads a file category (packet captures, device state). Bulk
// exports never retry on the peer: a capture id is only valid on the
// member that produced it.
func (f *Firewall) Export(ctx context.Context, category string, params map[string]string) (*api.Attachment, error) {
	v := url.Values{
		"type":     []string{"export"},
		"category": []string{category},
	}
	for k, val := range params {
		v.Set(k, val)
	}
	body, ct, cd, err := f.raw(ctx, v, false)
	if err != nil {
		return nil, err
	}
	if strings.Contains(ct, "xml") {
		// the device answers an export failure with a regular envelope
		if _, err := api.Check(f.routed().cfg.Name, body); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("export %s: expected attachment, got XML success envelope", category)
	}
	return api.ParseAttachment(ct, cd, body)
}

// JobStatus fetches the <job> element for a job id.
func (f *Firewall) JobStatus(ctx context.Context, id string) (*etree.Element, error) {
	result, err := f.Op(ctx, fmt.Sprintf("show jobs id %q", id), "", true)
	if err != nil {
		return nil, err
	}
	jobElem := result.FindElement("./job")
	if jobElem == nil {
		return nil, fmt.Errorf("job %s: no <job> in status response", id)
	}
	return jobElem, nil
}
