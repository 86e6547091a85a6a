package parse

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strings"
)

// ClassRequest queries the objects of one Parse class
type ClassRequest struct {
	BaseURL    string
	ClassName  string
	Parameters map[string]string
	Headers    map[string]string
}

func (r ClassRequest) NewRequest(ctx context.Context) (*http.Request, error) {
	if r.ClassName == "" {
		return nil, fmt.Errorf("class name is required")
	}

	u, err := joinURL(r.BaseURL, "classes", r.ClassName)
	if err != nil {
		return nil, err
	}

	if len(r.Parameters) > 0 {
		values := url.Values{}
		for k, v := range r.Parameters {
			values.Set(k, v)
		}
		u.RawQuery = values.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	setHeaders(req, r.Headers)
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// Decode unpacks the {"results": [...]} envelope
func (r ClassRequest) Decode(body []byte, out any) error {
	var envelope struct {
		Results json.RawMessage `json:"results"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return err
	}
	if len(envelope.Results) == 0 {
		return fmt.Errorf("response for class %q has no results field", r.ClassName)
	}
	return json.Unmarshal(envelope.Results, out)
}

// FunctionRequest invokes a Parse Cloud Code function
type FunctionRequest struct {
	BaseURL      string
	FunctionName string
	Parameters   any
	Headers      map[string]string
}

func (r FunctionRequest) NewRequest(ctx context.Context) (*http.Request, error) {
	if r.FunctionName == "" {
		return nil, fmt.Errorf("function name is required")
	}

	u, err := joinURL(r.BaseURL, "functions", r.FunctionName)
	if err != nil {
		return nil, err
	}

	payload := []byte("{}")
	if r.Parameters != nil {
		payload, err = json.Marshal(r.Parameters)
		if err != nil {
			return nil, fmt.Errorf("encode function parameters: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	setHeaders(req, r.Headers)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// Decode unpacks the {"result": ...} envelope
func (r FunctionRequest) Decode(body []byte, out any) error {
	var envelope struct {
		Result json.RawMessage `json:"result"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return err
	}
	if len(envelope.Result) == 0 {
		return fmt.Errorf("response for function %q has no result field", r.FunctionName)
	}
	return json.Unmarshal(envelope.Result, out)
}

// FileRequest downloads a stored file. MimeType is the file name extension
// (".png") appended to FileName.
type FileRequest struct {
	BaseURL  string
	FileName string
	MimeType string
	Headers  map[string]string
}

func (r FileRequest) NewRequest(ctx context.Context) (*http.Request, error) {
	if r.FileName == "" {
		return nil, fmt.Errorf("file name is required")
	}

	u, err := joinURL(r.BaseURL, r.FileName+r.MimeType)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	setHeaders(req, r.Headers)
	return req, nil
}

func (FileRequest) binaryBody() {}

// Decode copies the raw body into out, which must be a *[]byte
func (r FileRequest) Decode(body []byte, out any) error {
	dst, ok := out.(*[]byte)
	if !ok {
		return fmt.Errorf("file %q: cannot decode into %T", r.FileName, out)
	}
	*dst = append([]byte(nil), body...)
	return nil
}

func joinURL(base string, elems ...string) (*url.URL, error) {
	if strings.TrimSpace(base) == "" {
		return nil, fmt.Errorf("base url is required")
	}

	u, err := url.Parse(strings.TrimSuffix(base, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q is not absolute", base)
	}

	u.Path = path.Join(append([]string{u.Path}, elems...)...)
	if !strings.HasPrefix(u.Path, "/") {
		u.Path = "/" + u.Path
	}
	return u, nil
}

func setHeaders(req *http.Request, headers map[string]string) {
	for k, v := range headers {
		req.Header.Set(k, v)
	}
}
