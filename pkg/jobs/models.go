package jobs

import (
	"encoding/json"
	"fmt"
	"time"
)

// ParseClassName is the Parse class job postings are stored in
const ParseClassName = "JobPosting"

// JobPosting is a job offer as stored on the Parse server. Every field is
// optional; the server omits whatever it does not know.
type JobPosting struct {
	ObjectID           string              `json:"objectId,omitempty"`
	CreatedAt          *time.Time          `json:"createdAt,omitempty"`
	UpdatedAt          *time.Time          `json:"updatedAt,omitempty"`
	HiringOrganization *HiringOrganization `json:"hiringOrganization,omitempty"`
	Title              string              `json:"title,omitempty"`
	URL                string              `json:"url,omitempty"`
	DatePosted         *time.Time          `json:"datePosted,omitempty"`
	EmploymentType     EmploymentType      `json:"employmentType,omitempty"`
	// SearchID is the elastic search document id, identical to ObjectID
	SearchID string `json:"_id,omitempty"`
}

// HiringOrganization is the organization offering a job
type HiringOrganization struct {
	Name     string `json:"name,omitempty"`
	ImageURL string `json:"imageUrl,omitempty"`
	Branch   string `json:"branch,omitempty"`
}

// EmploymentType is the kind of contract offered
type EmploymentType string

const (
	FullTime EmploymentType = "full-time"
	PartTime EmploymentType = "part-time"
	Contract EmploymentType = "contract"
)

// Valid reports whether t is one of the known employment types
func (t EmploymentType) Valid() bool {
	switch t {
	case FullTime, PartTime, Contract:
		return true
	}
	return false
}

// Label returns the display label for lang from the bundle, or the raw
// value when the bundle has none.
func (t EmploymentType) Label(b *Bundle, lang string) string {
	if b != nil {
		if labels, ok := b.EmploymentTypes[string(t)]; ok {
			if label := labels[lang]; label != "" {
				return label
			}
		}
	}
	return string(t)
}

func (t *EmploymentType) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("employment type: %w", err)
	}

	et := EmploymentType(raw)
	if et != "" && !et.Valid() {
		return fmt.Errorf("unknown employment type %q", raw)
	}
	*t = et
	return nil
}

func (p *JobPosting) UnmarshalJSON(data []byte) error {
	type alias JobPosting
	aux := struct {
		*alias
		CreatedAt  *parseDate `json:"createdAt"`
		UpdatedAt  *parseDate `json:"updatedAt"`
		DatePosted *parseDate `json:"datePosted"`
	}{alias: (*alias)(p)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	p.CreatedAt = aux.CreatedAt.ptr()
	p.UpdatedAt = aux.UpdatedAt.ptr()
	p.DatePosted = aux.DatePosted.ptr()
	return nil
}

// parseDate accepts both an ISO-8601 string and a Parse date object
// {"__type":"Date","iso":"..."}.
type parseDate struct {
	t time.Time
}

func (d *parseDate) UnmarshalJSON(data []byte) error {
	var iso string

	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &iso); err != nil {
			return err
		}
	} else {
		var obj struct {
			Type string `json:"__type"`
			ISO  string `json:"iso"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return fmt.Errorf("date: %w", err)
		}
		if obj.Type != "Date" {
			return fmt.Errorf("date: unexpected __type %q", obj.Type)
		}
		iso = obj.ISO
	}

	t, err := time.Parse(time.RFC3339Nano, iso)
	if err != nil {
		return fmt.Errorf("date: %w", err)
	}
	d.t = t
	return nil
}

func (d *parseDate) ptr() *time.Time {
	if d == nil {
		return nil
	}
	t := d.t
	return &t
}
