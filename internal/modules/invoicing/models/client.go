package models

import (
	"bytes"
	"encoding/json"
	"time"
)

// Client statuses
const (
	ClientActive   = "Active"
	ClientInactive = "Inactive"
)

// FlexID is a record id that also decodes from a JSON number.
// Older client records were keyed by numeric timestamps.
type FlexID string

func (id *FlexID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = FlexID(s)
		return nil
	}
	if string(b) == "null" {
		*id = ""
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = FlexID(n.String())
	return nil
}

// Client is a persisted client record (store key "clients")
type Client struct {
	ID        FlexID     `json:"id" swaggertype:"string"`
	Name      string     `json:"name"`
	Contact   string     `json:"contact"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	Status    string     `json:"status"`
	Address   string     `json:"address"`
	GSTNumber string     `json:"gstNumber,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`

	// Extra keeps stored keys not declared above
	Extra Extra `json:"-" swaggerignore:"true"`
}

type clientFields Client

var clientKeys = jsonKeys(clientFields{})

func (c *Client) UnmarshalJSON(b []byte) error {
	var fields clientFields
	if err := json.Unmarshal(b, &fields); err != nil {
		return err
	}
	fields.Extra = splitExtra(b, clientKeys)
	*c = Client(fields)
	return nil
}

func (c Client) MarshalJSON() ([]byte, error) {
	b, err := json.Marshal(clientFields(c))
	if err != nil {
		return nil, err
	}
	return mergeExtra(b, c.Extra)
}

// ClientInput is the writable part of a client
type ClientInput struct {
	Name      string `json:"name"`
	Contact   string `json:"contact"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Status    string `json:"status"`
	Address   string `json:"address"`
	GSTNumber string `json:"gstNumber"`
}
