package api

import "time"

type Bucket struct {
	Name    string    `json:"name"`
	Created time.Time `json:"created"`
}

type Object struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
}

type ObjectPage struct {
	Bucket            string   `json:"bucket"`
	Prefix            string   `json:"prefix,omitempty"`
	Objects           []Object `json:"objects"`
	Truncated         bool     `json:"truncated"`
	ContinuationToken string   `json:"continuation_token,omitempty"`
}

type PresignedURL struct {
	URL       string `json:"url"`
	ExpiresIn int    `json:"expires_in"`
}
