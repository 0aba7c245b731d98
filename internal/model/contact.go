package model

import "time"

// TimestampLayout is the ISO-8601 form used for CreatedAt/UpdatedAt.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Contact represents a message submitted via the contact form.
type Contact struct {
	ID        string  `json:"id" dynamodbav:"id"`
	Name      string  `json:"name" dynamodbav:"name"`
	Message   string  `json:"message" dynamodbav:"message"`
	Email     *string `json:"email" dynamodbav:"email"` // nil when not supplied
	CreatedAt string  `json:"createdAt" dynamodbav:"createdAt"`
	UpdatedAt string  `json:"updatedAt" dynamodbav:"updatedAt"`
}

// FormatTimestamp renders t in TimestampLayout (UTC).
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// CreatedTime parses CreatedAt. ok is false when the stored value is not a
// valid timestamp.
func (c *Contact) CreatedTime() (t time.Time, ok bool) {
	t, err := time.Parse(time.RFC3339Nano, c.CreatedAt)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
