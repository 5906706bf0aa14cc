package flightdata

import (
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

const (
	// DatasetLayout is the date layout of records in the static dataset.
	DatasetLayout = "01/02/2006"
	// ISOLayout is the alternative layout accepted from clients.
	ISOLayout = "2006-01-02"
)

var ErrInvalidDate = errors.New("unsupported date format")

// NormalizeDate accepts YYYY-MM-DD or MM/DD/YYYY and returns the date in
// DatasetLayout.
func NormalizeDate(value string) (string, error) {
	t, err := ParseDate(value)
	if err != nil {
		return "", err
	}
	return t.Format(DatasetLayout), nil
}

// ParseDate parses either accepted layout.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range []string{ISOLayout, DatasetLayout} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.Wrapf(ErrInvalidDate, "%q", value)
}
