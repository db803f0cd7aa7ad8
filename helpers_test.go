// SPDX-License-Identifier: GPL-3.0-or-later

package hydro

import (
	"context"
	"log/slog"
	"math"

	"github.com/bassosimone/slogstub"
)

// nan returns a quiet NaN for table entries exercising non-numeric
// command values.
func nan() float64 {
	return math.NaN()
}

// newCapturingLogger returns a logger that captures all log records into the
// returned slice. The caller can inspect the slice after exercising the code
// under test to verify which events were emitted.
func newCapturingLogger() (*slog.Logger, *[]slog.Record) {
	var records []slog.Record
	handler := &slogstub.FuncHandler{
		EnabledFunc: func(ctx context.Context, level slog.Level) bool {
			return true
		},
		HandleFunc: func(ctx context.Context, record slog.Record) error {
			records = append(records, record)
			return nil
		},
	}
	return slog.New(handler), &records
}

// findRecords returns the captured records whose message equals event.
func findRecords(records []slog.Record, event string) []slog.Record {
	var matching []slog.Record
	for _, record := range records {
		if record.Message == event {
			matching = append(matching, record)
		}
	}
	return matching
}

// recordAttr returns the string rendering of the named attribute in
// the given record, or the empty string when the attribute is absent.
func recordAttr(record slog.Record, key string) string {
	var value string
	record.Attrs(func(attr slog.Attr) bool {
		if attr.Key == key {
			value = attr.Value.String()
			return false
		}
		return true
	})
	return value
}
