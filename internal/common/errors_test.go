package common

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMatching(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		other    error
	}{
		{"data source", NewDataSourceError("ref.xlsx", fs.ErrNotExist), ErrDataSource, ErrDocumentRead},
		{"document read", NewDocumentReadError("invoice.pdf", fs.ErrNotExist), ErrDocumentRead, ErrDataSource},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, errors.Is(tt.err, tt.sentinel))
			assert.False(t, errors.Is(tt.err, tt.other))
			assert.True(t, errors.Is(tt.err, fs.ErrNotExist), "cause stays reachable")

			wrapped := fmt.Errorf("run failed: %w", tt.err)
			assert.True(t, errors.Is(wrapped, tt.sentinel))
		})
	}
}

func TestErrorAs(t *testing.T) {
	err := pkgerrors.WithMessage(NewDataSourceError("ref.xlsx", errors.New("boom")), "load reference")

	var dsErr *DataSourceError
	require.True(t, errors.As(err, &dsErr))
	assert.Equal(t, "ref.xlsx", dsErr.Path)

	var docErr *DocumentReadError
	assert.False(t, errors.As(err, &docErr))
}

func TestErrorFormatting(t *testing.T) {
	err := NewDocumentReadError("invoice.pdf", errors.New("bad xref"))

	assert.Equal(t, "document read error: invoice.pdf: bad xref", err.Error())
	assert.Equal(t, err.Error(), fmt.Sprintf("%v", err))

	verbose := fmt.Sprintf("%+v", err)
	assert.Contains(t, verbose, "document read error: invoice.pdf: bad xref")
	assert.Contains(t, verbose, "TestErrorFormatting", "stack trace names the caller")
}
