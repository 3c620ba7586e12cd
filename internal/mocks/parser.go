package mocks

import (
	"io"

	"github.com/qasymphony/qtest-ci/internal/errors"
	"github.com/qasymphony/qtest-ci/internal/parsing"
)

// Parser is a mocked implementation of 'parsing.Parser'.
type Parser struct {
	MockParse func(io.Reader) (*parsing.TestResults, error)
}

// Parse either calls the configured mock of itself or returns an error if that doesn't exist.
func (p *Parser) Parse(reader io.Reader) (*parsing.TestResults, error) {
	if p.MockParse != nil {
		return p.MockParse(reader)
	}

	return nil, errors.NewInternalError("MockParse was not configured")
}
