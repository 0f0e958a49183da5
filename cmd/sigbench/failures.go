package main

import (
	"fmt"

	"github.com/delaneyj/signalgraph/reactive"
	"github.com/hashicorp/go-multierror"
)

// engineFailures gathers everything a benchmark system reports.
type engineFailures struct {
	errs *multierror.Error
}

func (f *engineFailures) handler() reactive.ErrorHandler {
	return func(from reactive.NodeInfo, err error) {
		f.errs = multierror.Append(f.errs, fmt.Errorf("%s: %w", from, err))
	}
}

func (f *engineFailures) Err() error {
	return f.errs.ErrorOrNil()
}
