// Copyright 2022 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/grailbio/base/file"
)

func openFileOrURL(ctx context.Context, name string) (io.Reader, func(context.Context) error, error) {
	if strings.HasPrefix(name, "http") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, name, nil)
		if err != nil {
			return nil, nil, err
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return nil, nil, err
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, nil, fmt.Errorf("%v: %v", name, resp.Status)
		}
		return resp.Body,
			func(context.Context) error {
				return resp.Body.Close()
			},
			nil
	}
	f, err := file.Open(ctx, name)
	if err != nil {
		return nil, nil, err
	}
	return f.Reader(ctx), f.Close, nil
}

func createFile(ctx context.Context, name string) (io.Writer, func(context.Context) error, error) {
	if len(name) == 0 {
		return stdout,
			func(context.Context) error {
				return nil
			},
			nil
	}
	f, err := file.Create(ctx, name)
	if err != nil {
		return nil, nil, err
	}
	return f.Writer(ctx), f.Close, nil
}
