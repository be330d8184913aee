// Copyright 2022 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/cosnicolaou/gf2crc/catalog"
)

func listCatalog(ctx context.Context, values interface{}, args []string) error {
	fv := values.(*catalogFlags)
	tw := tabwriter.NewWriter(stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintf(tw, "Name\tDegree\tPolynomial\tKoopman\n")
	for _, e := range catalog.All() {
		poly := fmt.Sprintf("%#x", e.Poly)
		if fv.Binary {
			poly = fmt.Sprintf("%#b", e.Poly)
		}
		fmt.Fprintf(tw, "%v\t%v\t%v\t%#x\n", e.Name, e.Degree(), poly, e.Koopman)
	}
	return tw.Flush()
}
